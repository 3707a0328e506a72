package transport

import (
	"fmt"
	"net/http"
	"time"

	"storefront/internal/bus"
	"storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const keepAliveInterval = 30 * time.Second

// EventsHandler streams collection-change signals over SSE. A client
// subscribes for the lifetime of its connection and is unsubscribed on
// disconnect, mirroring a view's mount/unmount cycle. Events carry no
// payload; clients re-query the cart or wishlist endpoints on receipt.
type EventsHandler struct {
	bus    *bus.Bus
	logger *zap.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(b *bus.Bus, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		bus:    b,
		logger: logger,
	}
}

// RegisterRoutes registers the event stream route
func (h *EventsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/events", h.Stream)
}

// Stream serves the SSE feed until the client goes away.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.RespondWithError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Buffered so a slow client cannot stall the publisher; a dropped
	// signal is fine, the client re-reads full state on the next one.
	events := make(chan string, 8)
	notify := func(name string) func() {
		return func() {
			select {
			case events <- name:
			default:
			}
		}
	}

	cancelCart := h.bus.Subscribe(bus.CartChanged, notify("cart"))
	defer cancelCart()
	cancelWishlist := h.bus.Subscribe(bus.WishlistChanged, notify("wishlist"))
	defer cancelWishlist()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	h.logger.Debug("Event stream opened", zap.String("remote_addr", r.RemoteAddr))

	for {
		select {
		case <-r.Context().Done():
			h.logger.Debug("Event stream closed", zap.String("remote_addr", r.RemoteAddr))
			return
		case name := <-events:
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", name)
			flusher.Flush()
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
