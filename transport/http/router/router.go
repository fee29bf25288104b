package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/isaaccomputerscience/isaac-api-sub002/internal/handlers/booking"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/handlers/event"
)

type DomainHandlers struct {
	Event   event.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
