package router

import (
	"roomdesk/internal/handlers/approval"
	"roomdesk/internal/handlers/audit"
	"roomdesk/internal/handlers/auth"
	"roomdesk/internal/handlers/room"
	"roomdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Approval approval.Handler
	Room     room.Handler
	Audit    audit.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.Auth)

			r.DomainHandlers.Approval.Router(protected)
			r.DomainHandlers.Room.Router(protected)
			r.DomainHandlers.Audit.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
