package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/handler"
	"github.com/osse101/RestoLoyalty_Go/internal/metrics"
	"github.com/osse101/RestoLoyalty_Go/internal/quest"
	"github.com/osse101/RestoLoyalty_Go/internal/session"
	"github.com/osse101/RestoLoyalty_Go/internal/shop"
	"github.com/osse101/RestoLoyalty_Go/internal/user"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxRequests    int
	Version        string
}

// Services are the components routed by the server
type Services struct {
	DB       handler.Pinger
	Quests   quest.Service
	Shop     shop.Service
	Users    user.Service
	Sessions *session.Resolver
	EventLog eventlog.Service
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi route tree.
// Middleware runs in the order it is registered, outermost first.
func NewRouter(opts Options, svc Services) http.Handler {
	r := chi.NewRouter()
	tracker := NewActivityTracker(opts.MaxRequests)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, tracker))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DB))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	questHandler := handler.NewQuestHandler(svc.Quests)
	shopHandler := handler.NewShopHandler(svc.Shop)
	userHandler := handler.NewUserHandler(svc.Users)
	adminHandler := handler.NewAdminHandler(svc.Quests, svc.Shop, svc.Users, svc.Sessions, svc.EventLog)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shop/items", shopHandler.HandleListItems)

		// Storefront routes, authenticated by bearer session
		r.Group(func(r chi.Router) {
			r.Use(session.Middleware(svc.Sessions))

			r.Get("/quests", questHandler.HandleListQuests)
			r.Post("/quests/{id}/claim", questHandler.HandleClaim)
			r.Post("/shop/purchase", shopHandler.HandlePurchase)

			r.Route("/user", func(r chi.Router) {
				r.Get("/inventory", shopHandler.HandleInventory)
				r.Get("/balance", userHandler.HandleBalance)
				r.Get("/multipliers", shopHandler.HandleMultipliers)
			})
		})

		// Back office, authenticated by API key
		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(opts.APIKey, opts.TrustedProxies, tracker))

			r.Post("/activity", adminHandler.HandleRecordActivity)
			r.Post("/sessions", adminHandler.HandleIssueSession)

			r.Route("/quests", func(r chi.Router) {
				r.Get("/", adminHandler.HandleListQuests)
				r.Post("/", adminHandler.HandleCreateQuest)
				r.Put("/{id}", adminHandler.HandleUpdateQuest)
				r.Delete("/{id}", adminHandler.HandleDeactivateQuest)
			})

			r.Route("/shop/items", func(r chi.Router) {
				r.Get("/", adminHandler.HandleListItems)
				r.Post("/", adminHandler.HandleCreateItem)
				r.Put("/{id}", adminHandler.HandleUpdateItem)
				r.Delete("/{id}", adminHandler.HandleDeactivateItem)
			})

			r.Route("/users", func(r chi.Router) {
				r.Post("/", adminHandler.HandleCreateUser)
				r.Get("/{id}", adminHandler.HandleGetUser)
				r.Post("/{id}/adjust", adminHandler.HandleAdjustBalance)
				r.Get("/{id}/events", adminHandler.HandleUserEvents)
			})
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
