package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodbridge-matching/internal/http/handlers"
)

// New constructs a chi-based http.Handler with base middleware and routes.
// Extra middleware (observability, rate limiting) is applied after the
// base chain.
func New(
	h *handlers.Handlers,
	donation *handlers.DonationHandler,
	need *handlers.NeedHandler,
	clm *handlers.ClaimHandler,
	delivery *handlers.DeliveryHandler,
	notification *handlers.NotificationHandler,
	extra ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	for _, mw := range extra {
		r.Use(mw)
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/donation", donation.Create)
	r.Get("/donation/{id}", donation.Get)
	r.Get("/donations", donation.List)

	r.Post("/need", need.Create)
	r.Get("/need/{id}", need.Get)
	r.Get("/need/{id}/matches", need.Matches)

	r.Post("/claim", clm.Claim)
	r.Post("/claim/direct", clm.ClaimDirect)

	r.Post("/delivery/assign", delivery.Assign)
	r.Post("/delivery/status", delivery.UpdateStatus)

	r.Get("/notifications", notification.List)
	r.Post("/notification/{id}/read", notification.MarkRead)

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
