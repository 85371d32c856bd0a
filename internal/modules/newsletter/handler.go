package newsletter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Handler exposes newsletter HTTP endpoints.
type Handler struct {
	service Service
	mw      *auth.Middleware
}

// NewHandler creates the newsletter handler.
func NewHandler(service Service, mw *auth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/newsletter", func(r chi.Router) {
		r.Post("/subscribe", h.subscribe)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
			r.Get("/subscribers", h.list)
		})
	})
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error subscribing to newsletter", err)
		return
	}
	sub, err := h.service.Subscribe(r.Context(), req)
	if err != nil {
		web.Error(w, "Error subscribing to newsletter", err)
		return
	}
	web.Created(w, "Subscribed to newsletter successfully", web.Envelope{"subscriber": sub})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, "Error retrieving subscribers", err)
		return
	}
	web.OK(w, "Subscribers retrieved successfully", web.Envelope{"subscribers": subscribers})
}
