package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Handler exposes review HTTP endpoints.
type Handler struct {
	service Service
	mw      *auth.Middleware
}

// NewHandler creates the review handler.
func NewHandler(service Service, mw *auth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/reviews", func(r chi.Router) {
		r.Get("/{id}", h.listByProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req CreateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error creating review", err)
		return
	}
	rev, err := h.service.Create(r.Context(), claims.UserID(), req)
	if err != nil {
		web.Error(w, "Error creating review", err)
		return
	}
	web.Created(w, "Review created successfully", web.Envelope{"review": rev})
}

func (h *Handler) listByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "Error retrieving reviews", err)
		return
	}
	web.OK(w, "Reviews retrieved successfully", web.Envelope{"reviews": reviews})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req UpdateRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating review", err)
		return
	}
	rev, err := h.service.Update(r.Context(), chi.URLParam(r, "id"),
		claims.UserID(), claims.IsAdmin(), req)
	if err != nil {
		web.Error(w, "Error updating review", err)
		return
	}
	web.OK(w, "Review updated successfully", web.Envelope{"review": rev})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"),
		claims.UserID(), claims.IsAdmin())
	if err != nil {
		web.Error(w, "Error deleting review", err)
		return
	}
	web.OK(w, "Review deleted successfully", nil)
}
