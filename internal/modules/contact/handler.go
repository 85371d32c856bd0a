package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Handler exposes contact-form HTTP endpoints.
type Handler struct {
	service Service
	mw      *auth.Middleware
}

// NewHandler creates the contact handler.
func NewHandler(service Service, mw *auth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/contact", func(r chi.Router) {
		r.Post("/", h.submit)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
			r.Get("/", h.list)
			r.Put("/{id}/status", h.updateStatus)
		})
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error submitting message", err)
		return
	}
	m, err := h.service.Submit(r.Context(), req)
	if err != nil {
		web.Error(w, "Error submitting message", err)
		return
	}
	web.Created(w, "Message submitted successfully", web.Envelope{"contact": m})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, "Error retrieving messages", err)
		return
	}
	web.OK(w, "Messages retrieved successfully", web.Envelope{"messages": messages})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating message status", err)
		return
	}
	if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		web.Error(w, "Error updating message status", err)
		return
	}
	web.OK(w, "Message status updated successfully", nil)
}
