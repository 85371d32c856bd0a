package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service Service
	mw      *auth.Middleware
}

// NewHandler creates the order handler.
func NewHandler(service Service, mw *auth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/orders", func(r chi.Router) {
		r.Use(h.mw.Authenticate)

		r.Post("/", h.place)
		r.Get("/history", h.history)
		r.Get("/user/{id}", h.listByUser)
		r.Get("/{id}", h.get)
		r.Put("/{id}/status", h.updateStatus)
		r.Put("/{id}/cancel", h.cancel)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.RequireAdmin)
			r.Get("/", h.listAll)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req PlaceOrderRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error creating order", err)
		return
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}
	o, err := h.service.Place(r.Context(), claims.UserID(), req)
	if err != nil {
		web.Error(w, "Error creating order", err)
		return
	}
	web.Created(w, "Order created successfully", web.Envelope{"order": o})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	o, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), claims.UserID(), claims.IsAdmin())
	if err != nil {
		web.Error(w, "Error retrieving order", err)
		return
	}
	web.OK(w, "Order retrieved successfully", web.Envelope{"order": o})
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		web.Error(w, "Error retrieving orders", err)
		return
	}
	web.OK(w, "Orders retrieved successfully", web.Envelope{"orders": orders})
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	userID := chi.URLParam(r, "id")
	if !claims.IsAdmin() && claims.UserID() != userID {
		web.Error(w, "Error retrieving orders", apperror.ErrForbidden)
		return
	}
	orders, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		web.Error(w, "Error retrieving orders", err)
		return
	}
	web.OK(w, "Orders retrieved successfully", web.Envelope{"orders": orders})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	orders, err := h.service.ListByUser(r.Context(), claims.UserID())
	if err != nil {
		web.Error(w, "Error retrieving order history", err)
		return
	}
	web.OK(w, "Order history retrieved successfully", web.Envelope{"orders": orders})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req UpdateStatusRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating order status", err)
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"),
		req.Status, claims.UserID(), claims.IsAdmin())
	if err != nil {
		web.Error(w, "Error updating order status", err)
		return
	}
	web.OK(w, "Order status updated successfully", web.Envelope{"order": o})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	o, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"),
		claims.UserID(), claims.IsAdmin())
	if err != nil {
		web.Error(w, "Error cancelling order", err)
		return
	}
	web.OK(w, "Order cancelled successfully", web.Envelope{"order": o})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "Error deleting order", err)
		return
	}
	web.OK(w, "Order deleted successfully", nil)
}
