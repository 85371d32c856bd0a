package user

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// OrderLister resolves a user's order references. Implemented by the order
// service; declared here so the user module does not depend on it directly.
type OrderLister interface {
	ListByUser(ctx context.Context, userID string) (interface{}, error)
}

// Handler exposes user HTTP endpoints.
type Handler struct {
	service Service
	orders  OrderLister
	mw      *auth.Middleware
}

// NewHandler creates the user handler.
func NewHandler(service Service, orders OrderLister, mw *auth.Middleware) *Handler {
	return &Handler{service: service, orders: orders, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate)
			r.Put("/profile", h.updateProfile)
			r.Put("/address", h.addAddress)
			r.Get("/orders", h.listOrders)
			r.Get("/notifications", h.listNotifications)
			r.Put("/notifications/read", h.markNotificationsRead)
			r.Get("/cart", h.getCart)
			r.Put("/cart", h.setCart)

			r.Group(func(r chi.Router) {
				r.Use(h.mw.RequireAdmin)
				r.Get("/", h.list)
				r.Delete("/{id}", h.delete)
				r.Post("/notify", h.notify)
				r.Post("/createadmin", h.createAdmin)
			})
		})
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error registering user", err)
		return
	}
	u, token, err := h.service.Register(r.Context(), req)
	if err != nil {
		web.Error(w, "Error registering user", err)
		return
	}
	web.Created(w, "User registered successfully", web.Envelope{"user": u, "token": token})
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error creating admin", err)
		return
	}
	u, err := h.service.RegisterAdmin(r.Context(), req)
	if err != nil {
		web.Error(w, "Error creating admin", err)
		return
	}
	web.Created(w, "Admin user created successfully", web.Envelope{"user": u})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error logging in user", err)
		return
	}
	u, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		web.Error(w, "Error logging in user", err)
		return
	}
	web.OK(w, "Login successful", web.Envelope{"user": u, "token": token})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req UpdateProfileRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating profile", err)
		return
	}
	u, err := h.service.UpdateProfile(r.Context(), claims.UserID(), req)
	if err != nil {
		web.Error(w, "Error updating profile", err)
		return
	}
	web.OK(w, "Profile updated successfully", web.Envelope{"user": u})
}

func (h *Handler) addAddress(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var addr Address
	if err := web.Decode(r, &addr); err != nil {
		web.Error(w, "Error updating address", err)
		return
	}
	addresses, err := h.service.AddAddress(r.Context(), claims.UserID(), addr)
	if err != nil {
		web.Error(w, "Error updating address", err)
		return
	}
	web.OK(w, "Address added successfully", web.Envelope{"address": addresses})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	orders, err := h.orders.ListByUser(r.Context(), claims.UserID())
	if err != nil {
		web.Error(w, "Error retrieving orders", err)
		return
	}
	web.OK(w, "Orders retrieved successfully", web.Envelope{"orders": orders})
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	notes, err := h.service.Notifications(r.Context(), claims.UserID())
	if err != nil {
		web.Error(w, "Error retrieving notifications", err)
		return
	}
	if notes == nil {
		notes = []*Notification{}
	}
	web.OK(w, "Notifications retrieved successfully", web.Envelope{"notifications": notes})
}

func (h *Handler) markNotificationsRead(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	if err := h.service.MarkNotificationsRead(r.Context(), claims.UserID()); err != nil {
		web.Error(w, "Error updating notifications", err)
		return
	}
	web.OK(w, "Notifications marked as read", nil)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	u, err := h.service.Get(r.Context(), claims.UserID())
	if err != nil {
		web.Error(w, "Error retrieving cart", err)
		return
	}
	web.OK(w, "Cart retrieved successfully", web.Envelope{"cart": u.Cart})
}

func (h *Handler) setCart(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.FromContext(r.Context())
	var req struct {
		Items []CartItem `json:"items"`
	}
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating cart", err)
		return
	}
	if err := h.service.SetCart(r.Context(), claims.UserID(), req.Items); err != nil {
		web.Error(w, "Error updating cart", err)
		return
	}
	web.OK(w, "Cart updated successfully", nil)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, "Error retrieving users", err)
		return
	}
	web.OK(w, "Users retrieved successfully", web.Envelope{"users": users})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "Error deleting user", err)
		return
	}
	web.OK(w, "User deleted successfully", nil)
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error sending notification", err)
		return
	}
	if req.UserID == "" {
		web.Error(w, "Error sending notification", apperror.ErrValidation)
		return
	}
	if err := h.service.Notify(r.Context(), req.UserID, req.Message); err != nil {
		web.Error(w, "Error sending notification", err)
		return
	}
	web.OK(w, "Notification sent successfully", nil)
}
