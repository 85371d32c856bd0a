package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// Handler exposes product and category HTTP endpoints.
type Handler struct {
	service Service
	mw      *auth.Middleware
}

// NewHandler creates the catalog handler.
func NewHandler(service Service, mw *auth.Middleware) *Handler {
	return &Handler{service: service, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/trending", h.trending)
		r.Get("/featured", h.featured)
		r.Get("/slug/{slug}", h.getProductBySlug)
		r.Get("/{id}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
			r.Post("/", h.createProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
			r.Put("/{id}/stock", h.updateStock)
		})
	})

	router.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Get("/{id}", h.getCategory)

		r.Group(func(r chi.Router) {
			r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
			r.Post("/", h.createCategory)
			r.Put("/{id}", h.updateCategory)
			r.Delete("/{id}", h.deleteCategory)
		})
	})
}

// ── products ─────────────────────────────────────────────────────────────────

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		SortBy:   r.URL.Query().Get("sortBy"),
	}
	if v := r.URL.Query().Get("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			web.Error(w, "Error retrieving products", apperror.ErrValidation)
			return
		}
		q.MinPrice = &f
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			web.Error(w, "Error retrieving products", apperror.ErrValidation)
			return
		}
		q.MaxPrice = &f
	}
	q.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	q.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.ListProducts(r.Context(), q)
	if err != nil {
		web.Error(w, "Error retrieving products", err)
		return
	}
	web.OK(w, "Products retrieved successfully", web.Envelope{
		"products":      result.Products,
		"totalProducts": result.TotalProducts,
		"currentPage":   result.CurrentPage,
		"totalPages":    result.TotalPages,
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error creating product", err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		web.Error(w, "Error creating product", err)
		return
	}
	web.Created(w, "Product created successfully", web.Envelope{"product": p})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "Error retrieving product", err)
		return
	}
	web.OK(w, "Product retrieved successfully", web.Envelope{"product": p})
}

func (h *Handler) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		web.Error(w, "Error retrieving product", err)
		return
	}
	web.OK(w, "Product retrieved successfully", web.Envelope{"product": p})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating product", err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "Error updating product", err)
		return
	}
	web.OK(w, "Product updated successfully", web.Envelope{"product": p})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "Error deleting product", err)
		return
	}
	web.OK(w, "Product deleted successfully", nil)
}

func (h *Handler) trending(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Trending(r.Context())
	if err != nil {
		web.Error(w, "Failed to fetch trending products", err)
		return
	}
	web.OK(w, "Trending products retrieved successfully", web.Envelope{
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		web.Error(w, "Failed to fetch featured products", err)
		return
	}
	web.OK(w, "Featured products retrieved successfully", web.Envelope{
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CountInStock *int `json:"countInStock"`
	}
	if err := web.Decode(r, &req); err != nil || req.CountInStock == nil {
		web.Error(w, "Error updating stock count", apperror.ErrValidation)
		return
	}
	p, err := h.service.UpdateStock(r.Context(), chi.URLParam(r, "id"), *req.CountInStock)
	if err != nil {
		web.Error(w, "Error updating stock count", err)
		return
	}
	web.OK(w, "Stock count updated successfully", web.Envelope{"product": p})
}

// ── categories ───────────────────────────────────────────────────────────────

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		web.Error(w, "Error retrieving categories", err)
		return
	}
	web.OK(w, "Categories retrieved successfully", web.Envelope{"categories": categories})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error creating category", err)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		web.Error(w, "Error creating category", err)
		return
	}
	web.Created(w, "Category created successfully", web.Envelope{"category": c})
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "Error retrieving category", err)
		return
	}
	web.OK(w, "Category retrieved successfully", web.Envelope{"category": c})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "Error updating category", err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "Error updating category", err)
		return
	}
	web.OK(w, "Category updated successfully", web.Envelope{"category": c})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "Error deleting category", err)
		return
	}
	web.OK(w, "Category deleted successfully", nil)
}
