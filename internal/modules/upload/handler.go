package upload

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/web"
)

// maxUploadBytes bounds the whole multipart request body.
const maxUploadBytes = 50 << 20

// Handler exposes the image upload endpoint.
type Handler struct {
	gateway Gateway
	mw      *auth.Middleware
}

// NewHandler creates the upload handler.
func NewHandler(gateway Gateway, mw *auth.Middleware) *Handler {
	return &Handler{gateway: gateway, mw: mw}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/uploads", func(r chi.Router) {
		r.Use(h.mw.Authenticate, h.mw.RequireAdmin)
		r.Post("/", h.upload)
	})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		web.Error(w, "Error uploading images",
			fmt.Errorf("invalid multipart body: %w", apperror.ErrValidation))
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		web.Error(w, "Error uploading images",
			fmt.Errorf("no images provided: %w", apperror.ErrValidation))
		return
	}

	images := make([]web.Envelope, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			web.Error(w, "Error uploading images",
				fmt.Errorf("open %s: %w", header.Filename, apperror.ErrValidation))
			return
		}
		img, err := h.gateway.Upload(r.Context(), f, header.Filename)
		f.Close()
		if err != nil {
			web.Error(w, "Error uploading images", err)
			return
		}
		images = append(images, web.Envelope{"url": img.URL, "publicId": img.PublicID})
	}

	web.Created(w, "Images uploaded successfully", web.Envelope{"images": images})
}
