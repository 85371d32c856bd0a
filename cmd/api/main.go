package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
	"github.com/glitzhand/glitzhand-backend/internal/modules/contact"
	"github.com/glitzhand/glitzhand-backend/internal/modules/mail"
	"github.com/glitzhand/glitzhand-backend/internal/modules/newsletter"
	"github.com/glitzhand/glitzhand-backend/internal/modules/order"
	"github.com/glitzhand/glitzhand-backend/internal/modules/review"
	"github.com/glitzhand/glitzhand-backend/internal/modules/upload"
	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

// userOrders adapts the order service to the narrow interface the user
// handler needs for the /api/users/orders route.
type userOrders struct{ orders order.Service }

func (a userOrders) ListByUser(ctx context.Context, userID string) (interface{}, error) {
	return a.orders.ListByUser(ctx, userID)
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}
	mw := auth.NewMiddleware(secret)
	tokens := auth.NewService(secret)

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if smtpPort == 0 {
		smtpPort = 587
	}
	mailer := mail.NewSMTPMailer(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
		os.Getenv("SMTP_FROM"),
	)

	images, err := upload.NewCloudinaryGateway(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatal(err)
	}

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, tokens)

	// ── Phase 2: Catalog & Reviews ──────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, images)
	catalog.NewHandler(catalogService, mw).RegisterRoutes(router)

	reviewRepo := review.NewPostgresRepository(db)
	reviewService := review.NewService(reviewRepo, userService)
	review.NewHandler(reviewService, mw).RegisterRoutes(router)

	// ── Phase 3: Orders ─────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, userService, mailer)
	order.NewHandler(orderService, mw).RegisterRoutes(router)

	user.NewHandler(userService, userOrders{orders: orderService}, mw).RegisterRoutes(router)

	// ── Phase 4: Uploads & Outreach ─────────────────────────
	upload.NewHandler(images, mw).RegisterRoutes(router)

	newsletterRepo := newsletter.NewPostgresRepository(db)
	newsletterService := newsletter.NewService(newsletterRepo)
	newsletter.NewHandler(newsletterService, mw).RegisterRoutes(router)

	contactRepo := contact.NewPostgresRepository(db)
	contactService := contact.NewService(contactRepo)
	contact.NewHandler(contactService, mw).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Glitzhand API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
