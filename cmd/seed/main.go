package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/auth"
	"github.com/glitzhand/glitzhand-backend/internal/modules/catalog"
	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

var defaultCategories = []string{
	"Bracelets",
	"Necklaces",
	"Earrings",
	"Rings",
	"Handbags",
	"Wallets",
	"T-Shirts",
	"Sweat-Shirts",
}

// Seeds the default admin account and the base category tree. Safe to run
// repeatedly: existing rows are left untouched.
func main() {
	if err := godotenv.Load(); err != nil {
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

	ctx := context.Background()

	if err := seedAdmin(ctx, user.NewPostgresRepository(db)); err != nil {
		log.Fatal(err)
	}
	if err := seedCategories(ctx, catalog.NewPostgresRepository(db)); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Seeding complete")
}

func seedAdmin(ctx context.Context, repo user.Repository) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		fmt.Printf("Admin %s already exists, skipping\n", email)
		return nil
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD is required to create the admin account")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &user.User{
		ID:           uuid.New(),
		FirstName:    "Admin",
		LastName:     "User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         auth.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	fmt.Printf("Created admin %s\n", email)
	return nil
}

func seedCategories(ctx context.Context, repo catalog.Repository) error {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[c.Name] = true
	}

	for _, name := range defaultCategories {
		if present[name] {
			continue
		}
		c := &catalog.Category{
			ID:        uuid.New(),
			Name:      name,
			Slug:      slug.Make(name),
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.CreateCategory(ctx, c); err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				continue
			}
			return err
		}
		fmt.Printf("Created category %s\n", name)
	}
	return nil
}
