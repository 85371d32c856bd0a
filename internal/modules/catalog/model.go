package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. ParentID enables a shallow hierarchy.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parentCategory,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Image is a stored asset reference. PublicID is kept so the asset can be
// destroyed at the image gateway when its owner is deleted.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Description is the structured product copy.
type Description struct {
	FormattedText string   `json:"formattedText,omitempty"`
	BulletPoints  []string `json:"bulletPoints,omitempty"`
	PlainText     string   `json:"plainText,omitempty"`
}

// Product is a catalog entry. The effective unit price at sale time is
// Price - Discount, floored at zero. ReviewIDs is the forward side of the
// product/review relationship; the review module is the only mutation site.
type Product struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Price        float64     `json:"price"`
	Discount     float64     `json:"discount"`
	Images       []Image     `json:"images"`
	CategoryID   uuid.UUID   `json:"category"`
	CategoryName string      `json:"categoryName,omitempty"`
	CountInStock int         `json:"countInStock"`
	Description  Description `json:"description"`
	ReviewIDs    []uuid.UUID `json:"reviews"`
	DateAdded    time.Time   `json:"dateAdded"`
}

// UnitPrice is the discounted price a buyer pays per unit, never negative.
func (p *Product) UnitPrice() float64 {
	up := p.Price - p.Discount
	if up < 0 {
		return 0
	}
	return up
}

// ListQuery carries product listing filters, sorting and pagination.
type ListQuery struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	SortBy   string // "field:asc|desc", default "dateAdded:desc"
	Page     int
	Limit    int
}

// ListResult is a page of products plus pagination metadata.
type ListResult struct {
	Products      []*Product `json:"products"`
	TotalProducts int        `json:"totalProducts"`
	CurrentPage   int        `json:"currentPage"`
	TotalPages    int        `json:"totalPages"`
}
