package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/glitzhand/glitzhand-backend/internal/apperror"
	"github.com/glitzhand/glitzhand-backend/internal/modules/mail"
	"github.com/glitzhand/glitzhand-backend/internal/modules/user"
)

// UserDirectory is the slice of the user service the composer needs:
// purchaser lookup and the notification sink. Implemented by user.Service.
type UserDirectory interface {
	Get(ctx context.Context, id string) (*user.User, error)
	Notify(ctx context.Context, userID string, message string) error
	NotifyAdmins(ctx context.Context, message string) error
}

// Service defines the order lifecycle business logic.
type Service interface {
	// Place validates the cart against the catalog, locks prices, reserves
	// stock and persists the order, then fans out notifications and the
	// confirmation email. All products are resolved before anything is
	// written; any miss fails the whole request.
	Place(ctx context.Context, purchaserID string, req PlaceOrderRequest) (*Order, error)

	// Get returns the order if the actor is its purchaser or an admin.
	Get(ctx context.Context, id string, actorID string, actorAdmin bool) (*Order, error)

	// ListAll returns every order, optionally filtered by status. Admin only,
	// enforced at the route.
	ListAll(ctx context.Context, status string) ([]*Order, error)

	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// UpdateStatus advances the order through the status state machine.
	// Admins may perform any legal transition; the purchaser may only cancel.
	UpdateStatus(ctx context.Context, id string, target string, actorID string, actorAdmin bool) (*Order, error)

	// Cancel is the purchaser-facing cancel path: legal only before shipment,
	// releases the stock reservation.
	Cancel(ctx context.Context, id string, actorID string, actorAdmin bool) (*Order, error)

	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	users    UserDirectory
	mailer   mail.Mailer
	validate *validator.Validate
}

// NewService creates a new order service.
func NewService(repo Repository, users UserDirectory, mailer mail.Mailer) Service {
	return &service{repo: repo, users: users, mailer: mailer, validate: validator.New()}
}

func (s *service) Place(ctx context.Context, purchaserID string, req PlaceOrderRequest) (*Order, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, apperror.ErrValidation)
	}

	purchaser, err := s.users.Get(ctx, purchaserID)
	if err != nil {
		return nil, err
	}

	// Resolve every product before writing anything.
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, li := range req.Items {
		pid, err := uuid.Parse(li.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product id %q: %w", li.ProductID, apperror.ErrValidation)
		}
		ids = append(ids, pid)
	}
	products, err := s.repo.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	orderID := uuid.New()
	items := make([]*OrderItem, 0, len(req.Items))
	var total float64
	for i, li := range req.Items {
		p, ok := products[ids[i]]
		if !ok {
			return nil, fmt.Errorf("product with id %s: %w", li.ProductID, apperror.ErrNotFound)
		}
		unitPrice := p.Price - p.Discount
		if unitPrice < 0 {
			unitPrice = 0
		}
		lineTotal := round2(float64(li.Quantity) * unitPrice)
		total += lineTotal
		items = append(items, &OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  li.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	fulfillment := Fulfillment(req.Fulfillment)
	if fulfillment == "" {
		fulfillment = FulfillmentDelivery
	}

	o := &Order{
		ID:             orderID,
		UserID:         purchaser.ID,
		OrderNumber:    generateOrderNumber(),
		Status:         StatusPending,
		Fulfillment:    fulfillment,
		Items:          items,
		Total:          round2(total),
		Email:          req.Email,
		Phone:          req.Phone,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Address:        req.Address,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		// A replayed idempotency key means a previous attempt already
		// committed; hand that order back instead of creating a duplicate.
		if req.IdempotencyKey != "" && errors.Is(err, apperror.ErrConflict) {
			return s.repo.GetByIdempotencyKey(ctx, purchaserID, req.IdempotencyKey)
		}
		return nil, err
	}

	// The order is committed; notification and email failures must not
	// surface as an order failure.
	if err := s.users.Notify(ctx, purchaserID,
		fmt.Sprintf("Your order #%s has been successfully submitted.", o.ID)); err != nil {
		log.Printf("order %s: notify purchaser: %v", o.ID, err)
	}
	if err := s.users.NotifyAdmins(ctx,
		fmt.Sprintf("New order #%s submitted by %s %s", o.ID, purchaser.FirstName, purchaser.LastName)); err != nil {
		log.Printf("order %s: notify admins: %v", o.ID, err)
	}
	s.sendConfirmation(o)

	return o, nil
}

// sendConfirmation dispatches the itemized confirmation email on its own
// goroutine so mail gateway latency or failure never blocks the response.
func (s *service) sendConfirmation(o *Order) {
	lines := make([]mail.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, mail.OrderLine{
			Item:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.LineTotal,
		})
	}
	name := strings.TrimSpace(o.FirstName + " " + o.LastName)
	html, err := mail.OrderConfirmation(name, lines, o.Total)
	if err != nil {
		log.Printf("order %s: build confirmation: %v", o.ID, err)
		return
	}
	msg := &mail.Message{To: o.Email, Subject: "Order Confirmation", HTML: html}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			log.Printf("order %s: send confirmation: %v", o.ID, err)
		}
	}()
}

func (s *service) Get(ctx context.Context, id string, actorID string, actorAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actorAdmin && o.UserID.String() != actorID {
		return nil, fmt.Errorf("not authorized to view this order: %w", apperror.ErrForbidden)
	}
	return o, nil
}

func (s *service) ListAll(ctx context.Context, status string) ([]*Order, error) {
	if status != "" && !Status(status).Known() {
		return nil, fmt.Errorf("status %q: %w", status, apperror.ErrValidation)
	}
	return s.repo.ListAll(ctx, status)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, target string, actorID string, actorAdmin bool) (*Order, error) {
	next := Status(strings.ToLower(target))
	if !next.Known() {
		return nil, fmt.Errorf("invalid status value %q: %w", target, apperror.ErrValidation)
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actorAdmin {
		// Purchasers can only cancel their own orders.
		if o.UserID.String() != actorID || next != StatusCancelled {
			return nil, fmt.Errorf("not authorized to update this order: %w", apperror.ErrForbidden)
		}
	}

	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("cannot transition order from %s to %s: %w",
			o.Status, next, apperror.ErrInvalidTransition)
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	if next == StatusCancelled {
		if err := s.repo.ReleaseStock(ctx, o.Items); err != nil {
			log.Printf("order %s: release stock: %v", o.ID, err)
		}
	}
	o.Status = next
	return o, nil
}

func (s *service) Cancel(ctx context.Context, id string, actorID string, actorAdmin bool) (*Order, error) {
	return s.UpdateStatus(ctx, id, string(StatusCancelled), actorID, actorAdmin)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXX
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
