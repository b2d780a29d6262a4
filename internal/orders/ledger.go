// Package orders runs the order lifecycle: checkout, identity verification,
// contract signing and cancellation.
//
//	pending ──verify──▶ pending+idVerified ──sign──▶ confirmed
//	   │
//	   └──cancel──▶ cancelled
//
// confirmed and cancelled are terminal.
package orders

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"property-storefront/internal/models"
	"property-storefront/internal/storage"
)

// Key is the storage key of the orders collection.
const Key = "orders"

// PropertyReader looks up the listing an order refers to.
type PropertyReader interface {
	Get(id string) (models.Property, bool)
}

// Recorder observes lifecycle events, typically for metrics.
type Recorder interface {
	OrderCreated(t models.ListingType)
	OrderTransitioned(to models.OrderStatus)
}

// Options configures Open.
type Options struct {
	Logger   *zap.Logger
	Recorder Recorder
	Clock    func() time.Time
	NewID    func() string
	// ContractURL turns an order id into the reference stored on the order.
	// Defaults to the contract's storage key.
	ContractURL func(orderID string) string
}

// Ledger holds every order.
type Ledger struct {
	orders      *storage.Collection[models.Order]
	contracts   *ContractStore
	properties  PropertyReader
	rec         Recorder
	log         *zap.Logger
	now         func() time.Time
	contractURL func(string) string
}

var schema = storage.Schema[models.Order]{
	ID: func(o *models.Order) string { return o.ID },
	Init: func(o *models.Order, id string, now time.Time) {
		o.ID = id
		o.CreatedAt = now
	},
	Touch: func(o *models.Order, now time.Time) {
		o.UpdatedAt = &now
	},
}

// Open loads the orders from port. A fresh store starts empty.
func Open(ctx context.Context, port storage.Port, properties PropertyReader, opts Options) (*Ledger, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	collOpts := []storage.Option{storage.WithLogger(log), storage.WithClock(now)}
	if opts.NewID != nil {
		collOpts = append(collOpts, storage.WithIDGenerator(opts.NewID))
	}
	contractURL := opts.ContractURL
	if contractURL == nil {
		contractURL = ContractKey
	}

	l := &Ledger{
		orders:      storage.NewCollection(port, Key, schema, collOpts...),
		contracts:   NewContractStore(port),
		properties:  properties,
		rec:         opts.Recorder,
		log:         log.Named("orders"),
		now:         now,
		contractURL: contractURL,
	}
	if _, err := l.orders.LoadOrSeed(ctx, func() []models.Order { return []models.Order{} }); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateRequest is what checkout submits.
type CreateRequest struct {
	UserID          string                 `json:"userId"`
	PropertyID      string                 `json:"propertyId"`
	PaymentMethod   string                 `json:"paymentMethod"`
	CustomerDetails models.CustomerDetails `json:"customerDetails"`
}

func (r CreateRequest) validate() error {
	required := []struct{ field, value string }{
		{"userId", r.UserID},
		{"propertyId", r.PropertyID},
		{"paymentMethod", r.PaymentMethod},
		{"customerDetails.name", r.CustomerDetails.Name},
		{"customerDetails.email", r.CustomerDetails.Email},
		{"customerDetails.phone", r.CustomerDetails.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return models.NewValidationError(f.field, "is required")
		}
	}
	return nil
}

// CreateOrder prices the referenced listing and records a pending order.
func (l *Ledger) CreateOrder(ctx context.Context, req CreateRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	property, ok := l.properties.Get(req.PropertyID)
	if !ok {
		return "", models.ErrNotFound
	}

	amount, commission := Quote(property)
	created, err := l.orders.Create(ctx, models.Order{
		UserID:          req.UserID,
		PropertyID:      property.ID,
		Type:            property.Type,
		Amount:          amount,
		Commission:      commission,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		CustomerDetails: req.CustomerDetails,
	})
	if err != nil {
		return "", err
	}

	l.log.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("property_id", created.PropertyID),
		zap.String("type", string(created.Type)),
		zap.Int64("amount", created.Amount),
	)
	if l.rec != nil {
		l.rec.OrderCreated(created.Type)
	}
	return created.ID, nil
}

// VerifyIdentity marks the order's buyer as verified. Blank input changes
// nothing and is not an error. found is false for unknown orders.
func (l *Ledger) VerifyIdentity(ctx context.Context, orderID, govtID, signerName string) (models.Order, bool, error) {
	if strings.TrimSpace(govtID) == "" || strings.TrimSpace(signerName) == "" {
		o, found := l.orders.Find(orderID)
		return o, found, nil
	}
	return l.orders.Update(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return models.ErrInvalidTransition
		}
		o.IDVerified = true
		return nil
	})
}

// SignContract records the agreement and confirms the order. The order must
// be pending with a verified identity.
func (l *Ledger) SignContract(ctx context.Context, orderID, signerName string) (models.Order, error) {
	signerName = strings.TrimSpace(signerName)
	if signerName == "" {
		return models.Order{}, models.NewValidationError("signerName", "is required")
	}

	contractSaved := false
	signed, found, err := l.orders.Update(ctx, orderID, func(o *models.Order) error {
		if err := canSign(o); err != nil {
			return err
		}
		contract := Contract{
			OrderID:       o.ID,
			PropertyID:    o.PropertyID,
			PropertyTitle: l.propertyTitle(o.PropertyID),
			Signer:        signerName,
			Amount:        o.Amount,
			SignedAt:      l.now(),
		}
		contract.Text = RenderContract(contract)
		if err := l.contracts.Save(ctx, contract); err != nil {
			return err
		}
		contractSaved = true

		o.ContractSigned = true
		o.ContractURL = l.contractURL(o.ID)
		o.SignerName = signerName
		o.Status = models.OrderStatusConfirmed
		return nil
	})
	if err != nil {
		// the order stayed unsigned, so its agreement must not survive
		if contractSaved {
			if derr := l.contracts.Delete(context.WithoutCancel(ctx), orderID); derr != nil {
				l.log.Error("failed to remove orphaned contract", zap.String("order_id", orderID), zap.Error(derr))
			}
		}
		return models.Order{}, err
	}
	if !found {
		return models.Order{}, models.ErrNotFound
	}

	l.log.Info("contract signed", zap.String("order_id", signed.ID))
	l.transitioned(models.OrderStatusConfirmed)
	return signed, nil
}

// SignContractAfter waits delay, then signs. If ctx ends first nothing is
// applied and ctx.Err() is returned. The order is checked both before the
// wait and again when signing.
func (l *Ledger) SignContractAfter(ctx context.Context, delay time.Duration, orderID, signerName string) (models.Order, error) {
	if strings.TrimSpace(signerName) == "" {
		return models.Order{}, models.NewValidationError("signerName", "is required")
	}
	o, ok := l.orders.Find(orderID)
	if !ok {
		return models.Order{}, models.ErrNotFound
	}
	if err := canSign(&o); err != nil {
		return models.Order{}, err
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			l.log.Debug("signing abandoned", zap.String("order_id", orderID), zap.Error(ctx.Err()))
			return models.Order{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	return l.SignContract(ctx, orderID, signerName)
}

// CancelOrder cancels a pending order.
func (l *Ledger) CancelOrder(ctx context.Context, orderID string) (models.Order, error) {
	cancelled, found, err := l.orders.Update(ctx, orderID, func(o *models.Order) error {
		if o.Status.IsTerminal() {
			return models.ErrInvalidTransition
		}
		o.Status = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	if !found {
		return models.Order{}, models.ErrNotFound
	}

	l.log.Info("order cancelled", zap.String("order_id", cancelled.ID))
	l.transitioned(models.OrderStatusCancelled)
	return cancelled, nil
}

// GetOrder returns the order with id.
func (l *Ledger) GetOrder(id string) (models.Order, bool) {
	return l.orders.Find(id)
}

// GetUserOrders returns userID's orders, newest first.
func (l *Ledger) GetUserOrders(userID string) []models.Order {
	var out []models.Order
	for _, o := range l.orders.List() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// GetAllOrders returns every order in store order.
func (l *Ledger) GetAllOrders() []models.Order {
	return l.orders.List()
}

// OwnedPropertyIDs returns the properties userID bought through a confirmed order.
func (l *Ledger) OwnedPropertyIDs(userID string) []string {
	var ids []string
	for _, o := range l.orders.List() {
		if o.UserID != userID || o.Type != models.ListingTypeBuy || o.Status != models.OrderStatusConfirmed {
			continue
		}
		if !slices.Contains(ids, o.PropertyID) {
			ids = append(ids, o.PropertyID)
		}
	}
	return ids
}

// Owns reports whether userID bought propertyID.
func (l *Ledger) Owns(userID, propertyID string) bool {
	return slices.Contains(l.OwnedPropertyIDs(userID), propertyID)
}

// Contract returns the signed agreement for orderID.
func (l *Ledger) Contract(ctx context.Context, orderID string) (Contract, error) {
	return l.contracts.Load(ctx, orderID)
}

func canSign(o *models.Order) error {
	if o.Status.IsTerminal() || !o.IDVerified {
		return models.ErrInvalidTransition
	}
	return nil
}

func (l *Ledger) propertyTitle(id string) string {
	if p, ok := l.properties.Get(id); ok {
		return p.Title
	}
	return id
}

func (l *Ledger) transitioned(to models.OrderStatus) {
	if l.rec != nil {
		l.rec.OrderTransitioned(to)
	}
}
