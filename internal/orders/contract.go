package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"property-storefront/internal/models"
	"property-storefront/internal/storage"
)

// ContractTitle heads every rendered agreement.
const ContractTitle = "Property Purchase Agreement"

// Contract is the signed agreement kept for an order.
type Contract struct {
	OrderID       string    `json:"orderId"`
	PropertyID    string    `json:"propertyId"`
	PropertyTitle string    `json:"propertyTitle"`
	Signer        string    `json:"signer"`
	Amount        int64     `json:"amount"`
	SignedAt      time.Time `json:"signedAt"`
	Text          string    `json:"text"`
}

var amountPrinter = message.NewPrinter(language.English)

// RenderContract fills in the agreement text.
func RenderContract(c Contract) string {
	var b strings.Builder
	b.WriteString(ContractTitle)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Buyer: %s\n", c.Signer)
	fmt.Fprintf(&b, "Property: %s\n", c.PropertyTitle)
	b.WriteString(amountPrinter.Sprintf("Amount: ₹%d\n", c.Amount))
	fmt.Fprintf(&b, "Order ID: %s\n", c.OrderID)
	fmt.Fprintf(&b, "Date: %s\n", c.SignedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Signature: %s", c.Signer)
	return b.String()
}

// ContractStore keeps one agreement per order under contracts/<orderId>.
type ContractStore struct {
	port storage.Port
}

// NewContractStore returns a store writing through port.
func NewContractStore(port storage.Port) *ContractStore {
	return &ContractStore{port: port}
}

// ContractKey is the storage key of the agreement for orderID.
func ContractKey(orderID string) string {
	return "contracts/" + orderID
}

// Save persists c.
func (s *ContractStore) Save(ctx context.Context, c Contract) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode contract: %w", err)
	}
	if err := s.port.Write(ctx, ContractKey(c.OrderID), data); err != nil {
		return fmt.Errorf("save contract %s: %w", c.OrderID, err)
	}
	return nil
}

// Delete removes the agreement for orderID. Missing agreements are ignored.
func (s *ContractStore) Delete(ctx context.Context, orderID string) error {
	if err := s.port.Delete(ctx, ContractKey(orderID)); err != nil {
		return fmt.Errorf("delete contract %s: %w", orderID, err)
	}
	return nil
}

// Load returns the agreement for orderID, or models.ErrNotFound.
func (s *ContractStore) Load(ctx context.Context, orderID string) (Contract, error) {
	data, err := s.port.Read(ctx, ContractKey(orderID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return Contract{}, models.ErrNotFound
	}
	if err != nil {
		return Contract{}, fmt.Errorf("load contract %s: %w", orderID, err)
	}
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return Contract{}, fmt.Errorf("decode contract %s: %w", orderID, err)
	}
	return c, nil
}
