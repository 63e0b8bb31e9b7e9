package domain

import (
	"time"

	"github.com/govalues/decimal"
)

// SourceKind tells which aggregate an order was created from.
type SourceKind string

const (
	SourceKindCart SourceKind = "cart"
	SourceKindList SourceKind = "list"
)

// OrderType is the customer-facing label derived from the source kind.
type OrderType string

const (
	OrderTypePurchase OrderType = "achat"
	OrderTypeCommand  OrderType = "commande"
)

// Label returns the order type for a source kind.
func (k SourceKind) Label() OrderType {
	if k == SourceKindList {
		return OrderTypeCommand
	}
	return OrderTypePurchase
}

// OrderTypes enumerates the possible order type labels.
func OrderTypes() []OrderType {
	return []OrderType{OrderTypePurchase, OrderTypeCommand}
}

// CityRef is the city part of a shipping address snapshot.
type CityRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// ShippingAddress is the canonical address shape stored on an order.
// Internal-only fields of the live address are dropped at snapshot time.
type ShippingAddress struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	City        CityRef `json:"city"`
	Postal      string  `json:"postal"`
}

// Shipping snapshots the chosen shipping method and address.
type Shipping struct {
	Method  string          `json:"method"`
	Address ShippingAddress `json:"address"`
}

// Ref is a denormalized reference snapshot (classe, school).
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Code string `json:"code"`
}

// ProductLine is a denormalized product snapshot plus quantity. Snapshots are
// taken so later catalog changes never retroactively alter a placed order.
type ProductLine struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	OrderPrice decimal.Decimal `json:"order_price"`
	ISBN       string          `json:"isbn"`
	TVA        decimal.Decimal `json:"tva"`
	Discount   decimal.Decimal `json:"discount"`
	Assets     map[string]any  `json:"assets,omitempty"`
	HT         decimal.Decimal `json:"ht"`
	Quantity   int             `json:"quantity"`
}

// ContentGroup is one group of an order's contents, created once at snapshot
// time and immutable thereafter.
type ContentGroup struct {
	Classe   *Ref            `json:"classe,omitempty"`
	School   *Ref            `json:"school,omitempty"`
	Products []ProductLine   `json:"products"`
	List     string          `json:"list,omitempty"`
	Names    []string        `json:"names,omitempty"`
	Total    decimal.Decimal `json:"total"`
}

// CartSummary is the normalized financial summary of the source cart/list.
type CartSummary struct {
	ID        string          `json:"id"`
	TVA       decimal.Decimal `json:"tva"`
	Price     decimal.Decimal `json:"price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	HT        decimal.Decimal `json:"ht"`
	Discount  decimal.Decimal `json:"discount"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
}

// Customer is the denormalized snapshot of the purchasing user at order
// time. It intentionally diverges from the live user record afterwards.
type Customer struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	ID        string `json:"id"`
}

// Profile is the acting user resolved from the request context.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Order is the persisted snapshot of a completed checkout. Contents,
// shipping and customer data are immutable after creation; the payment
// reconciliation engine owns amountPaid, status and the payment history.
type Order struct {
	ID            string
	UserID        string
	Type          OrderType
	Contents      []ContentGroup
	Shipping      Shipping
	Cart          CartSummary
	CustomerData  Customer
	TotalAmount   decimal.Decimal
	AmountPaid    decimal.Decimal
	Payments      []PaymentRecord
	Status        StatusValue
	LocalStatus   StatusValue
	ExpireAt      time.Time
	Count         int
	CreatedBy     string
	UpdatedBy     string
	CompletedDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Version backs the storage layer's optimistic concurrency control.
	Version uint64
}

// LeftToPay is the outstanding balance. It can go negative, overpayment is
// not capped.
func (o *Order) LeftToPay() decimal.Decimal {
	left, err := o.TotalAmount.Sub(o.AmountPaid)
	if err != nil {
		return decimal.Zero
	}
	return left
}
