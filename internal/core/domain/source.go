package domain

// The source aggregate types mirror the cart/list shape as the provider
// delivers it. Monetary fields arrive as numbers or strings depending on the
// producing client, so they are kept as `any` and run through the normalizer
// at snapshot time.

// SourceAddress is a live shipping address. Only the canonical fields survive
// the snapshot; the rest is internal to the address book.
type SourceAddress struct {
	ID          string  `json:"_id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Description string  `json:"description"`
	Phone       string  `json:"phone"`
	City        CityRef `json:"city"`
	Postal      string  `json:"postal"`

	// internal-only, dropped at snapshot time
	UserID  string `json:"user,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// SourceShipping is the shipping selection carried by a cart/list.
type SourceShipping struct {
	Method  string        `json:"method"`
	Address SourceAddress `json:"address"`
}

// SourceProduct is a live catalog product inside a cart/list line.
type SourceProduct struct {
	ID         string         `json:"_id"`
	Slug       string         `json:"slug"`
	Name       string         `json:"name"`
	Price      any            `json:"price"`
	SalePrice  any            `json:"sale_price"`
	OrderPrice any            `json:"order_price"`
	ISBN       string         `json:"isbn"`
	TVA        any            `json:"tva"`
	Discount   any            `json:"discount"`
	Assets     map[string]any `json:"assets"`
	HT         any            `json:"ht"`
}

// SourceProductLine couples a product with its quantity.
type SourceProductLine struct {
	Product  SourceProduct `json:"product"`
	Quantity any           `json:"quantity"`
}

// SourceContentGroup is one content group of a cart/list.
type SourceContentGroup struct {
	Classe   *Ref                `json:"classe,omitempty"`
	School   *Ref                `json:"school,omitempty"`
	Products []SourceProductLine `json:"products"`
	List     string              `json:"list,omitempty"`
	Names    []string            `json:"names,omitempty"`
	Total    any                 `json:"total"`
}

// SourceTotalDetail is the financial summary carried by a cart/list.
type SourceTotalDetail struct {
	TVA       any `json:"tva"`
	Price     any `json:"price"`
	SalePrice any `json:"sale_price"`
	HT        any `json:"ht"`
	Discount  any `json:"discount"`
	Count     any `json:"count"`
}

// SourceCart is the mutable cart or list aggregate an order is created from.
// Ownership of it transfers into the immutable order snapshot, after which
// the provider removes it.
type SourceCart struct {
	ID          string               `json:"_id"`
	Kind        SourceKind           `json:"kind"`
	Shipping    *SourceShipping      `json:"shipping,omitempty"`
	Contents    []SourceContentGroup `json:"contents"`
	TotalDetail SourceTotalDetail    `json:"totalDetail"`
	TotalAmount any                  `json:"totalAmount"`
	Count       any                  `json:"count"`
}

// CartContent is what the cart/list provider resolves for a requester.
type CartContent struct {
	Cart *SourceCart
	List *SourceCart
}

// BySourceKind picks the aggregate matching the requested kind.
func (c *CartContent) BySourceKind(kind SourceKind) *SourceCart {
	if c == nil {
		return nil
	}
	if kind == SourceKindList {
		return c.List
	}
	return c.Cart
}
