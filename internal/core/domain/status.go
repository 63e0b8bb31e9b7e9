package domain

import "github.com/govalues/decimal"

// StatusValue is one entry of a configured status enumeration. Both the
// customer-facing status and the operations-facing localStatus carry this
// shape.
type StatusValue struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCancelled  = "cancelled"
	StatusTrash      = "trash"
)

var (
	StatusValuePending    = StatusValue{ID: StatusPending, Label: "En attente de paiement", Rank: 0}
	StatusValueProcessing = StatusValue{ID: StatusProcessing, Label: "en traitement", Rank: 0}
	StatusValueCancelled  = StatusValue{ID: StatusCancelled, Label: "Annulée", Rank: 0}
	StatusValueTrash      = StatusValue{ID: StatusTrash, Label: "Supprimée", Rank: 0}
)

// StatusSet is a configured enumeration of allowed status values.
type StatusSet []StatusValue

// Find returns the configured value for an id, reporting whether it exists.
func (s StatusSet) Find(id string) (StatusValue, bool) {
	for _, v := range s {
		if v.ID == id {
			return v, true
		}
	}
	return StatusValue{}, false
}

// DefaultStatuses is the baseline customer-facing enumeration. Operators may
// extend it through configuration, values keep the same shape.
func DefaultStatuses() StatusSet {
	return StatusSet{
		StatusValuePending,
		StatusValueProcessing,
		StatusValueCancelled,
		StatusValueTrash,
	}
}

// DefaultLocalStatuses is the baseline operations-facing enumeration. It is a
// parallel channel, it never influences the customer-facing status or any
// payment math.
func DefaultLocalStatuses() StatusSet {
	return StatusSet{
		{ID: "new", Label: "Nouvelle", Rank: 0},
		{ID: "preparing", Label: "En préparation", Rank: 1},
		{ID: "ready", Label: "Prête", Rank: 2},
		{ID: "delivered", Label: "Livrée", Rank: 3},
	}
}

// DeriveStatus computes the order status from the accumulated payment. The
// rule is binary, not proportional: any positive amount paid flips the order
// to processing, regardless of the relation to the total.
func DeriveStatus(amountPaid decimal.Decimal) StatusValue {
	if amountPaid.Sign() > 0 {
		return StatusValueProcessing
	}
	return StatusValuePending
}
