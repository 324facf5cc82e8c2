package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is the unit of stored catalog data, keyed by ID.
// Price is carried as an exact base-10 decimal internally and only
// becomes a binary float at the JSON serialization boundary.
type Product struct {
	ID        string          `json:"id" dynamodbav:"id"`
	Name      string          `json:"name" dynamodbav:"name"`
	Price     decimal.Decimal `json:"price" dynamodbav:"price"`
	Quantity  int64           `json:"quantity" dynamodbav:"quantity"`
	CreatedAt string          `json:"created_at" dynamodbav:"created_at"`
}

// productJSON is the wire shape of a Product. The serializer has no
// native decimal support, so price goes out as a float64.
type productJSON struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	CreatedAt string  `json:"created_at"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
	})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Price     decimal.Decimal `json:"price"`
		Quantity  int64           `json:"quantity"`
		CreatedAt string          `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Price = raw.Price
	p.Quantity = raw.Quantity
	p.CreatedAt = raw.CreatedAt
	return nil
}

// ProductPatch carries a partial update. Nil fields are left untouched;
// ID and CreatedAt are never patchable.
type ProductPatch struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int64
}

// IsEmpty reports whether the patch would change nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Quantity == nil
}

// Apply merges the patch into a copy of prod and returns it.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Quantity != nil {
		prod.Quantity = *p.Quantity
	}
	return prod
}
