package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/catalog-lab/catalog-api/pkg/model"
)

// createRequest is the POST /products payload. Pointer fields distinguish
// absent keys from zero values; numbers are decoded as exact decimals and
// coerced afterwards.
type createRequest struct {
	ID       *string          `json:"id"`
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// Validate checks that all required creation fields are present and coercible.
func (r *createRequest) Validate() error {
	if r.ID == nil || *r.ID == "" {
		return validationErrorf("missing required field: id")
	}
	if r.Name == nil || *r.Name == "" {
		return validationErrorf("missing required field: name")
	}
	if r.Price == nil {
		return validationErrorf("missing required field: price")
	}
	if r.Quantity == nil {
		return validationErrorf("missing required field: quantity")
	}
	if !r.Quantity.IsInteger() {
		return validationErrorf("quantity must be a whole integer")
	}
	return nil
}

// updateRequest is the PUT /products/{id} payload: any subset of the
// mutable fields. Unknown keys are ignored silently.
type updateRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// Patch converts the request into a ProductPatch, coercing quantity to an
// integer. An empty patch is legal here; the service rejects it.
func (r *updateRequest) Patch() (model.ProductPatch, error) {
	var patch model.ProductPatch
	patch.Name = r.Name
	patch.Price = r.Price
	if r.Quantity != nil {
		if !r.Quantity.IsInteger() {
			return model.ProductPatch{}, validationErrorf("quantity must be a whole integer")
		}
		qty := r.Quantity.IntPart()
		patch.Quantity = &qty
	}
	return patch, nil
}

func decodeBody(body []byte, dest any) error {
	if len(body) == 0 {
		return validationErrorf("request body is required")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return validationErrorf("invalid request body: %v", err)
	}
	return nil
}
