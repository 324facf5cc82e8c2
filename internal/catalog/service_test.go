package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalog-lab/catalog-api/internal/store"
)

func newTestService() *Service {
	svc := NewService(store.NewMemory(), nil)
	svc.now = func() time.Time {
		return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestCreate_ThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "2026-01-15T10:30:00Z", created.CreatedAt)

	got, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Bag", got.Name)
	assert.Equal(t, "12.5", got.Price.String())
	assert.Equal(t, int64(100), got.Quantity)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestCreate_DuplicateID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)

	_, err = svc.Create(ctx, []byte(`{"id":"1","name":"Imposter","price":1,"quantity":1}`))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "1", conflict.ID)

	// The original record survives the losing create.
	got, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Bag", got.Name)
}

func TestCreate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no id", `{"name":"Bag","price":12.50,"quantity":100}`, "missing required field: id"},
		{"no name", `{"id":"1","price":12.50,"quantity":100}`, "missing required field: name"},
		{"no price", `{"id":"1","name":"Bag","quantity":100}`, "missing required field: price"},
		{"no quantity", `{"id":"1","name":"Bag","price":12.50}`, "missing required field: quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService().Create(context.Background(), []byte(tt.body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Error())
		})
	}
}

func TestCreate_FractionalQuantity(t *testing.T) {
	_, err := newTestService().Create(context.Background(),
		[]byte(`{"id":"1","name":"Bag","price":12.50,"quantity":1.5}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "whole integer")
}

func TestCreate_InvalidBody(t *testing.T) {
	_, err := newTestService().Create(context.Background(), []byte(`{invalid`))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = newTestService().Create(context.Background(), nil)
	assert.ErrorAs(t, err, &verr)
}

func TestGet_Unknown(t *testing.T) {
	_, err := newTestService().Get(context.Background(), "nope")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.ID)
}

func TestUpdate_OnlySuppliedFieldsChange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "1", []byte(`{"price":9.99}`))
	require.NoError(t, err)
	assert.Equal(t, "9.99", updated.Price.String())
	assert.Equal(t, "Bag", updated.Name)
	assert.Equal(t, int64(100), updated.Quantity)
	assert.Equal(t, "2026-01-15T10:30:00Z", updated.CreatedAt)
}

func TestUpdate_NoRecognizedField(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)

	// Unknown keys are ignored, leaving nothing to apply.
	_, err = svc.Update(ctx, "1", []byte(`{"color":"red"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "no valid field to update", verr.Error())
}

func TestUpdate_UnknownID(t *testing.T) {
	_, err := newTestService().Update(context.Background(), "missing", []byte(`{"price":9.99}`))
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, "1"))
	assert.NoError(t, svc.Delete(ctx, "1"))
}

func TestList_ReturnsEveryLiveRecord(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for _, body := range []string{
		`{"id":"3","name":"Charlie","price":3,"quantity":3}`,
		`{"id":"1","name":"Alpha","price":1,"quantity":1}`,
		`{"id":"2","name":"Bravo","price":2,"quantity":2}`,
	} {
		_, err := svc.Create(ctx, []byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, svc.Delete(ctx, "2"))

	result, err := svc.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Empty(t, result.NextCursor)

	ids := []string{result.Products[0].ID, result.Products[1].ID}
	assert.ElementsMatch(t, []string{"1", "3"}, ids)
}

func TestList_Empty(t *testing.T) {
	result, err := newTestService().List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, result.Products)
	assert.Len(t, result.Products, 0)
}

// Full lifecycle: create, read, partial update, delete, read again.
func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, []byte(`{"id":"1","name":"Bag","price":12.50,"quantity":100}`))
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.Quantity)

	got, err := svc.Get(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, got.Price.InexactFloat64(), 1e-9)

	updated, err := svc.Update(ctx, "1", []byte(`{"quantity":90}`))
	require.NoError(t, err)
	assert.Equal(t, int64(90), updated.Quantity)
	assert.Equal(t, "12.5", updated.Price.String())

	require.NoError(t, svc.Delete(ctx, "1"))

	_, err = svc.Get(ctx, "1")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}
