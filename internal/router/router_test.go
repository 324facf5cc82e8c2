package router

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalog-lab/catalog-api/internal/catalog"
	"github.com/catalog-lab/catalog-api/internal/store"
)

func newTestRouter(stagePrefix string) *Router {
	svc := catalog.NewService(store.NewMemory(), nil)
	return New(svc, stagePrefix, "*", nil)
}

func decodeBody(t *testing.T, resp Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return out
}

const validCreate = `{"id":"1","name":"Bag","price":12.50,"quantity":100}`

func TestHandle_Preflight(t *testing.T) {
	rt := newTestRouter("")

	resp := rt.Handle(context.Background(), Request{Method: "OPTIONS", Path: "/anything"})

	assert.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
	assert.Equal(t, "Content-Type,Authorization", resp.Headers["Access-Control-Allow-Headers"])
}

func TestHandle_CreateAndGet(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	resp := rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	body := decodeBody(t, resp)
	assert.Equal(t, "product created", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "1", data["id"])
	assert.Equal(t, 12.5, data["price"])

	resp = rt.Handle(ctx, Request{Method: "GET", Path: "/products/1"})
	require.Equal(t, 200, resp.StatusCode)
	record := decodeBody(t, resp)
	assert.Equal(t, "Bag", record["name"])
	assert.Equal(t, float64(100), record["quantity"])
	assert.NotEmpty(t, record["created_at"])
}

func TestHandle_CreateDuplicate(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	resp := rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})
	require.Equal(t, 201, resp.StatusCode)

	resp = rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})
	assert.Equal(t, 409, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "already exists")
}

func TestHandle_CreateMissingField(t *testing.T) {
	rt := newTestRouter("")

	resp := rt.Handle(context.Background(), Request{
		Method: "POST",
		Path:   "/products",
		Body:   `{"id":"1","price":12.50,"quantity":100}`,
	})

	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "missing required field: name", decodeBody(t, resp)["error"])
}

func TestHandle_GetUnknown(t *testing.T) {
	rt := newTestRouter("")

	resp := rt.Handle(context.Background(), Request{Method: "GET", Path: "/products/ghost"})

	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandle_UpdateViaPathParameter(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})

	resp := rt.Handle(ctx, Request{
		Method:         "PUT",
		Path:           "/products/1",
		PathParameters: map[string]string{"id": "1"},
		Body:           `{"quantity":90}`,
	})

	require.Equal(t, 200, resp.StatusCode)
	record := decodeBody(t, resp)
	assert.Equal(t, float64(90), record["quantity"])
	assert.Equal(t, 12.5, record["price"])
}

func TestHandle_UpdateNoValidField(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})

	resp := rt.Handle(ctx, Request{Method: "PUT", Path: "/products/1", Body: `{}`})

	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "no valid field to update", decodeBody(t, resp)["error"])
}

func TestHandle_DeleteTwice(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})

	resp := rt.Handle(ctx, Request{Method: "DELETE", Path: "/products/1"})
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "deleted")

	resp = rt.Handle(ctx, Request{Method: "DELETE", Path: "/products/1"})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandle_UnsupportedRoute(t *testing.T) {
	rt := newTestRouter("")

	for _, req := range []Request{
		{Method: "PATCH", Path: "/products/1"},
		{Method: "GET", Path: "/orders"},
		{Method: "POST", Path: "/products/1"},
	} {
		resp := rt.Handle(context.Background(), req)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "unsupported method or route", decodeBody(t, resp)["error"])
	}
}

func TestHandle_StagePrefixStripped(t *testing.T) {
	rt := newTestRouter("/prod")
	ctx := context.Background()

	resp := rt.Handle(ctx, Request{Method: "POST", Path: "/prod/products", Body: validCreate})
	require.Equal(t, 201, resp.StatusCode)

	resp = rt.Handle(ctx, Request{Method: "GET", Path: "/prod/products/1"})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandle_ListPagination(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		resp := rt.Handle(ctx, Request{
			Method: "POST",
			Path:   "/products",
			Body:   `{"id":"` + id + `","name":"P","price":1,"quantity":1}`,
		})
		require.Equal(t, 201, resp.StatusCode)
	}

	resp := rt.Handle(ctx, Request{
		Method:          "GET",
		Path:            "/products",
		QueryParameters: map[string]string{"limit": "2"},
	})
	require.Equal(t, 200, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["products"], 2)
	assert.NotEmpty(t, body["next_cursor"])

	resp = rt.Handle(ctx, Request{
		Method:          "GET",
		Path:            "/products",
		QueryParameters: map[string]string{"limit": "2", "cursor": body["next_cursor"].(string)},
	})
	require.Equal(t, 200, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["products"], 1)
	_, hasCursor := body["next_cursor"]
	assert.False(t, hasCursor)
}

func TestHandle_ListAll(t *testing.T) {
	rt := newTestRouter("")
	ctx := context.Background()

	resp := rt.Handle(ctx, Request{Method: "GET", Path: "/products"})
	require.Equal(t, 200, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["products"], 0)

	rt.Handle(ctx, Request{Method: "POST", Path: "/products", Body: validCreate})

	resp = rt.Handle(ctx, Request{Method: "GET", Path: "/products"})
	body = decodeBody(t, resp)
	assert.Len(t, body["products"], 1)
}
