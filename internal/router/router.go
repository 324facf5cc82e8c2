package router

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/catalog-lab/catalog-api/internal/catalog"
	"github.com/catalog-lab/catalog-api/internal/metrics"
)

// Request is the transport-neutral shape of an inbound call, matching
// what an API gateway front door delivers.
type Request struct {
	Method          string
	Path            string
	PathParameters  map[string]string
	QueryParameters map[string]string
	Body            string
}

// Response is the envelope handed back to the transport verbatim.
// Body is always a JSON string.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

const collectionPath = "/products"

// Router inspects method and path, dispatches to one of the catalog
// operations, and renders the JSON response envelope. It keeps no state
// between invocations.
type Router struct {
	svc         *catalog.Service
	stagePrefix string
	corsOrigin  string
	logger      *zap.Logger
}

// New creates a Router over the catalog service. stagePrefix (e.g. a
// deployment stage segment like "/prod") is stripped from incoming paths
// before matching.
func New(svc *catalog.Service, stagePrefix, corsOrigin string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Router{
		svc:         svc,
		stagePrefix: stagePrefix,
		corsOrigin:  corsOrigin,
		logger:      logger,
	}
}

// Handle dispatches one request and always returns a well-formed envelope;
// no error escapes to the transport.
func (rt *Router) Handle(ctx context.Context, req Request) Response {
	start := time.Now()

	method := strings.ToUpper(req.Method)
	path := rt.normalizePath(req.Path)

	var (
		operation string
		resp      Response
	)

	switch {
	case method == "OPTIONS":
		operation = "preflight"
		resp = Response{StatusCode: 200, Headers: rt.headers(), Body: ""}

	case method == "POST" && path == collectionPath:
		operation = "create"
		resp = rt.create(ctx, req)

	case method == "GET" && path == collectionPath:
		operation = "list"
		resp = rt.list(ctx, req)

	case method == "GET" && strings.HasPrefix(path, collectionPath+"/"):
		operation = "get"
		resp = rt.get(ctx, itemID(path, req.PathParameters))

	case method == "PUT" && strings.HasPrefix(path, collectionPath+"/"):
		operation = "update"
		resp = rt.update(ctx, itemID(path, req.PathParameters), req)

	case method == "DELETE" && strings.HasPrefix(path, collectionPath+"/"):
		operation = "delete"
		resp = rt.delete(ctx, itemID(path, req.PathParameters))

	default:
		operation = "unsupported"
		resp = rt.respond(400, map[string]string{"error": "unsupported method or route"})
	}

	metrics.ObserveRequest(operation, strconv.Itoa(resp.StatusCode), start)
	return resp
}

func (rt *Router) create(ctx context.Context, req Request) Response {
	p, err := rt.svc.Create(ctx, []byte(req.Body))
	if err != nil {
		return rt.fail("create", err)
	}
	return rt.respond(201, map[string]any{
		"message": "product created",
		"data":    p,
	})
}

func (rt *Router) list(ctx context.Context, req Request) Response {
	var opts catalog.ListOptions
	if v := req.QueryParameters["limit"]; v != "" {
		if limit, err := strconv.ParseInt(v, 10, 32); err == nil && limit > 0 {
			opts.Limit = int32(limit)
		}
	}
	opts.Cursor = req.QueryParameters["cursor"]

	result, err := rt.svc.List(ctx, opts)
	if err != nil {
		return rt.fail("list", err)
	}
	return rt.respond(200, result)
}

func (rt *Router) get(ctx context.Context, id string) Response {
	p, err := rt.svc.Get(ctx, id)
	if err != nil {
		return rt.fail("get", err)
	}
	return rt.respond(200, p)
}

func (rt *Router) update(ctx context.Context, id string, req Request) Response {
	p, err := rt.svc.Update(ctx, id, []byte(req.Body))
	if err != nil {
		return rt.fail("update", err)
	}
	return rt.respond(200, p)
}

func (rt *Router) delete(ctx context.Context, id string) Response {
	if err := rt.svc.Delete(ctx, id); err != nil {
		return rt.fail("delete", err)
	}
	return rt.respond(200, map[string]string{
		"message": "product [" + id + "] deleted",
	})
}

// fail maps the adapter error taxonomy onto HTTP statuses and renders the
// error envelope. Anything unrecognized is an internal error.
func (rt *Router) fail(operation string, err error) Response {
	var (
		validation *catalog.ValidationError
		conflict   *catalog.ConflictError
		notFound   *catalog.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		return rt.respond(400, map[string]string{"error": validation.Error()})
	case errors.As(err, &conflict):
		return rt.respond(409, map[string]string{"error": conflict.Error()})
	case errors.As(err, &notFound):
		return rt.respond(404, map[string]string{"error": notFound.Error()})
	default:
		rt.logger.Error("router.internal_error",
			zap.String("operation", operation),
			zap.Error(err))
		return rt.respond(500, map[string]string{"error": "internal error"})
	}
}

func (rt *Router) respond(status int, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		rt.logger.Error("router.marshal_failed", zap.Error(err))
		return Response{
			StatusCode: 500,
			Headers:    rt.headers(),
			Body:       `{"error":"internal error"}`,
		}
	}
	return Response{StatusCode: status, Headers: rt.headers(), Body: string(body)}
}

func (rt *Router) headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  rt.corsOrigin,
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
	}
}

func (rt *Router) normalizePath(path string) string {
	if rt.stagePrefix != "" {
		path = strings.TrimPrefix(path, rt.stagePrefix)
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if path != collectionPath {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// itemID resolves the record id from path parameters if the front door
// extracted one, falling back to the path remainder.
func itemID(path string, params map[string]string) string {
	if id := params["id"]; id != "" {
		return id
	}
	return strings.TrimPrefix(path, collectionPath+"/")
}
