// Package resource is a thin REST accessor for one collection endpoint of the
// facility API. It hides wire field names from the rest of the program and
// classifies every failure as an *Error.
package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Observer records request outcomes. metrics.Metrics satisfies it.
type Observer interface {
	ObserveRequest(resource, op string, code int, took time.Duration)
}

// Config describes one resource collection.
type Config struct {
	// Name labels logs and metrics, e.g. "cells".
	Name string
	// Path is the collection path relative to the API base, e.g. "cells".
	Path string
	// Fields translates local field names to wire names.
	Fields FieldMap
}

// Client accesses the collection described by its Config and decodes items
// into T.
type Client[T any] struct {
	http     *resty.Client
	cfg      Config
	logger   *zap.Logger
	observer Observer
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	observer Observer
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver sets the request observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// NewHTTP builds the shared resty client for the API rooted at baseURL. There
// are no retries: a failed call is terminal until the user repeats it. Resty's
// own diagnostics go to logger so they never reach the terminal directly.
func NewHTTP(baseURL string, timeout time.Duration, logger *zap.Logger) *resty.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return resty.New().
		SetLogger(logger.Named("resty").Sugar()).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			r.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})
}

// New returns a client for cfg over the shared http client.
func New[T any](rc *resty.Client, cfg Config, opts ...Option) *Client[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Path
	}
	return &Client[T]{
		http:     rc,
		cfg:      cfg,
		logger:   o.logger.With(zap.String("resource", cfg.Name)),
		observer: o.observer,
	}
}

// Name returns the configured resource name.
func (c *Client[T]) Name() string {
	return c.cfg.Name
}

// List reads the whole collection.
func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	body, err := c.do(ctx, "list", http.MethodGet, c.collectionPath(), nil, false)
	if err != nil {
		return nil, err
	}
	items, err := c.decodeList(body)
	if err != nil {
		return nil, c.fail("list", 0, "", err, ErrFetchFailed)
	}
	return items, nil
}

// Create posts draft and returns the entity as stored by the server. Fields
// the server generates (id, inmateId, ...) are only present on the result.
func (c *Client[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	payload, err := c.encode(draft)
	if err != nil {
		return zero, c.fail("create", 0, "", err, ErrRejected)
	}
	body, err := c.do(ctx, "create", http.MethodPost, c.collectionPath(), payload, false)
	if err != nil {
		return zero, err
	}
	return c.decodeOne("create", body)
}

// Update replaces the entity addressed by id with the full value of entity.
func (c *Client[T]) Update(ctx context.Context, id string, entity T) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, c.fail("update", 0, "", errors.New("missing id"), ErrRejected)
	}
	payload, err := c.encode(entity)
	if err != nil {
		return zero, c.fail("update", 0, "", err, ErrRejected)
	}
	body, err := c.do(ctx, "update", http.MethodPut, c.itemPath(), payload, false, id)
	if err != nil {
		return zero, err
	}
	return c.decodeOne("update", body)
}

// Remove deletes the entity addressed by key. A 404 counts as success so that
// removing an absent entity is harmless.
func (c *Client[T]) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return c.fail("remove", 0, "", errors.New("missing id"), ErrRejected)
	}
	_, err := c.do(ctx, "remove", http.MethodDelete, c.itemPath(), nil, true, key)
	return err
}

func (c *Client[T]) collectionPath() string {
	return "/" + strings.Trim(c.cfg.Path, "/")
}

func (c *Client[T]) itemPath() string {
	return c.collectionPath() + "/{id}"
}

func (c *Client[T]) do(ctx context.Context, op, method, path string, payload any, notFoundOK bool, id ...string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if len(id) > 0 {
		req.SetPathParam("id", id[0])
	}
	if payload != nil {
		req.SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	took := time.Since(start)

	code := 0
	if resp != nil {
		code = resp.StatusCode()
	}
	if c.observer != nil {
		c.observer.ObserveRequest(c.cfg.Name, op, code, took)
	}
	if err != nil {
		return nil, c.fail(op, 0, "", err, ErrFetchFailed)
	}

	switch {
	case code >= 200 && code < 300:
		c.logger.Debug("request complete",
			zap.String("op", op),
			zap.Int("status", code),
			zap.Duration("duration", took),
		)
		return resp.Body(), nil
	case code == http.StatusNotFound && notFoundOK:
		c.logger.Debug("already absent",
			zap.String("op", op),
			zap.Int("status", code),
		)
		return nil, nil
	case code >= 400 && code < 500:
		return nil, c.fail(op, code, serverMessage(resp.Body()), nil, ErrRejected)
	default:
		return nil, c.fail(op, code, serverMessage(resp.Body()), nil, ErrFetchFailed)
	}
}

func (c *Client[T]) fail(op string, status int, message string, cause, kind error) error {
	e := &Error{Op: op, Resource: c.cfg.Name, Status: status, Message: message, Kind: kind, Err: cause}
	c.logger.Warn("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("message", message),
		zap.Error(cause),
	)
	return e
}

func (c *Client[T]) encode(entity T) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	obj := map[string]any{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.cfg.Name, err)
	}
	return c.cfg.Fields.ToWire(obj), nil
}

func (c *Client[T]) decodeList(body []byte) ([]T, error) {
	var objs []map[string]any
	if len(strings.TrimSpace(string(body))) == 0 {
		return []T{}, nil
	}
	if err := json.Unmarshal(body, &objs); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", c.cfg.Name, err)
	}
	out := make([]T, 0, len(objs))
	for _, obj := range objs {
		item, err := c.fromObject(obj)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (c *Client[T]) decodeOne(op string, body []byte) (T, error) {
	var zero T
	obj := map[string]any{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return zero, c.fail(op, 0, "", fmt.Errorf("decode %s: %w", c.cfg.Name, err), ErrFetchFailed)
	}
	item, err := c.fromObject(obj)
	if err != nil {
		return zero, c.fail(op, 0, "", err, ErrFetchFailed)
	}
	return item, nil
}

func (c *Client[T]) fromObject(obj map[string]any) (T, error) {
	var item T
	if obj == nil {
		return item, fmt.Errorf("decode %s: null item", c.cfg.Name)
	}
	obj = c.cfg.Fields.FromWire(obj)
	if n, ok := obj["id"].(float64); ok {
		obj["id"] = strconv.FormatFloat(n, 'f', -1, 64)
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return item, err
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decode %s: %w", c.cfg.Name, err)
	}
	return item, nil
}
