package frappe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// Filters are equality filters keyed by field name.
type Filters map[string]any

type ListOptions struct {
	Fields  []string
	Filters Filters
	Limit   int
	Offset  int
	// OrderBy is passed through, e.g. "creation desc".
	OrderBy string
}

func (o ListOptions) query() (url.Values, error) {
	q := url.Values{}
	if o.Fields != nil {
		b, err := json.Marshal(o.Fields)
		if err != nil {
			return nil, err
		}
		q.Set("fields", string(b))
	}
	if o.Filters != nil {
		b, err := json.Marshal(o.Filters)
		if err != nil {
			return nil, err
		}
		q.Set("filters", string(b))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.OrderBy != "" {
		q.Set("order_by", o.OrderBy)
	}
	return q, nil
}

// GetDocument fetches one document and decodes its payload into out.
func (c *Client) GetDocument(ctx context.Context, doctype, name string, out any) error {
	env, err := c.call(ctx, "get_document", http.MethodGet, resourcePath(doctype, name), nil)
	if err != nil {
		return err
	}
	return decodePayload(env.Payload(), out)
}

// ListDocuments decodes the matching documents into out, which should be a
// pointer to a slice.
func (c *Client) ListDocuments(ctx context.Context, doctype string, opts ListOptions, out any) error {
	q, err := opts.query()
	if err != nil {
		return &BackendError{Message: "encode list options: " + err.Error(), Err: err}
	}
	path := resourcePath(doctype)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	env, err := c.call(ctx, "list_documents", http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodePayload(env.Payload(), out)
}

func (c *Client) CreateDocument(ctx context.Context, doctype string, data, out any) error {
	env, err := c.call(ctx, "create_document", http.MethodPost, resourcePath(doctype), data)
	if err != nil {
		return err
	}
	return decodePayload(env.Payload(), out)
}

func (c *Client) UpdateDocument(ctx context.Context, doctype, name string, data, out any) error {
	env, err := c.call(ctx, "update_document", http.MethodPut, resourcePath(doctype, name), data)
	if err != nil {
		return err
	}
	return decodePayload(env.Payload(), out)
}

// DeleteDocument reports success as a boolean. Failures are logged and
// returned as false, never as an error.
func (c *Client) DeleteDocument(ctx context.Context, doctype, name string) bool {
	if _, err := c.call(ctx, "delete_document", http.MethodDelete, resourcePath(doctype, name), nil); err != nil {
		c.log.Warn("frappe delete document failed",
			zap.String("doctype", doctype), zap.String("name", name), zap.Error(err))
		return false
	}
	return true
}

// CallMethod invokes a whitelisted server method and decodes its message.
// A response without a message leaves out untouched.
func (c *Client) CallMethod(ctx context.Context, method string, args, out any) error {
	env, err := c.call(ctx, "call_method", http.MethodPost, methodPath(method), args)
	if err != nil {
		return err
	}
	p := env.MessagePayload()
	if p.Kind == PayloadEmpty {
		return nil
	}
	return decodePayload(p, out)
}

func decodePayload(p Payload, out any) error {
	if err := p.Decode(out); err != nil {
		return &BackendError{Message: "decode payload: " + err.Error(), Err: err}
	}
	return nil
}
