package frappe

import (
	"bytes"
	"context"
	"io"
	"time"
)

// RawResponse is a backend answer relayed without envelope handling.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Forward sends a JSON body to path with the client's auth and returns the
// backend status and body as-is. Only transport failures are errors.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte) (*RawResponse, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := c.newRequest(ctx, method, path, rdr)
	if err != nil {
		return nil, &BackendError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("forward", 0, start, err)
		return nil, &BackendError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.observe("forward", resp.StatusCode, start, err)
	if err != nil {
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: "read response: " + err.Error(), Err: err}
	}
	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}
