package frappe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// File is the content handed to UploadFile.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadOptions attach the uploaded file to a document field. Empty strings
// and a nil IsPrivate are not sent.
type UploadOptions struct {
	Doctype   string
	Docname   string
	Fieldname string
	Folder    string
	IsPrivate *bool
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadFile sends f as multipart/form-data to /api/method/upload_file and
// decodes the stored File document into out.
func (c *Client) UploadFile(ctx context.Context, f File, opts UploadOptions, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return &BackendError{Message: "build upload: " + err.Error(), Err: err}
	}
	if f.Content != nil {
		if _, err := io.Copy(part, f.Content); err != nil {
			return &BackendError{Message: "read upload content: " + err.Error(), Err: err}
		}
	}

	fields := []struct{ k, v string }{
		{"doctype", opts.Doctype},
		{"docname", opts.Docname},
		{"fieldname", opts.Fieldname},
		{"folder", opts.Folder},
	}
	for _, fld := range fields {
		if fld.v == "" {
			continue
		}
		if err := mw.WriteField(fld.k, fld.v); err != nil {
			return &BackendError{Message: "build upload: " + err.Error(), Err: err}
		}
	}
	if opts.IsPrivate != nil {
		v := "0"
		if *opts.IsPrivate {
			v = "1"
		}
		if err := mw.WriteField("is_private", v); err != nil {
			return &BackendError{Message: "build upload: " + err.Error(), Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return &BackendError{Message: "build upload: " + err.Error(), Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/method/upload_file", &buf)
	if err != nil {
		return &BackendError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.do("upload_file", req, "Upload failed")
	if err != nil {
		return err
	}
	return decodePayload(env.MessagePayload(), out)
}

// Bool returns a pointer to b, for UploadOptions.IsPrivate.
func Bool(b bool) *bool { return &b }
