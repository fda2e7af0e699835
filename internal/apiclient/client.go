package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Upload is one binary image travelling with a multipart write.
type Upload struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Request describes a single backend call. Files (or Multipart) switch the
// body to multipart/form-data, in which case Fields carries the scalar values
// and Body is ignored.
type Request struct {
	Method    string
	Path      string
	Token     string
	Body      any
	Fields    map[string]string
	Files     []Upload
	Multipart bool
}

// Doer is the network boundary the rest of the site talks through.
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

type Client struct {
	baseURL string
	timeout time.Duration
	hc      *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		hc:      &http.Client{},
	}
}

// Do issues the request and decodes a 2xx JSON body into out (when out is
// non-nil). Every call runs under its own timeout; nothing is retried.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, contentType, err := encodeBody(r)
	if err != nil {
		return fmt.Errorf("apiclient: encode %s %s: %w", r.Method, r.Path, err)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return fmt.Errorf("apiclient: new request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Method: r.Method, Path: r.Path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: r.Method, Path: r.Path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

func encodeBody(r Request) (io.Reader, string, error) {
	if len(r.Files) > 0 || r.Multipart {
		return encodeMultipart(r.Fields, r.Files)
	}
	if r.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

func encodeMultipart(fields map[string]string, files []Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(fields) {
		if err := w.WriteField(key, fields[key]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		field := f.Field
		if field == "" {
			field = "images"
		}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.FileName))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
