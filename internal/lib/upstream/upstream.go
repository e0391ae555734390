// Package upstream holds the response-interpretation rules shared by
// every outbound API client in the service.
//
// Remote replies are modeled as a tagged JSON-or-text body decided by
// Content-Type, with a fallback arm for JSON that fails to parse. The
// shape is never assumed from the status code alone.
package upstream

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

// Kind tags how a response body was interpreted.
type Kind string

const (
	// KindJSON marks a body decoded from JSON.
	KindJSON Kind = "json"

	// KindText marks a body kept as raw text, either because the
	// content type was not JSON or because a JSON-labeled body failed
	// to parse.
	KindText Kind = "text"
)

// Body is the tagged result of reading an upstream response. Exactly one
// of JSON or Text carries the payload, selected by Kind.
type Body struct {
	Kind Kind
	JSON any
	Text string
}

// Value returns whichever representation the body holds, for embedding
// into a tool's success response.
func (b *Body) Value() any {
	if b.Kind == KindJSON {
		return b.JSON
	}
	return b.Text
}

// String renders the body for inclusion in an error message.
func (b *Body) String() string {
	if b.Kind == KindJSON {
		if encoded, err := json.Marshal(b.JSON); err == nil {
			return string(encoded)
		}
	}
	return b.Text
}

// ReadBody reads and interprets a response body.
//
// A JSON-labeled body that fails to parse falls back to text rather than
// erroring: upstream error pages lie about their content type often
// enough that strictness here would only obscure the real failure.
func ReadBody(name string, resp *http.Response) (*Body, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewTransportError(name, err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return &Body{Kind: KindJSON, JSON: decoded}, nil
		}
	}

	return &Body{Kind: KindText, Text: string(raw)}, nil
}

// Check converts a non-2xx reply into an upstream error embedding the
// status code, status text, and stringified body. It returns the parsed
// body on success so callers read the response exactly once.
func Check(name string, resp *http.Response) (*Body, error) {
	body, err := ReadBody(name, resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.NewUpstreamError(name, resp.StatusCode, body.String())
	}

	return body, nil
}
