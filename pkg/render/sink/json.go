package sink

import (
	"encoding/json"

	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	token  string
	url    string
	layout bool
}

// WithJSONToken records the pattern's token.
func WithJSONToken(token string) JSONOption { return func(r *jsonRenderer) { r.token = token } }

// WithJSONShareURL records the pattern's share URL.
func WithJSONShareURL(url string) JSONOption { return func(r *jsonRenderer) { r.url = url } }

// WithJSONLayout includes the derived drawing geometry.
func WithJSONLayout() JSONOption { return func(r *jsonRenderer) { r.layout = true } }

type jsonOutput struct {
	Token      string             `json:"token,omitempty"`
	URL        string             `json:"url,omitempty"`
	Descriptor pattern.Descriptor `json:"descriptor"`
	Layout     *layout.Layout     `json:"layout,omitempty"`
}

// RenderJSON exports the descriptor, and optionally its token, share URL and
// layout, as a pretty-printed JSON document. The descriptor object uses the
// same field names as the token payload, so it can be fed back to encode.
func RenderJSON(d pattern.Descriptor, l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Token:      r.token,
		URL:        r.url,
		Descriptor: d,
	}
	if r.layout {
		out.Layout = &l
	}
	return json.MarshalIndent(out, "", "  ")
}
