package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultGateway resolves ipfs:// URIs when no gateway is configured.
const DefaultGateway = "https://ipfs.io/ipfs/"

// Attribute is one trait on a token document.
type Attribute struct {
	TraitType   string      `json:"trait_type"`
	Value       interface{} `json:"value"`
	DisplayType string      `json:"display_type,omitempty"`
}

// Document is the JSON metadata a token URI points at.
type Document struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Image           string      `json:"image"`
	ExternalURL     string      `json:"external_url,omitempty"`
	AnimationURL    string      `json:"animation_url,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	Attributes      []Attribute `json:"attributes,omitempty"`
}

// Fetcher retrieves token metadata documents over HTTP, resolving ipfs://
// URIs through a public gateway.
type Fetcher struct {
	client  *http.Client
	gateway string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithGateway replaces the ipfs:// resolution gateway. The URL should end
// with a path separator, e.g. "https://ipfs.io/ipfs/".
func WithGateway(gateway string) FetcherOption {
	return func(f *Fetcher) {
		f.gateway = gateway
	}
}

// NewFetcher creates a metadata fetcher with a 10 second request timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		gateway: DefaultGateway,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GatewayURL rewrites an ipfs:// URI to its HTTP gateway form. Other URIs
// pass through unchanged.
func (f *Fetcher) GatewayURL(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		return f.gateway + rest
	}
	return uri
}

// Fetch downloads and decodes the document behind a token URI. Any failure
// (empty URI, network error, non-200 status, malformed JSON) yields nil so
// callers can render the token without its metadata.
func (f *Fetcher) Fetch(ctx context.Context, uri string) *Document {
	if uri == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.GatewayURL(uri), nil)
	if err != nil {
		return nil
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil
	}
	return &doc
}

// ImageURL returns the document's image resolved through the gateway, or an
// empty string when there is no document or image.
func (f *Fetcher) ImageURL(doc *Document) string {
	if doc == nil || doc.Image == "" {
		return ""
	}
	return f.GatewayURL(doc.Image)
}

// Summary renders a short one-line description of a document for tables.
func Summary(doc *Document) string {
	if doc == nil {
		return "(no metadata)"
	}
	if doc.Description == "" {
		return doc.Name
	}
	return fmt.Sprintf("%s: %s", doc.Name, doc.Description)
}
