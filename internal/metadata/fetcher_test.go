package metadata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedTransport serves a canned HTTP response and records the request URL.
type fixedTransport struct {
	body   string
	status int
	err    error
	gotURL string
}

func (t *fixedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.gotURL = req.URL.String()
	if t.err != nil {
		return nil, t.err
	}
	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestFetcher(t *fixedTransport) *Fetcher {
	return NewFetcher(WithHTTPClient(&http.Client{Transport: t}))
}

func TestGatewayURLRewritesIPFS(t *testing.T) {
	f := NewFetcher()
	assert.Equal(t, "https://ipfs.io/ipfs/QmHash/1.json", f.GatewayURL("ipfs://QmHash/1.json"))
}

func TestGatewayURLPassesThroughHTTP(t *testing.T) {
	f := NewFetcher()
	assert.Equal(t, "https://example.com/1.json", f.GatewayURL("https://example.com/1.json"))
}

func TestGatewayURLCustomGateway(t *testing.T) {
	f := NewFetcher(WithGateway("https://gateway.pinata.cloud/ipfs/"))
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmHash", f.GatewayURL("ipfs://QmHash"))
}

func TestFetchDecodesDocument(t *testing.T) {
	tr := &fixedTransport{body: `{
		"name": "Sunset #7",
		"description": "A sunset",
		"image": "ipfs://QmImg",
		"attributes": [{"trait_type": "Sky", "value": "Orange"}]
	}`}
	f := newTestFetcher(tr)

	doc := f.Fetch(context.Background(), "ipfs://QmMeta/7.json")
	require.NotNil(t, doc)
	assert.Equal(t, "Sunset #7", doc.Name)
	assert.Equal(t, "ipfs://QmImg", doc.Image)
	require.Len(t, doc.Attributes, 1)
	assert.Equal(t, "Sky", doc.Attributes[0].TraitType)
	assert.Equal(t, "https://ipfs.io/ipfs/QmMeta/7.json", tr.gotURL)
}

func TestFetchEmptyURI(t *testing.T) {
	f := newTestFetcher(&fixedTransport{body: `{}`})
	assert.Nil(t, f.Fetch(context.Background(), ""))
}

func TestFetchNetworkError(t *testing.T) {
	f := newTestFetcher(&fixedTransport{err: errors.New("connection refused")})
	assert.Nil(t, f.Fetch(context.Background(), "https://example.com/1.json"))
}

func TestFetchNon200(t *testing.T) {
	f := newTestFetcher(&fixedTransport{status: http.StatusNotFound, body: "not found"})
	assert.Nil(t, f.Fetch(context.Background(), "https://example.com/1.json"))
}

func TestFetchMalformedJSON(t *testing.T) {
	f := newTestFetcher(&fixedTransport{body: "<html>not json</html>"})
	assert.Nil(t, f.Fetch(context.Background(), "https://example.com/1.json"))
}

func TestImageURL(t *testing.T) {
	f := NewFetcher()
	assert.Equal(t, "https://ipfs.io/ipfs/QmImg", f.ImageURL(&Document{Image: "ipfs://QmImg"}))
	assert.Equal(t, "", f.ImageURL(&Document{}))
	assert.Equal(t, "", f.ImageURL(nil))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "(no metadata)", Summary(nil))
	assert.Equal(t, "Sunset #7", Summary(&Document{Name: "Sunset #7"}))
	assert.Equal(t, "Sunset #7: A sunset", Summary(&Document{Name: "Sunset #7", Description: "A sunset"}))
}
