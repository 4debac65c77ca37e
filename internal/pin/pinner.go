package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoCredentials is returned when pinning is attempted without API keys.
var ErrNoCredentials = errors.New("pinning service credentials not configured")

// Pinner uploads JSON documents to a pinning service and returns ipfs:// URIs
// for them. The request shape follows the Pinata pinJSONToIPFS API.
type Pinner struct {
	client   *http.Client
	endpoint string
	gateway  string
	key      string
	secret   string
}

// PinnerOption configures a Pinner.
type PinnerOption func(*Pinner)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) PinnerOption {
	return func(p *Pinner) {
		p.client = c
	}
}

// NewPinner creates a pinner against the given service endpoint. The gateway
// is used by GatewayURL to build a browsable link for a pinned hash.
func NewPinner(endpoint, gateway, key, secret string, opts ...PinnerOption) *Pinner {
	p := &Pinner{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
		gateway:  gateway,
		key:      key,
		secret:   secret,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type pinRequest struct {
	PinataContent interface{} `json:"pinataContent"`
	PinataOptions struct {
		CidVersion int `json:"cidVersion"`
	} `json:"pinataOptions"`
	PinataMetadata struct {
		Name string `json:"name"`
	} `json:"pinataMetadata"`
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
	Error    string `json:"error"`
}

// PinJSON uploads a JSON-serializable document under the given name and
// returns its content hash.
func (p *Pinner) PinJSON(ctx context.Context, name string, content interface{}) (string, error) {
	if p.key == "" || p.secret == "" {
		return "", ErrNoCredentials
	}

	var reqBody pinRequest
	reqBody.PinataContent = content
	reqBody.PinataOptions.CidVersion = 1
	reqBody.PinataMetadata.Name = name

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding pin request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("pinata_api_key", p.key)
	req.Header.Set("pinata_secret_api_key", p.secret)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinning request failed: %w", err)
	}
	defer resp.Body.Close()

	var result pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding pin response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return "", fmt.Errorf("pinning service: %s", result.Error)
		}
		return "", fmt.Errorf("pinning service returned status %d", resp.StatusCode)
	}
	if result.IpfsHash == "" {
		return "", errors.New("pinning service returned no hash")
	}
	return result.IpfsHash, nil
}

// URI returns the ipfs:// form of a pinned hash, suitable for token URIs.
func (p *Pinner) URI(hash string) string {
	return "ipfs://" + hash
}

// GatewayURL returns a browsable HTTP link for a pinned hash.
func (p *Pinner) GatewayURL(hash string) string {
	return p.gateway + hash
}
