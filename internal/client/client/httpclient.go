package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/client/identity"
	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the proof gateway.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu   sync.Mutex
	cred identity.Identity
}

// NewHTTPClient builds a client for the gateway at baseURL. A nil httpClient
// gets a 30s-timeout default.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetCredential installs the identity used to authorize subsequent calls.
// Passing nil clears it, after which requests go out unauthenticated.
func (c *HTTPClient) SetCredential(id identity.Identity) {
	c.mu.Lock()
	c.cred = id
	c.mu.Unlock()
}

func (c *HTTPClient) credential() identity.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cred
}

type generateProofRequest struct {
	TokenID string `json:"token_id"`
	Amount  string `json:"amount"`
}

// GenerateProof asks the gateway to produce a balance proof for
// (tokenID, amount).
func (c *HTTPClient) GenerateProof(ctx context.Context, tokenID string, amount string) (*ZKProof, error) {
	var proof ZKProof
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/proofs",
		generateProofRequest{TokenID: tokenID, Amount: amount}, &proof)
	if err != nil {
		return nil, err
	}
	if proof.Reference == "" {
		return nil, fmt.Errorf("%w: gateway returned proof without reference", ErrUnavailable)
	}
	return &proof, nil
}

type verifyProofResponse struct {
	Valid bool `json:"valid"`
}

// VerifyProof asks the gateway to verify a previously generated proof by
// reference.
func (c *HTTPClient) VerifyProof(ctx context.Context, reference string) (bool, error) {
	var resp verifyProofResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/proofs/"+reference+"/verify", nil, &resp)
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// FetchWalletInfo reads the token balances of a principal.
func (c *HTTPClient) FetchWalletInfo(ctx context.Context, principal string) (*models.WalletInfo, error) {
	var info models.WalletInfo
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/wallets/"+principal, nil, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Ping checks gateway liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/healthz", nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.credential(); cred != nil {
		cred.Authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return json.Unmarshal(data, out)
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: gateway rejected request", common.ErrInvalidInput)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: gateway returned %s", ErrUnavailable, resp.Status)
	default:
		return fmt.Errorf("unexpected gateway response: %s", resp.Status)
	}
}

var _ Client = (*HTTPClient)(nil)
