package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/dmitrijs2005/ghostproof/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// DelegationBackend authenticates through a remote identity gateway. The
// interactive flow creates a login session, hands the user an approval URL,
// and polls until the gateway reports the session approved; the gateway then
// returns a short-lived delegation token (a JWT whose subject is the
// principal). The token is cached in a file so an unexpired session survives
// process restarts.
type DelegationBackend struct {
	gatewayURL    string
	tokenFile     string
	pollInterval  time.Duration
	httpClient    *http.Client
	onApprovalURL func(url string)
	log           logging.Logger

	mu    sync.Mutex
	token string
}

// DelegationOptions configures a DelegationBackend.
type DelegationOptions struct {
	// GatewayURL is the base URL of the identity gateway.
	GatewayURL string
	// TokenFile is where the delegation token is cached (created mode 0600).
	TokenFile string
	// PollInterval is the delay between approval polls. Defaults to 2s.
	PollInterval time.Duration
	// OnApprovalURL is invoked once per login with the URL the user must
	// open to approve the session.
	OnApprovalURL func(url string)
	// HTTPClient overrides the transport; nil means a 15s-timeout default.
	HTTPClient *http.Client
}

func NewDelegationBackend(opts DelegationOptions, log logging.Logger) *DelegationBackend {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.OnApprovalURL == nil {
		opts.OnApprovalURL = func(string) {}
	}
	return &DelegationBackend{
		gatewayURL:    strings.TrimRight(opts.GatewayURL, "/"),
		tokenFile:     opts.TokenFile,
		pollInterval:  opts.PollInterval,
		httpClient:    opts.HTTPClient,
		onApprovalURL: opts.OnApprovalURL,
		log:           log,
	}
}

func (b *DelegationBackend) Method() Method { return MethodDelegation }

// ProbeActiveSession reports whether a cached delegation token exists and has
// not expired. An unreadable or expired token counts as "no session", not as
// an error.
func (b *DelegationBackend) ProbeActiveSession(ctx context.Context) (bool, error) {
	token := b.loadToken()
	if token == "" {
		return false, nil
	}
	if _, err := principalFromToken(token); err != nil {
		b.log.Debug(ctx, "dropping unusable delegation token", "reason", err)
		b.clearToken()
		return false, nil
	}
	return true, nil
}

type sessionCreateResponse struct {
	Code        string `json:"code"`
	ApprovalURL string `json:"approval_url"`
}

type sessionPollResponse struct {
	Status     string `json:"status"` // pending | approved | denied
	Delegation string `json:"delegation,omitempty"`
}

// BeginInteractiveLogin creates a login session at the gateway, reports the
// approval URL to the user, and polls until the session is approved, denied,
// or the context is cancelled.
func (b *DelegationBackend) BeginInteractiveLogin(ctx context.Context) error {
	var created sessionCreateResponse
	if err := b.doJSON(ctx, http.MethodPost, "/api/v1/sessions", &created); err != nil {
		return err
	}
	if created.Code == "" {
		return fmt.Errorf("%w: empty session code", common.ErrBackendUnavailable)
	}

	b.onApprovalURL(created.ApprovalURL)

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", common.ErrCancelled, ctx.Err())
		case <-ticker.C:
		}

		var polled sessionPollResponse
		if err := b.doJSON(ctx, http.MethodGet, "/api/v1/sessions/"+created.Code, &polled); err != nil {
			return err
		}

		switch polled.Status {
		case "pending":
			continue
		case "approved":
			if _, err := principalFromToken(polled.Delegation); err != nil {
				return fmt.Errorf("gateway returned unusable delegation: %w", err)
			}
			return b.storeToken(polled.Delegation)
		case "denied":
			return common.ErrCancelled
		default:
			return fmt.Errorf("%w: unexpected session status %q", common.ErrBackendUnavailable, polled.Status)
		}
	}
}

// EndSession revokes the delegation at the gateway and drops the cached
// token. The local token is cleared even when the revoke call fails, so the
// session never lingers locally; the remote failure is returned for logging.
func (b *DelegationBackend) EndSession(ctx context.Context) error {
	token := b.loadToken()
	b.clearToken()

	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.gatewayURL+"/api/v1/sessions/revoke", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: revoke returned %s", common.ErrBackendUnavailable, resp.Status)
	}
	return nil
}

// CurrentIdentity returns the identity carried by the cached token, or nil
// when there is no usable session.
func (b *DelegationBackend) CurrentIdentity() Identity {
	token := b.loadToken()
	if token == "" {
		return nil
	}
	principal, err := principalFromToken(token)
	if err != nil {
		return nil
	}
	return &delegationIdentity{principal: principal, token: token}
}

func (b *DelegationBackend) doJSON(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, b.gatewayURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: identity gateway returned %s", common.ErrBackendUnavailable, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	return json.Unmarshal(body, out)
}

func (b *DelegationBackend) loadToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.token != "" {
		return b.token
	}
	if b.tokenFile == "" {
		return ""
	}
	data, err := os.ReadFile(b.tokenFile)
	if err != nil {
		return ""
	}
	b.token = strings.TrimSpace(string(data))
	return b.token
}

func (b *DelegationBackend) storeToken(token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.token = token
	if b.tokenFile == "" {
		return nil
	}
	if err := os.WriteFile(b.tokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to cache delegation token: %w", err)
	}
	return nil
}

func (b *DelegationBackend) clearToken() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.token = ""
	if b.tokenFile != "" {
		_ = os.Remove(b.tokenFile)
	}
}

// principalFromToken extracts the subject of an unexpired delegation token.
// The token signature is the gateway's concern; the client only inspects the
// claims to learn the principal and the expiry.
func principalFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return "", common.ErrInvalidToken
	}
	if time.Now().After(exp.Time) {
		return "", common.ErrTokenExpired
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", common.ErrInvalidToken
	}
	return sub, nil
}

type delegationIdentity struct {
	principal string
	token     string
}

func (d *delegationIdentity) Principal() string { return d.principal }

func (d *delegationIdentity) Authorize(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+d.token)
}

var _ Backend = (*DelegationBackend)(nil)
