package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type headerIdentity struct{ token string }

func (i *headerIdentity) Principal() string { return "test-principal" }
func (i *headerIdentity) Authorize(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+i.token)
}

func TestHTTPClient_GenerateProof(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/proofs", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")

		var req generateProofRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GHOST", req.TokenID)
		assert.Equal(t, "100", req.Amount)

		json.NewEncoder(w).Encode(ZKProof{
			Proof:         []byte{1, 2, 3},
			PublicSignals: []string{"GHOST", "100"},
			Reference:     "abc123",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	c.SetCredential(&headerIdentity{token: "tok"})

	proof, err := c.GenerateProof(context.Background(), "GHOST", "100")
	require.NoError(t, err)
	assert.Equal(t, "abc123", proof.Reference)
	assert.Equal(t, []byte{1, 2, 3}, proof.Proof)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestHTTPClient_VerifyProof(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/proofs/abc123/verify", r.URL.Path)
		json.NewEncoder(w).Encode(verifyProofResponse{Valid: true})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	valid, err := c.VerifyProof(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, common.ErrInvalidInput},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, common.ErrNotFound},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, nil)
			_, err := c.GenerateProof(context.Background(), "GHOST", "1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHTTPClient_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_FetchWalletInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/wallets/ghost-abc", r.URL.Path)
		w.Write([]byte(`{"address":"ghost-abc","total_balance":"10.00","tokens":[{"symbol":"GHOST","balance":"10.00"}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	info, err := c.FetchWalletInfo(context.Background(), "ghost-abc")
	require.NoError(t, err)
	assert.Equal(t, "ghost-abc", info.Address)
	require.Len(t, info.Tokens, 1)
	assert.Equal(t, "GHOST", info.Tokens[0].Symbol)
}

func TestHTTPClient_NoCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	require.NoError(t, c.Ping(context.Background()))
}
