package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClient_DeterministicProofs(t *testing.T) {
	c := NewMockClient()

	p1, err := c.GenerateProof(context.Background(), "GHOST", "100")
	require.NoError(t, err)
	p2, err := c.GenerateProof(context.Background(), "GHOST", "100")
	require.NoError(t, err)

	assert.Equal(t, p1.Reference, p2.Reference)
	assert.Equal(t, p1.Proof, p2.Proof)

	p3, err := c.GenerateProof(context.Background(), "GHOST", "101")
	require.NoError(t, err)
	assert.NotEqual(t, p1.Reference, p3.Reference)
}

func TestMockClient_VerifyProof(t *testing.T) {
	c := NewMockClient()

	p, err := c.GenerateProof(context.Background(), "TEST", "50")
	require.NoError(t, err)

	valid, err := c.VerifyProof(context.Background(), p.Reference)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = c.VerifyProof(context.Background(), "deadbeef")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestMockClient_FetchWalletInfo(t *testing.T) {
	c := NewMockClient()

	info, err := c.FetchWalletInfo(context.Background(), "ghost-abc")
	require.NoError(t, err)
	assert.Equal(t, "ghost-abc", info.Address)
	assert.Len(t, info.Tokens, 3)
}
