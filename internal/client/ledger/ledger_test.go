package ledger

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestOpen_AppliesMigrations(t *testing.T) {
	l := openLedger(t)

	all, err := l.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	l := openLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Save(ctx, &models.ProofRecord{
		Reference: "ref1", TokenSymbol: "GHOST", Timestamp: 1, Status: models.StatusPending,
	}))

	// a second migration pass must not corrupt or duplicate the schema
	require.NoError(t, RunMigrations(ctx, l.db))

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedger_SaveGetRoundTrip(t *testing.T) {
	l := openLedger(t)
	ctx := context.Background()

	rec := &models.ProofRecord{
		Reference:     "abc123",
		TokenSymbol:   "GHOST",
		Timestamp:     1000,
		Status:        models.StatusPending,
		Proof:         []byte{0xde, 0xad},
		PublicSignals: []string{"GHOST", "500"},
	}
	require.NoError(t, l.Save(ctx, rec))

	got, err := l.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestLedger_ListOrder(t *testing.T) {
	l := openLedger(t)
	ctx := context.Background()

	for _, ts := range []int64{300, 100, 200} {
		require.NoError(t, l.Save(ctx, &models.ProofRecord{
			Reference:   "ref-" + string(rune('a'+ts/100)),
			TokenSymbol: "T",
			Timestamp:   ts,
			Status:      models.StatusPending,
		}))
	}

	all, err := l.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{100, 200, 300}, []int64{all[0].Timestamp, all[1].Timestamp, all[2].Timestamp})
}

func TestOpen_BadPathFails(t *testing.T) {
	_, err := Open(context.Background(), "file:/nonexistent-dir/nope/ledger.db?mode=rw")
	assert.Error(t, err)
}
