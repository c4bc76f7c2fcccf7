package proofs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ghostproof/internal/client/models"
	"github.com/dmitrijs2005/ghostproof/internal/common"
	"github.com/dmitrijs2005/ghostproof/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a record by reference. On conflict every non-key column is
// replaced, so a concurrent reader sees either the old or the new record,
// never a mix (single statement).
func (r *SQLiteRepository) Save(ctx context.Context, rec *models.ProofRecord) error {
	signals, err := encodeSignals(rec.PublicSignals)
	if err != nil {
		return fmt.Errorf("failed to encode public signals: %w", err)
	}

	query := ` INSERT INTO proofs (reference, token_symbol, timestamp, status, proof, public_signals)
			values (?, ?, ?, ?, ?, ?)
			ON CONFLICT(reference) DO UPDATE SET token_symbol = excluded.token_symbol,
				timestamp = excluded.timestamp,
				status = excluded.status,
				proof = excluded.proof,
				public_signals = excluded.public_signals
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.Reference, rec.TokenSymbol, rec.Timestamp, string(rec.Status), rec.Proof, signals)
	if err != nil {
		return fmt.Errorf("failed to upsert proof: %w", err)
	}
	return nil
}

// Get returns the record at reference, or (nil, nil) when it does not exist.
func (r *SQLiteRepository) Get(ctx context.Context, reference string) (*models.ProofRecord, error) {
	query := `select reference, token_symbol, timestamp, status, proof, public_signals
		from proofs where reference = ?`

	row := r.db.QueryRowContext(ctx, query, reference)

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select proof: %w", err)
	}
	return rec, nil
}

// GetAll lists every record ordered by timestamp ascending. The reference is
// used as a tie-break so the order is stable across calls.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.ProofRecord, error) {
	query := `select reference, token_symbol, timestamp, status, proof, public_signals
		from proofs order by timestamp asc, reference asc`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select proofs: %w", err)
	}
	defer rows.Close()

	result := make([]models.ProofRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus rewrites the status column of one record, leaving every other
// column untouched. Returns common.ErrNotFound when the reference is absent.
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, reference string, status models.ProofStatus) error {
	res, err := r.db.ExecContext(ctx,
		`update proofs set status = ? where reference = ?`, string(status), reference)
	if err != nil {
		return fmt.Errorf("failed to update proof status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the record at reference. Deleting a missing reference is a
// no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, reference string) error {
	_, err := r.db.ExecContext(ctx, `delete from proofs where reference = ?`, reference)
	if err != nil {
		return fmt.Errorf("failed to delete proof: %w", err)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*models.ProofRecord, error) {
	var rec models.ProofRecord
	var status string
	var signals sql.NullString

	if err := scan(&rec.Reference, &rec.TokenSymbol, &rec.Timestamp, &status, &rec.Proof, &signals); err != nil {
		return nil, err
	}

	rec.Status = models.ProofStatus(status)
	if signals.Valid && signals.String != "" {
		if err := json.Unmarshal([]byte(signals.String), &rec.PublicSignals); err != nil {
			return nil, fmt.Errorf("failed to decode public signals: %w", err)
		}
	}
	return &rec, nil
}

func encodeSignals(signals []string) (any, error) {
	if signals == nil {
		return nil, nil
	}
	b, err := json.Marshal(signals)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
