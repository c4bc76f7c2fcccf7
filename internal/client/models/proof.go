// Package models contains the client-side domain types: proof records kept in
// the local ledger and wallet/balance snapshots returned by the gateway.
package models

// ProofStatus is the lifecycle state of a proof record.
type ProofStatus string

const (
	StatusPending  ProofStatus = "pending"
	StatusVerified ProofStatus = "verified"
	StatusFailed   ProofStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s ProofStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusFailed:
		return true
	}
	return false
}

// ProofRecord is one entry of the local proof ledger.
//
// Reference is the unique ledger key, assigned by the proof service when the
// proof is generated. Reference, TokenSymbol and Timestamp are immutable after
// creation; only Status (and the attached proof data via a full re-save)
// changes afterwards.
type ProofRecord struct {
	Reference     string
	TokenSymbol   string
	Timestamp     int64 // epoch milliseconds
	Status        ProofStatus
	Proof         []byte
	PublicSignals []string
}
