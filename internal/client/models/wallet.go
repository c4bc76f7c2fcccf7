package models

// TokenInfo is one token balance row.
type TokenInfo struct {
	Symbol  string `json:"symbol"`
	Balance string `json:"balance"`
}

// WalletInfo is the balance snapshot for a principal. Balances are decimal
// strings in token base units, as returned by the gateway.
type WalletInfo struct {
	Address      string      `json:"address"`
	TotalBalance string      `json:"total_balance"`
	Tokens       []TokenInfo `json:"tokens"`
}
