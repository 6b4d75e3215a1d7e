package domain

// Token represents the token's domain model: display metadata for a denom.
type Token struct {
	// Denom is the chain denomination of the token, e.g. uosmo.
	Denom string `json:"denom"`
	// Symbol is the human readable symbol, e.g. OSMO.
	Symbol string `json:"symbol"`
	// Precision is the precision exponent of the token, e.g. 6 for uosmo.
	Precision int `json:"decimals"`
}
