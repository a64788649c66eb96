package entity

// AccountFetchError records the failure of one account fetch or
// normalization step. Failed accounts are omitted from the portfolio but
// stay observable to callers, logs and metrics through these records.
type AccountFetchError struct {
	ChainID   ChainID   `json:"chainId"`
	PubKey    string    `json:"pubkey,omitempty"`
	AccountID AccountID `json:"accountId,omitempty"`
	Message   string    `json:"message"`
}
