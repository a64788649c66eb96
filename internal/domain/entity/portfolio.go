package entity

// PortfolioAccounts indexes the ordered asset list of every account.
// IDs preserves insertion order so iteration is stable across reads; the
// order itself carries no meaning.
type PortfolioAccounts struct {
	ByID map[AccountID][]AssetID `json:"byId"`
	IDs  []AccountID             `json:"ids"`
}

// PortfolioBalances indexes base-unit balance strings by asset identifier.
type PortfolioBalances struct {
	ByID map[AssetID]string `json:"byId"`
	IDs  []AssetID          `json:"ids"`
}

// Portfolio is the unified balance/account index derived from raw chain
// account records. Invariant: every asset identifier appearing in any
// account's asset list is also a key of Balances (possibly with a zero
// balance). A Portfolio is always replaced wholesale, never patched.
type Portfolio struct {
	Accounts PortfolioAccounts `json:"accounts"`
	Balances PortfolioBalances `json:"balances"`
}

// NewPortfolio returns an empty portfolio with initialised indexes.
func NewPortfolio() Portfolio {
	return Portfolio{
		Accounts: PortfolioAccounts{ByID: make(map[AccountID][]AssetID), IDs: []AccountID{}},
		Balances: PortfolioBalances{ByID: make(map[AssetID]string), IDs: []AssetID{}},
	}
}

// AddAccountAsset appends an asset to an account's asset list, registering
// the account on first use.
func (p *Portfolio) AddAccountAsset(accountID AccountID, assetID AssetID) {
	if _, exists := p.Accounts.ByID[accountID]; !exists {
		p.Accounts.IDs = append(p.Accounts.IDs, accountID)
	}
	p.Accounts.ByID[accountID] = append(p.Accounts.ByID[accountID], assetID)
}

// SetBalance records the base-unit balance of an asset. An empty balance is
// stored as "0" so the asset always has a balance entry.
func (p *Portfolio) SetBalance(assetID AssetID, balance string) {
	if balance == "" {
		balance = "0"
	}
	if _, exists := p.Balances.ByID[assetID]; !exists {
		p.Balances.IDs = append(p.Balances.IDs, assetID)
	}
	p.Balances.ByID[assetID] = balance
}

// UpsertBalance adds a base-unit balance onto an asset's existing entry,
// creating the entry when absent. Used when several accounts hold the same
// asset. The summing itself is done by the caller-supplied add func so this
// package stays arithmetic-free.
func (p *Portfolio) UpsertBalance(assetID AssetID, balance string, add func(existing, delta string) string) {
	if balance == "" {
		balance = "0"
	}
	existing, exists := p.Balances.ByID[assetID]
	if !exists {
		p.Balances.IDs = append(p.Balances.IDs, assetID)
		p.Balances.ByID[assetID] = balance
		return
	}
	p.Balances.ByID[assetID] = add(existing, balance)
}

// AccountCount returns the number of accounts in the portfolio.
func (p *Portfolio) AccountCount() int { return len(p.Accounts.IDs) }

// AssetCount returns the number of assets with a recorded balance.
func (p *Portfolio) AssetCount() int { return len(p.Balances.IDs) }
