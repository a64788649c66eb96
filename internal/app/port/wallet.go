package port

// WalletSession tracks the wallet-connection state that gates send/receive
// actions.
type WalletSession interface {
	// IsConnected reports whether a wallet is currently connected.
	IsConnected() bool

	// Connect marks the session as connected to the given wallet.
	Connect(walletID string)

	// Disconnect ends the session. The stored portfolio is cleared as part
	// of the disconnect.
	Disconnect()

	// WalletID returns the connected wallet identifier, empty when
	// disconnected.
	WalletID() string
}
