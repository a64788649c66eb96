package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/domain/entity"
)

// Action intents dispatched to the client. A connected wallet gets the
// requested modal pre-populated with asset and account; a disconnected one
// gets a wallet-connect prompt instead.
const (
	ActionSend    = "send"
	ActionReceive = "receive"

	IntentOpenModal     = "open-modal"
	IntentConnectWallet = "connect-wallet"
)

// ActionIntent is the dispatch result of a send/receive activation.
type ActionIntent struct {
	Intent    string           `json:"intent"`
	Modal     string           `json:"modal,omitempty"`
	AssetID   entity.AssetID   `json:"assetId,omitempty"`
	AccountID entity.AccountID `json:"accountId,omitempty"`
}

// actionRequest is the body of send/receive activations.
type actionRequest struct {
	AssetID   string `json:"assetId" binding:"required"`
	AccountID string `json:"accountId"`
}

// ActionHandler dispatches send/receive intents gated on wallet-connection
// state. It holds no state of its own beyond the shared session.
type ActionHandler struct {
	session port.WalletSession
	metrics *Metrics
	logger  port.Logger
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(session port.WalletSession, metrics *Metrics, l port.Logger) *ActionHandler {
	return &ActionHandler{session: session, metrics: metrics, logger: l}
}

// SendHandler activates the send affordance for an asset.
func (h *ActionHandler) SendHandler(c *gin.Context) {
	h.dispatch(c, ActionSend)
}

// ReceiveHandler activates the receive affordance for an asset.
func (h *ActionHandler) ReceiveHandler(c *gin.Context) {
	h.dispatch(c, ActionReceive)
}

func (h *ActionHandler) dispatch(c *gin.Context, action string) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId is required"})
		return
	}

	if !h.session.IsConnected() {
		h.logger.Debug("Action requested without wallet connection, prompting connect", "action", action)
		if h.metrics != nil {
			h.metrics.actionDispatched(action, "connect-prompt")
		}
		c.JSON(http.StatusOK, ActionIntent{Intent: IntentConnectWallet})
		return
	}

	if h.metrics != nil {
		h.metrics.actionDispatched(action, "modal")
	}
	c.JSON(http.StatusOK, ActionIntent{
		Intent:    IntentOpenModal,
		Modal:     action,
		AssetID:   entity.AssetID(req.AssetID),
		AccountID: entity.AccountID(req.AccountID),
	})
}
