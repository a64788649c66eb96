package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_tracker/internal/app/port"
)

// WalletHandler serves wallet session state. Disconnecting clears the
// stored portfolio via the session's disconnect hook.
type WalletHandler struct {
	session port.WalletSession
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(session port.WalletSession) *WalletHandler {
	return &WalletHandler{session: session}
}

type connectRequest struct {
	WalletID string `json:"walletId" binding:"required"`
}

// ConnectHandler marks the session as connected.
func (h *WalletHandler) ConnectHandler(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "walletId is required"})
		return
	}
	h.session.Connect(req.WalletID)
	c.JSON(http.StatusOK, gin.H{"connected": true, "walletId": req.WalletID})
}

// DisconnectHandler ends the session and clears the portfolio.
func (h *WalletHandler) DisconnectHandler(c *gin.Context) {
	h.session.Disconnect()
	c.JSON(http.StatusOK, gin.H{"connected": false})
}

// StatusHandler reports the current session state.
func (h *WalletHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected": h.session.IsConnected(),
		"walletId":  h.session.WalletID(),
	})
}
