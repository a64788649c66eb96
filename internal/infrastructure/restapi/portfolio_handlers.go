package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_tracker/internal/app/port"
	"portfolio_tracker/internal/app/service"
	"portfolio_tracker/internal/domain/entity"
)

// PortfolioHandler serves portfolio and valuation reads.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	valuation        *service.ValuationService
	logger           port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, vs *service.ValuationService, l port.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps, valuation: vs, logger: l}
}

// APIPortfolioResponse is the envelope of portfolio endpoints. Per-account
// fetch failures travel next to the data so callers can tell a failed chain
// from a chain with zero accounts.
type APIPortfolioResponse struct {
	Data struct {
		Portfolio entity.Portfolio `json:"portfolio"`
	} `json:"data"`
	FetchErrors   []entity.AccountFetchError `json:"fetch_errors,omitempty"`
	StatusMessage string                     `json:"status_message"`
}

// GetPortfolioHandler returns the stored portfolio.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	var response APIPortfolioResponse
	response.Data.Portfolio = h.portfolioService.Current()
	if response.Data.Portfolio.AccountCount() == 0 {
		response.StatusMessage = "No portfolio data. Check tracked keys, or trigger a refresh."
	} else {
		response.StatusMessage = "Portfolio retrieved successfully."
	}
	c.JSON(http.StatusOK, response)
}

// RefreshPortfolioHandler re-runs the fetch cycle for the tracked keys and
// returns the freshly derived portfolio.
func (h *PortfolioHandler) RefreshPortfolioHandler(c *gin.Context) {
	portfolio, fetchErrors := h.portfolioService.RefetchTracked(c.Request.Context())

	var response APIPortfolioResponse
	response.Data.Portfolio = portfolio
	response.FetchErrors = fetchErrors
	switch {
	case len(fetchErrors) > 0 && portfolio.AccountCount() == 0:
		response.StatusMessage = "Failed to retrieve any accounts."
	case len(fetchErrors) > 0:
		response.StatusMessage = "Portfolio refreshed. Some accounts encountered errors."
	default:
		response.StatusMessage = "Portfolio refreshed successfully."
	}
	c.JSON(http.StatusOK, response)
}

// assetValue is one row of the valuation response.
type assetValue struct {
	AssetID entity.AssetID `json:"assetId"`
	Symbol  string         `json:"symbol,omitempty"`
	Balance string         `json:"balance"`
	FiatUSD string         `json:"fiatUsd"`
}

// GetValuationHandler returns per-asset fiat values and the rounded total.
func (h *PortfolioHandler) GetValuationHandler(c *gin.Context) {
	held := h.valuation.HeldAssetIDs()
	assets := h.valuation.HeldAssets()

	rows := make([]assetValue, 0, len(held))
	for _, assetID := range held {
		row := assetValue{
			AssetID: assetID,
			Balance: h.valuation.Balance(assetID),
			FiatUSD: h.valuation.FiatBalance(assetID).String(),
		}
		if info, ok := assets[assetID]; ok {
			row.Symbol = info.Symbol
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":       rows,
		"totalFiatUsd": h.valuation.TotalFiatBalance().String(),
	})
}

// GetAssetValueHandler returns the balance and fiat value of one asset,
// identified by the assetId query parameter (CAIP-19 identifiers contain
// slashes, so they do not travel well as path segments).
func (h *PortfolioHandler) GetAssetValueHandler(c *gin.Context) {
	assetID := entity.AssetID(c.Query("assetId"))
	if assetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assetId query parameter is required"})
		return
	}

	c.JSON(http.StatusOK, assetValue{
		AssetID: assetID,
		Balance: h.valuation.Balance(assetID),
		FiatUSD: h.valuation.FiatBalance(assetID).String(),
	})
}
