package restapi

import (
	"net/http"

	"pnl_tracker/internal/app/port"
	"pnl_tracker/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// WalletRequest is the body of the POST endpoints.
type WalletRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// APIErrorResponse is the single error shape of the API.
type APIErrorResponse struct {
	Error     string `json:"error"`
	ErrorKind string `json:"errorKind"`
}

// PortfolioHandler handles the portfolio and today endpoints.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	logger           port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, l port.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps, logger: l}
}

// PostPortfolioSummaryHandler serves POST /portfolio-summary.
func (h *PortfolioHandler) PostPortfolioSummaryHandler(c *gin.Context) {
	wallet, ok := h.bindWallet(c)
	if !ok {
		return
	}
	h.portfolio(c, wallet)
}

// PostTodayTransactionsHandler serves POST /today-transactions.
func (h *PortfolioHandler) PostTodayTransactionsHandler(c *gin.Context) {
	wallet, ok := h.bindWallet(c)
	if !ok {
		return
	}
	h.today(c, wallet)
}

// GetWalletPortfolioHandler serves GET /wallets/:walletAddress/portfolio.
func (h *PortfolioHandler) GetWalletPortfolioHandler(c *gin.Context) {
	h.portfolio(c, c.Param("walletAddress"))
}

// GetWalletTodayHandler serves GET /wallets/:walletAddress/today.
func (h *PortfolioHandler) GetWalletTodayHandler(c *gin.Context) {
	h.today(c, c.Param("walletAddress"))
}

func (h *PortfolioHandler) portfolio(c *gin.Context, wallet string) {
	view, err := h.portfolioService.GetPortfolioSummary(c.Request.Context(), wallet)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PortfolioHandler) today(c *gin.Context, wallet string) {
	view, err := h.portfolioService.GetTodayTransactions(c.Request.Context(), wallet)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PortfolioHandler) bindWallet(c *gin.Context) (string, bool) {
	var req WalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Failed to decode request body", "path", c.FullPath(), "error", err)
		h.writeError(c, entity.NewInvalidInputError("Invalid request body"))
		return "", false
	}
	return req.WalletAddress, true
}

// writeError answers every fatal error with 500 and the caller-facing message.
func (h *PortfolioHandler) writeError(c *gin.Context, err error) {
	kind := entity.KindOf(err)
	h.logger.Error("Request failed", "path", c.FullPath(), "kind", string(kind), "error", err, "request_id", c.GetString(requestIDKey))
	c.AbortWithStatusJSON(http.StatusInternalServerError, APIErrorResponse{
		Error:     entity.PublicMessage(err),
		ErrorKind: string(kind),
	})
}
