package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cryptodata/crypto-data-api/internal/core/ports"
)

// MarketHandler exposes the order-book data gateway to active users.
type MarketHandler struct {
	marketService ports.MarketService
}

func NewMarketHandler(marketService ports.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// Symbols handles GET /market/symbols, listing trading pairs with
// recent snapshots.
//
// @Summary      List available trading pairs
// @Tags         market
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   string
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /market/symbols [get]
func (h *MarketHandler) Symbols(c echo.Context) error {
	symbols, err := h.marketService.AvailableSymbols(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, symbols)
}

// Data handles GET /market/data/:symbol, returning snapshots newest
// first.
//
// @Summary      Order-book snapshots for a trading pair
// @Tags         market
// @Produce      json
// @Security     BearerAuth
// @Param        symbol  path      string  true   "Trading pair, e.g. BTCUSDT"
// @Param        limit   query     int     false  "Snapshots to return (1-1000, default 100)"
// @Success      200   {object}  ports.SymbolData
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /market/data/{symbol} [get]
func (h *MarketHandler) Data(c echo.Context) error {
	data, err := h.marketService.SymbolData(c.Request().Context(), c.Param("symbol"), intQuery(c, "limit", 100))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}
