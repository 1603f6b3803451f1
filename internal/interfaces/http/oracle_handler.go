package httpinterface

import (
	"net/http"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) getOracle(c *gin.Context) {
	oracle, err := h.OracleSvc.GetOracle(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOracleResponse(oracle))
}

func (h *handler) initializeOracle(c *gin.Context) {
	var req initializeOracleRequest
	if !bind(c, &req) {
		return
	}

	if err := h.OracleSvc.Initialize(c.Request.Context(), req.Admin); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOracle(c)
}

func (h *handler) setPriceProvider(c *gin.Context) {
	var req setPriceProviderRequest
	if !bind(c, &req) {
		return
	}

	if err := h.OracleSvc.SetPriceProvider(
		c.Request.Context(), req.Admin, req.Provider,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOracle(c)
}

func (h *handler) updatePrices(c *gin.Context) {
	var req updatePricesRequest
	if !bind(c, &req) {
		return
	}

	quotes := make([]domain.PriceQuote, 0, len(req.Quotes))
	for _, q := range req.Quotes {
		quotes = append(quotes, domain.PriceQuote{
			Currency: q.Currency,
			UsdPrice: q.UsdPrice,
		})
	}
	if err := h.OracleSvc.UpdatePrices(
		c.Request.Context(), req.Authority, quotes,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOracle(c)
}

func (h *handler) getPrice(c *gin.Context) {
	quote, err := h.OracleSvc.GetPrice(c.Request.Context(), c.Param("currency"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, priceQuote(*quote))
}

func (h *handler) registerPriceRoute(c *gin.Context) {
	var req registerPriceRouteRequest
	if !bind(c, &req) {
		return
	}

	routes := make([]domain.PriceRoute, 0, len(req.Routes))
	for _, r := range req.Routes {
		routes = append(routes, domain.PriceRoute(r))
	}
	if err := h.OracleSvc.RegisterPriceRoute(
		c.Request.Context(), req.Admin, req.Denom, routes,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOracle(c)
}

func (h *handler) verifyPrice(c *gin.Context) {
	var req verifyPriceRequest
	if !bind(c, &req) {
		return
	}

	if err := h.OracleSvc.Verify(
		c.Request.Context(), req.Price, req.Currency,
		h.toleranceBps(req.ToleranceBps),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
