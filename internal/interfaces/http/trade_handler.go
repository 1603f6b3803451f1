package httpinterface

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) createTrade(c *gin.Context) {
	var req createTradeRequest
	if !bind(c, &req) {
		return
	}

	key, err := h.TradeSvc.CreateTrade(
		c.Request.Context(), req.Initiator, req.Counterparty, req.TokenMint,
		req.Amount, req.Price,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, keyResponse{key})
}

func (h *handler) listTrades(c *gin.Context) {
	party, ok := parseIdentityQuery(c, "party")
	if !ok {
		return
	}
	if party == nil {
		abortWithBadRequest(c, errors.New("missing party query parameter"))
		return
	}

	trades, err := h.TradeSvc.GetTradesByParty(c.Request.Context(), *party)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		res = append(res, newTradeResponse(t))
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) getTrade(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}

	trade, err := h.TradeSvc.GetTrade(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTradeResponse(trade))
}

func (h *handler) depositEscrow(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req depositEscrowRequest
	if !bind(c, &req) {
		return
	}

	if err := h.TradeSvc.DepositEscrow(
		c.Request.Context(), key, req.Depositor, req.Amount,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getTrade(c)
}

func (h *handler) completeTrade(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req completeTradeRequest
	if !bind(c, &req) {
		return
	}

	if err := h.TradeSvc.CompleteTrade(
		c.Request.Context(), key, req.Actor, req.Currency,
		h.toleranceBps(req.ToleranceBps),
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getTrade(c)
}

func (h *handler) cancelTrade(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req actorRequest
	if !bind(c, &req) {
		return
	}

	if err := h.TradeSvc.CancelTrade(
		c.Request.Context(), key, req.Actor,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getTrade(c)
}

func (h *handler) disputeTrade(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req actorRequest
	if !bind(c, &req) {
		return
	}

	if err := h.TradeSvc.DisputeTrade(
		c.Request.Context(), key, req.Actor,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getTrade(c)
}
