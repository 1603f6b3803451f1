package httpinterface

import (
	"context"
	"net/http"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) createOffer(c *gin.Context) {
	var req createOfferRequest
	if !bind(c, &req) {
		return
	}

	key, err := h.OfferSvc.CreateOffer(
		c.Request.Context(), req.Maker, req.TokenMint, req.PricePerToken,
		req.MinAmount, req.MaxAmount, req.OfferType,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, keyResponse{key})
}

func (h *handler) listOffers(c *gin.Context) {
	var filter domain.OfferFilter

	mint, ok := parseIdentityQuery(c, "token_mint")
	if !ok {
		return
	}
	filter.TokenMint = mint

	maker, ok := parseIdentityQuery(c, "maker")
	if !ok {
		return
	}
	filter.Maker = maker

	if str := c.Query("offer_type"); len(str) > 0 {
		offerType, err := domain.ParseOfferType(str)
		if err != nil {
			abortWithBadRequest(c, err)
			return
		}
		filter.OfferType = &offerType
	}
	if str := c.Query("status"); len(str) > 0 {
		status, err := domain.ParseOfferStatus(str)
		if err != nil {
			abortWithBadRequest(c, err)
			return
		}
		filter.Status = &status
	}

	offers, err := h.OfferSvc.ListOffers(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		res = append(res, newOfferResponse(o))
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) getOffer(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}

	offer, err := h.OfferSvc.GetOffer(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOfferResponse(offer))
}

func (h *handler) updateOffer(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req updateOfferRequest
	if !bind(c, &req) {
		return
	}

	update := domain.OfferUpdate{
		PricePerToken: req.PricePerToken,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
	}
	if err := h.OfferSvc.UpdateOffer(
		c.Request.Context(), key, req.Actor, update,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOffer(c)
}

func (h *handler) pauseOffer(c *gin.Context) {
	h.offerTransition(c, h.OfferSvc.PauseOffer)
}

func (h *handler) resumeOffer(c *gin.Context) {
	h.offerTransition(c, h.OfferSvc.ResumeOffer)
}

func (h *handler) closeOffer(c *gin.Context) {
	h.offerTransition(c, h.OfferSvc.CloseOffer)
}

func (h *handler) offerTransition(
	c *gin.Context,
	fn func(ctx context.Context, key domain.Address, actor domain.Identity) error,
) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req actorRequest
	if !bind(c, &req) {
		return
	}

	if err := fn(c.Request.Context(), key, req.Actor); err != nil {
		abortWithError(c, err)
		return
	}
	h.getOffer(c)
}

func (h *handler) takeOffer(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req takeOfferRequest
	if !bind(c, &req) {
		return
	}

	tradeKey, err := h.OfferSvc.TakeOffer(
		c.Request.Context(), key, req.Taker, req.Amount,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, keyResponse{tradeKey})
}
