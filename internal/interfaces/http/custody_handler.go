package httpinterface

import (
	"net/http"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// credit funds an account from outside of the ledger. It stands for the
// deposit of assets into custody.
func (h *handler) credit(c *gin.Context) {
	var req creditRequest
	if !bind(c, &req) {
		return
	}

	if err := h.Custody.Credit(
		c.Request.Context(), req.Account, req.Asset, req.Amount,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.writeBalance(c, req.Account, req.Asset)
}

func (h *handler) getBalance(c *gin.Context) {
	account, err := domain.NewIdentityFromString(c.Param("account"))
	if err != nil {
		abortWithBadRequest(c, err)
		return
	}
	asset, err := domain.NewIdentityFromString(c.Query("asset"))
	if err != nil {
		abortWithBadRequest(c, err)
		return
	}
	h.writeBalance(c, account, asset)
}

func (h *handler) writeBalance(c *gin.Context, account, asset domain.Identity) {
	amount, err := h.Custody.BalanceOf(c.Request.Context(), account, asset)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balanceResponse{account, asset, amount})
}
