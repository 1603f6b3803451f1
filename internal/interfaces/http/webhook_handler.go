package httpinterface

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) addWebhook(c *gin.Context) {
	var req addWebhookRequest
	if !bind(c, &req) {
		return
	}

	id, secret, err := h.WebhookSvc.AddWebhook(
		c.Request.Context(), req.Event, req.Endpoint, req.Secret,
		req.GenerateSecret,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	res := addWebhookResponse{Id: id}
	// Only echo a secret the caller does not know yet.
	if len(req.Secret) <= 0 {
		res.Secret = secret
	}
	c.JSON(http.StatusCreated, res)
}

func (h *handler) removeWebhook(c *gin.Context) {
	if err := h.WebhookSvc.RemoveWebhook(
		c.Request.Context(), c.Param("id"),
	); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listWebhooks(c *gin.Context) {
	webhooks, err := h.WebhookSvc.ListWebhooks(
		c.Request.Context(), c.Query("event"),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, webhooks)
}
