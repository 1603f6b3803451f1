package httpinterface

import (
	"errors"
	"net/http"

	webhook "github.com/Local-DAO/LocalMoney-sub000/internal/core/application/pubsub"
	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/Local-DAO/LocalMoney-sub000/internal/infrastructure/pubsub"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// errorStatusCodes is checked in order. Unlisted errors map to 500.
var errorStatusCodes = []struct {
	err    error
	status int
}{
	{domain.ErrCorruptRecord, http.StatusInternalServerError},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrPriceNotFound, http.StatusNotFound},
	{pubsub.ErrSubscriptionNotFound, http.StatusNotFound},
	{domain.ErrUnauthorized, http.StatusForbidden},
	{domain.ErrDuplicateAddress, http.StatusConflict},
	{domain.ErrInvalidState, http.StatusConflict},
	{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{domain.ErrPriceOutOfRange, http.StatusUnprocessableEntity},
	{domain.ErrInvalidPriceProvider, http.StatusUnprocessableEntity},
	{domain.ErrBalanceOverflow, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAmounts, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidPrice, http.StatusBadRequest},
	{domain.ErrAmountMismatch, http.StatusBadRequest},
	{domain.ErrUnknownStatus, http.StatusBadRequest},
	{domain.ErrInvalidIdentity, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidUsername, http.StatusBadRequest},
	{domain.ErrInvalidCurrency, http.StatusBadRequest},
	{domain.ErrInvalidRoute, http.StatusBadRequest},
	{pubsub.ErrMissingTopic, http.StatusBadRequest},
	{pubsub.ErrInvalidEndpoint, http.StatusBadRequest},
	{webhook.ErrInvalidEvent, http.StatusBadRequest},
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusCodeForError(err error) int {
	for _, e := range errorStatusCodes {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusCodeForError(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Errorf("%s %s", c.Request.Method, c.FullPath())
	}
	c.AbortWithStatusJSON(status, errorResponse{err.Error()})
}

func abortWithBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{err.Error()})
}
