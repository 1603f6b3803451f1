package httpinterface

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if !bind(c, &req) {
		return
	}

	key, err := h.ProfileSvc.CreateProfile(
		c.Request.Context(), req.Owner, req.Username,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, keyResponse{key})
}

func (h *handler) getProfile(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}

	profile, err := h.ProfileSvc.GetProfile(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

func (h *handler) getProfileByOwner(c *gin.Context) {
	owner, ok := parseIdentityQuery(c, "owner")
	if !ok {
		return
	}
	if owner == nil {
		abortWithBadRequest(c, errors.New("missing owner query parameter"))
		return
	}

	profile, err := h.ProfileSvc.GetProfileByOwner(c.Request.Context(), *owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

func (h *handler) updateProfile(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !bind(c, &req) {
		return
	}

	if err := h.ProfileSvc.UpdateProfile(
		c.Request.Context(), key, req.Actor, req.Username,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getProfile(c)
}

func (h *handler) updateReputation(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req updateReputationRequest
	if !bind(c, &req) {
		return
	}

	if err := h.ProfileSvc.UpdateReputation(
		c.Request.Context(), key, req.Authority, req.ScoreDelta,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getProfile(c)
}

func (h *handler) verifyProfile(c *gin.Context) {
	key, ok := parseKey(c)
	if !ok {
		return
	}
	var req authorityRequest
	if !bind(c, &req) {
		return
	}

	if err := h.ProfileSvc.VerifyProfile(
		c.Request.Context(), key, req.Authority,
	); err != nil {
		abortWithError(c, err)
		return
	}
	h.getProfile(c)
}
