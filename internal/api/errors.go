package api

import (
	"errors"
	"net/http"

	"nexus-engine/internal/dashboard"
	"nexus-engine/internal/models"
	"nexus-engine/internal/store"

	"github.com/gin-gonic/gin"
)

var errListsNotPatchable = errors.New("leads and funnels cannot be patched")

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrEmptyMessage),
		errors.Is(err, dashboard.ErrEmptyNiche),
		errors.Is(err, dashboard.ErrEmptyLeadName),
		errors.Is(err, dashboard.ErrUnknownView),
		errors.Is(err, errListsNotPatchable),
		errors.Is(err, models.ErrEmptyPatch),
		errors.Is(err, models.ErrUnknownVoice),
		errors.Is(err, models.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrCampaignNotFound),
		errors.Is(err, dashboard.ErrLeadNotFound),
		errors.Is(err, dashboard.ErrFunnelNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrNoActiveCampaign),
		errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, dashboard.ErrFunnelInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
