package api

import (
	"net/http"
	"strconv"

	"nexus-engine/internal/database"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	Repo *database.ActivityRepo
}

func NewActivityHandler(repo *database.ActivityRepo) *ActivityHandler {
	return &ActivityHandler{Repo: repo}
}

// GetActivity returns recent gateway calls, optionally for one campaign.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	campaignID := c.Query("campaign_id")

	logs, err := h.Repo.Recent(campaignID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	counts, err := h.Repo.Counts(campaignID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": logs, "successful": counts})
}
