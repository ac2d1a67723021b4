package handlers

import (
	"github.com/fynd/reviewboard/internal/models"
	"github.com/fynd/reviewboard/internal/services"
	"github.com/fynd/reviewboard/pkg/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the admin view: analytics overview, the raw
// table and the purge action. There is no access control on these routes.
type DashboardHandler struct {
	analytics *services.AnalyticsService
}

func NewDashboardHandler(analytics *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

type DashboardResponse struct {
	Stats              services.AnalyticsSummary `json:"stats"`
	RatingDistribution []services.RatingBucket   `json:"rating_distribution"`
	DailyVolume        []services.DateBucket     `json:"daily_volume"`
	Reviews            []models.Review           `json:"reviews"`
}

// GetStats returns the analytics overview plus the cleaned table, most
// recent first. Refresh in the UI is just another call here; every call
// is a fresh full read of the store.
// GET /api/admin/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	clean := h.analytics.CleanRecords(c.Request.Context())

	response.Success(c, DashboardResponse{
		Stats:              services.Aggregate(clean),
		RatingDistribution: services.GroupByRating(clean),
		DailyVolume:        services.GroupByDate(clean),
		Reviews:            services.Reversed(clean),
	})
}

type RawListResponse struct {
	Count   int             `json:"count"`
	Reviews []models.Review `json:"reviews"`
}

// ListRaw returns the uncleaned collection, most recent first, including
// rows with error sentinels.
// GET /api/admin/reviews
func (h *DashboardHandler) ListRaw(c *gin.Context) {
	recs := h.analytics.All(c.Request.Context())
	response.Success(c, RawListResponse{Count: len(recs), Reviews: recs})
}

type PurgeResponse struct {
	Removed int `json:"removed"`
}

// Purge rewrites the store without the error-sentinel rows.
// POST /api/admin/purge
func (h *DashboardHandler) Purge(c *gin.Context) {
	removed, err := h.analytics.Purge(c.Request.Context())
	if err != nil {
		response.ServerError(c, "purge failed: "+err.Error())
		return
	}
	response.Success(c, PurgeResponse{Removed: removed})
}
