package handlers

import (
	"github.com/fynd/reviewboard/internal/models"
	"github.com/fynd/reviewboard/internal/services"
	"github.com/fynd/reviewboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	intake    *services.IntakeService
	analytics *services.AnalyticsService
}

func NewReviewHandler(intake *services.IntakeService, analytics *services.AnalyticsService) *ReviewHandler {
	return &ReviewHandler{intake: intake, analytics: analytics}
}

// SubmitReviewRequest is the public submission payload. Rating is optional
// and defaults to 5, mirroring the star widget's no-selection behavior.
type SubmitReviewRequest struct {
	Rating     *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	ReviewText string `json:"review_text" binding:"required"`
}

// Submit runs the intake pipeline synchronously and returns the assembled
// record. An append failure shows up as a notice on the result, not as an
// error status.
// POST /api/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rating := 5
	if req.Rating != nil {
		rating = *req.Rating
	}

	result, err := h.intake.Submit(c.Request.Context(), req.ReviewText, rating)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, result)
}

// FeedResponse is the public feed: cleaned records, most recent first,
// with the header-line aggregates.
type FeedResponse struct {
	AverageRating float64         `json:"average_rating"`
	Count         int             `json:"count"`
	Reviews       []models.Review `json:"reviews"`
}

// Feed returns the public review feed.
// GET /api/reviews
func (h *ReviewHandler) Feed(c *gin.Context) {
	clean := h.analytics.CleanRecords(c.Request.Context())
	summary := services.Aggregate(clean)

	response.Success(c, FeedResponse{
		AverageRating: summary.MeanRating,
		Count:         summary.Count,
		Reviews:       services.Reversed(clean),
	})
}
