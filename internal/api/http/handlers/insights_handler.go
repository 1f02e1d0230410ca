package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/talkserve/backend/internal/api/dto"
	"github.com/talkserve/backend/internal/auth"
	"github.com/talkserve/backend/internal/service"
	apperrors "github.com/talkserve/backend/pkg/util"
)

// InsightsHandler covers sentiment analysis, conversation summaries and the
// analytics report.
type InsightsHandler struct {
	insights  *service.InsightService
	analytics *service.AnalyticsService
}

// NewInsightsHandler constructs handler.
func NewInsightsHandler(insightService *service.InsightService, analyticsService *service.AnalyticsService) *InsightsHandler {
	return &InsightsHandler{insights: insightService, analytics: analyticsService}
}

// AnalyzeSentiment POST /businesses/:businessId/sentiment.
func (h *InsightsHandler) AnalyzeSentiment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AnalyzeSentimentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.insights.AnalyzeSentiment(c.Context(), c.Params("businessId"), principal.User.ID, req.Transcript)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}

// SaveSummary POST /businesses/:businessId/summaries.
func (h *InsightsHandler) SaveSummary(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SaveSummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	summary, err := h.insights.SaveSummary(c.Context(), c.Params("businessId"), principal.User.ID, service.SummaryInput{
		ConversationID: req.ConversationID,
		Summary:        req.Summary,
		Sentiment:      req.Sentiment,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewSummaryResponse(summary)})
}

// ListSummaries GET /businesses/:businessId/summaries.
func (h *InsightsHandler) ListSummaries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	summaries, err := h.insights.ListSummaries(c.Context(), c.Params("businessId"), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.SummaryResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, dto.NewSummaryResponse(&summaries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAnalytics GET /businesses/:businessId/analytics?period=day|week|month.
func (h *InsightsHandler) GetAnalytics(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	report, err := h.analytics.GetReport(c.Context(), c.Params("businessId"), principal.User.ID, c.Query("period"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}
