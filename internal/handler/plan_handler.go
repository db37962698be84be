package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
)

type PlanHandler struct {
	planService *planner.Service
}

func NewPlanHandler(planService *planner.Service) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

func (h *PlanHandler) HandlePlan(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		respondError(c, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	var req planner.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "plan request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	resp, err := h.planService.Plan(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "planning failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) HandleSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		respondError(c, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	snapshot, err := h.planService.Snapshot(ctx, userID, domain.Date(c.Query("date")))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDate):
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, domain.ErrSnapshotNotFound):
			respondError(c, http.StatusNotFound, "not_found", "no plan stored for this day")
		default:
			slog.ErrorContext(ctx, "failed to load plan snapshot",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *PlanHandler) HandleUpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		respondError(c, http.StatusBadRequest, "missing_user", "X-User-ID header is required")
		return
	}

	var settings domain.DaySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	saved, err := h.planService.UpdateSettings(ctx, userID, domain.Date(c.Query("date")), settings)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) || errors.Is(err, domain.ErrInvalidSettings) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to update day settings",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, saved)
}
