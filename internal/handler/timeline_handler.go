package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/timeline"
)

type conflictsRequest struct {
	Timeline []domain.TimelineEvent `json:"timeline"`
}

type conflictsResponse struct {
	Conflicts []domain.Conflict `json:"conflicts"`
	Count     int               `json:"count"`
}

type nextSlotResponse struct {
	Found bool         `json:"found"`
	Slot  *domain.Slot `json:"slot,omitempty"`
}

type meetingSlotsResponse struct {
	Slots []recommend.MeetingSlot `json:"slots"`
}

type TimelineHandler struct {
	planService *planner.Service
}

func NewTimelineHandler(planService *planner.Service) *TimelineHandler {
	return &TimelineHandler{
		planService: planService,
	}
}

func (h *TimelineHandler) HandleConflicts(c *gin.Context) {
	var req conflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	conflicts := timeline.FindConflicts(req.Timeline)
	c.JSON(http.StatusOK, conflictsResponse{
		Conflicts: conflicts,
		Count:     len(conflicts),
	})
}

func (h *TimelineHandler) HandleNextSlot(c *gin.Context) {
	var req planner.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	slot, ok := h.planService.NextSlot(req)
	if !ok {
		c.JSON(http.StatusOK, nextSlotResponse{Found: false})
		return
	}

	c.JSON(http.StatusOK, nextSlotResponse{Found: true, Slot: &slot})
}

func (h *TimelineHandler) HandleMove(c *gin.Context) {
	var req planner.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if req.Event.ID == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "event id is required")
		return
	}

	c.JSON(http.StatusOK, h.planService.MoveBlock(c.Request.Context(), req))
}

func (h *TimelineHandler) HandleMeetingSlots(c *gin.Context) {
	var req planner.MeetingSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, meetingSlotsResponse{
		Slots: h.planService.MeetingSlots(c.Request.Context(), req),
	})
}
