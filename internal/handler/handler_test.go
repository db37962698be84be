package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
	"github.com/KasumiMercury/primind-day-planner/internal/service/queue"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
)

func newTestRouter(repo domain.DayPlanRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.PlannerConfig{
		WorkingHours:      domain.DefaultWorkingHours(),
		MinWindowMinutes:  15,
		SlotBufferMinutes: 10,
		Location:          time.UTC,
		SlotStrategy:      config.SlotStrategyFirstFit,
	}
	svc := planner.NewService(
		repo,
		nil,
		scoring.NewScorer(scoring.DefaultWeights()),
		queue.NewBuilder(),
		daycontext.NewInferrer(nil),
		recommend.NewEngine(nil, recommend.DefaultOptions()),
		nil,
		nil,
		cfg,
	)

	planHandler := NewPlanHandler(svc)
	timelineHandler := NewTimelineHandler(svc)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/plan", planHandler.HandlePlan)
	v1.GET("/plan/snapshot", planHandler.HandleSnapshot)
	v1.PUT("/plan/settings", planHandler.HandleUpdateSettings)
	v1.POST("/timeline/conflicts", timelineHandler.HandleConflicts)
	v1.POST("/timeline/next-slot", timelineHandler.HandleNextSlot)
	v1.POST("/timeline/move", timelineHandler.HandleMove)
	v1.POST("/timeline/meeting-slots", timelineHandler.HandleMeetingSlots)
	return r
}

func doRequest(r *gin.Engine, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const planBody = `{
	"date": "2025-03-10",
	"now": "2025-03-10T13:00:00Z",
	"tasks": [
		{"id": "a", "title": "Fix login bug", "estimate_minutes": 60, "is_must": true},
		{"id": "b", "title": "Plan offsite", "estimate_minutes": 60, "due_date": "2025-03-20"}
	],
	"timeline": [
		{"id": "review", "kind": "meeting", "title": "Design review", "start": "2025-03-10T14:00:00Z", "end": "2025-03-10T15:00:00Z"}
	],
	"settings": {"energy": 3, "focus": 3, "energy_mode": "normal", "working_hours": {"start": "09:00", "end": "17:00"}}
}`

func TestHandlePlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockDayPlanRepository(ctrl)
	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	r := newTestRouter(repo)
	w := doRequest(r, http.MethodPost, "/api/v1/plan", "user-1", planBody)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp planner.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Queue) != 1 || resp.Queue[0].TaskID != "a" {
		t.Errorf("expected queue [a], got %+v", resp.Queue)
	}
	if len(resp.Future) != 1 || resp.Future[0].TaskID != "b" {
		t.Errorf("expected future [b], got %+v", resp.Future)
	}
	if resp.CapacityMinutes != 180 {
		t.Errorf("expected capacity 180, got %d", resp.CapacityMinutes)
	}
}

func TestHandlePlanBadRequests(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		body     string
		wantCode string
	}{
		{name: "missing user", userID: "", body: planBody, wantCode: "missing_user"},
		{name: "malformed json", userID: "user-1", body: `{"tasks": [`, wantCode: "validation_error"},
		{name: "negative work minutes", userID: "user-1", body: `{"consecutive_work_minutes": -5}`, wantCode: "validation_error"},
		{name: "invalid date", userID: "user-1", body: `{"date": "10/03/2025"}`, wantCode: "validation_error"},
		{name: "now outside date", userID: "user-1", body: `{"date": "2025-03-11", "now": "2025-03-10T13:00:00Z"}`, wantCode: "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil)
			w := doRequest(r, http.MethodPost, "/api/v1/plan", tt.userID, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("expected error %q, got %q", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestHandleSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(repo *domain.MockDayPlanRepository)
		query      string
		wantStatus int
	}{
		{
			name: "stored snapshot",
			setupMock: func(repo *domain.MockDayPlanRepository) {
				repo.EXPECT().GetSnapshot(gomock.Any(), "user-1", domain.Date("2025-03-10")).
					Return(&domain.PlanSnapshot{RunID: "run-1", UserID: "user-1", Date: "2025-03-10"}, nil)
			},
			query:      "?date=2025-03-10",
			wantStatus: http.StatusOK,
		},
		{
			name: "nothing stored",
			setupMock: func(repo *domain.MockDayPlanRepository) {
				repo.EXPECT().GetSnapshot(gomock.Any(), "user-1", domain.Date("2025-03-10")).
					Return(nil, domain.ErrSnapshotNotFound)
			},
			query:      "?date=2025-03-10",
			wantStatus: http.StatusNotFound,
		},
		{
			name: "redis failure",
			setupMock: func(repo *domain.MockDayPlanRepository) {
				repo.EXPECT().GetSnapshot(gomock.Any(), "user-1", domain.Date("2025-03-10")).
					Return(nil, errors.New("connection refused"))
			},
			query:      "?date=2025-03-10",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "invalid date",
			setupMock:  func(repo *domain.MockDayPlanRepository) {},
			query:      "?date=yesterday",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := domain.NewMockDayPlanRepository(ctrl)
			tt.setupMock(repo)

			r := newTestRouter(repo)
			w := doRequest(r, http.MethodGet, "/api/v1/plan/snapshot"+tt.query, "user-1", "")

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleUpdateSettings(t *testing.T) {
	t.Run("stores valid settings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := domain.NewMockDayPlanRepository(ctrl)
		repo.EXPECT().SaveSettings(gomock.Any(), "user-1", domain.Date("2025-03-10"), gomock.Any()).Return(nil)
		repo.EXPECT().DeleteSnapshot(gomock.Any(), "user-1", domain.Date("2025-03-10")).Return(nil)

		r := newTestRouter(repo)
		body := `{"energy": 2, "focus": 4, "energy_mode": "crisis", "working_hours": {"start": 8, "end": "16:30"}}`
		w := doRequest(r, http.MethodPut, "/api/v1/plan/settings?date=2025-03-10", "user-1", body)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var saved domain.DaySettings
		if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if saved.EnergyMode != domain.EnergyCrisis {
			t.Errorf("expected crisis mode, got %q", saved.EnergyMode)
		}
		if saved.WorkingHours.End != domain.NewClockTime(16, 30) {
			t.Errorf("expected work end 16:30, got %v", saved.WorkingHours.End)
		}
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		r := newTestRouter(nil)
		body := `{"energy": 9, "focus": 3, "energy_mode": "normal", "working_hours": {"start": 9, "end": 17}}`
		w := doRequest(r, http.MethodPut, "/api/v1/plan/settings?date=2025-03-10", "user-1", body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestHandleConflicts(t *testing.T) {
	r := newTestRouter(nil)
	body := `{"timeline": [
		{"id": "a", "kind": "meeting", "start": "2025-03-10T10:00:00Z", "end": "2025-03-10T11:00:00Z"},
		{"id": "b", "kind": "task-block", "start": "2025-03-10T10:30:00Z", "end": "2025-03-10T11:30:00Z"},
		{"id": "c", "kind": "fixed-event", "start": "2025-03-10T12:00:00Z", "end": "2025-03-10T13:00:00Z"}
	]}`

	w := doRequest(r, http.MethodPost, "/api/v1/timeline/conflicts", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp conflictsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 conflict, got %d", resp.Count)
	}
	if resp.Conflicts[0].OverlapMinutes != 30 {
		t.Errorf("expected 30 overlap minutes, got %v", resp.Conflicts[0].OverlapMinutes)
	}
}

func TestHandleNextSlot(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantFound  bool
		wantStart  time.Time
	}{
		{
			name: "after the meeting with buffer",
			body: `{"duration_minutes": 30, "after": "2025-03-10T13:00:00Z", "timeline": [
				{"id": "m", "kind": "meeting", "start": "2025-03-10T13:00:00Z", "end": "2025-03-10T14:00:00Z"}
			]}`,
			wantStatus: http.StatusOK,
			wantFound:  true,
			wantStart:  time.Date(2025, 3, 10, 14, 10, 0, 0, time.UTC),
		},
		{
			name:       "no room left",
			body:       `{"duration_minutes": 120, "after": "2025-03-10T16:00:00Z", "timeline": []}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "duration is required",
			body:       `{"timeline": []}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil)
			w := doRequest(r, http.MethodPost, "/api/v1/timeline/next-slot", "", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp nextSlotResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Found != tt.wantFound {
				t.Fatalf("found = %v, want %v", resp.Found, tt.wantFound)
			}
			if tt.wantFound && !resp.Slot.Start.Equal(tt.wantStart) {
				t.Errorf("expected start %v, got %v", tt.wantStart, resp.Slot.Start)
			}
		})
	}
}

func TestHandleMove(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantSuccess bool
	}{
		{
			name: "moves into a free slot",
			body: `{"new_start": "2025-03-10T11:00:00Z",
				"event": {"id": "blk", "kind": "task-block", "mutable": true, "start": "2025-03-10T09:00:00Z", "end": "2025-03-10T10:00:00Z"},
				"timeline": [{"id": "m", "kind": "meeting", "start": "2025-03-10T14:00:00Z", "end": "2025-03-10T15:00:00Z"}]}`,
			wantStatus:  http.StatusOK,
			wantSuccess: true,
		},
		{
			name:       "event id is required",
			body:       `{"new_start": "2025-03-10T11:00:00Z", "event": {"kind": "task-block"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "new start is required",
			body:       `{"event": {"id": "blk"}}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(nil)
			w := doRequest(r, http.MethodPost, "/api/v1/timeline/move", "", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp planner.MoveResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.wantSuccess)
			}
			if !resp.WithinWorkingHours {
				t.Error("expected move to stay within working hours")
			}
		})
	}
}

func TestHandleMeetingSlots(t *testing.T) {
	r := newTestRouter(nil)
	body := `{"duration_minutes": 30, "after": "2025-03-10T09:00:00Z", "timeline": [
		{"id": "m", "kind": "meeting", "start": "2025-03-10T09:00:00Z", "end": "2025-03-10T13:00:00Z"}
	]}`

	w := doRequest(r, http.MethodPost, "/api/v1/timeline/meeting-slots", "", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp meetingSlotsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	if want := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC); !resp.Slots[0].Start.Equal(want) {
		t.Errorf("expected slot at %v, got %v", want, resp.Slots[0].Start)
	}
}
