package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/metrics"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/tracing"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/queue"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
	"github.com/KasumiMercury/primind-day-planner/internal/service/timeline"
)

type Service struct {
	dayPlanRepo    domain.DayPlanRepository
	resultRecorder domain.PlanResultRecorder
	scorer         *scoring.Scorer
	queueBuilder   *queue.Builder
	inferrer       *daycontext.Inferrer
	engine         *recommend.Engine
	slotFinder     timeline.SlotFinder
	plannerMetrics *metrics.PlannerMetrics
	cfg            *config.PlannerConfig
	now            func() time.Time
}

func NewService(
	dayPlanRepo domain.DayPlanRepository,
	resultRecorder domain.PlanResultRecorder,
	scorer *scoring.Scorer,
	queueBuilder *queue.Builder,
	inferrer *daycontext.Inferrer,
	engine *recommend.Engine,
	slotFinder timeline.SlotFinder,
	plannerMetrics *metrics.PlannerMetrics,
	cfg *config.PlannerConfig,
) *Service {
	if cfg == nil {
		cfg = &config.PlannerConfig{
			WorkingHours:     domain.DefaultWorkingHours(),
			MinWindowMinutes: daycontext.DefaultMinWindowMinutes,
			Location:         time.Local,
		}
	}
	if slotFinder == nil {
		slotFinder = timeline.NewSlotFinder(cfg)
	}
	return &Service{
		dayPlanRepo:    dayPlanRepo,
		resultRecorder: resultRecorder,
		scorer:         scorer,
		queueBuilder:   queueBuilder,
		inferrer:       inferrer,
		engine:         engine,
		slotFinder:     slotFinder,
		plannerMetrics: plannerMetrics,
		cfg:            cfg,
		now:            time.Now,
	}
}

// Plan runs one planning cycle for userID. Only a malformed request date is an
// error; repository and recorder failures degrade with a warning.
func (s *Service) Plan(ctx context.Context, userID string, req *Request) (*Response, error) {
	date, now, err := s.resolveDay(req.Date, req.Now)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartPlanSpan(ctx, userID, date.String(), len(req.Tasks), len(req.Timeline))
	defer span.End()
	started := time.Now()

	settings := s.resolveSettings(ctx, userID, date, req.Settings)

	available := queue.AvailableMinutes(now, settings.WorkingHours, req.Timeline, settings.ManualTimeBlockMinutes)

	ranked := s.scorer.Rank(req.Tasks, scoring.NewContext(settings, date))
	result := s.queueBuilder.Build(ranked, available, date)

	slog.DebugContext(ctx, "built task queue",
		slog.Int("capacity_minutes", result.CapacityMinutes),
		slog.Int("queue_count", len(result.Queue)),
		slog.Int("overflow_count", len(result.Overflow)),
		slog.Int("future_count", len(result.Future)),
		slog.Int("skipped_count", len(result.Skipped)),
	)

	dayCtx := s.inferrer.Infer(daycontext.Input{
		Date:             date,
		Now:              now,
		EnergyMode:       settings.EnergyMode,
		WorkingHours:     settings.WorkingHours,
		Timeline:         req.Timeline,
		Tasks:            req.Tasks,
		AvailableMinutes: available,
		Activity:         req.Activity,
		ActiveTaskID:     req.ActiveTaskID,
		MinWindowMinutes: s.cfg.MinWindowMinutes,
	})

	var untilNext *int
	if minutes, ok := timeline.TimeUntilNextFixedEvent(req.Timeline, now); ok {
		untilNext = &minutes
	}

	recommendations := s.engine.Generate(recommend.Input{
		Tasks:                 req.Tasks,
		EnergyMode:            settings.EnergyMode,
		Momentum:              dayCtx.Momentum,
		AvailableMinutes:      available,
		Today:                 date,
		Now:                   now,
		MinutesUntilNextEvent: untilNext,
	})

	conflicts := timeline.FindConflicts(req.Timeline)
	if len(conflicts) > 0 {
		slog.InfoContext(ctx, "timeline has conflicts",
			slog.Int("conflict_count", len(conflicts)),
		)
	}

	nowCount := req.NowCount
	if nowCount <= 0 {
		nowCount = defaultNowCount
	}
	nowTasks, remaining := result.Split(nowCount)

	resp := &Response{
		RunID:               uuid.NewString(),
		Date:                date,
		GeneratedAt:         now,
		Now:                 toEntries(nowTasks, date),
		RemainingToday:      toEntries(remaining, date),
		Queue:               toEntries(result.Queue, date),
		Overflow:            toEntries(result.Overflow, date),
		Future:              toEntries(result.Future, date),
		Skipped:             toSkipped(result.Skipped),
		CapacityMinutes:     result.CapacityMinutes,
		UsedMinutes:         result.UsedMinutes,
		UsagePercentage:     result.UsagePercentage,
		OverCapacity:        result.OverCapacity,
		OverCapacityMinutes: result.OverCapacityMinutes,
		Settings:            settings,
		Context:             dayCtx,
		Recommendations:     recommendations,
		Conflicts:           conflicts,
		ProposedBlocks:      s.proposeBlocks(recommendations, req.Tasks, req.Timeline, settings.WorkingHours, now),
		SuggestBreak:        req.ConsecutiveWorkMinutes > 0 && recommend.ShouldSuggestBreak(req.ConsecutiveWorkMinutes, settings.EnergyMode),
	}

	s.saveSnapshot(ctx, resp.Snapshot(userID))
	s.recordResult(ctx, userID, resp)

	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordPlanDuration(ctx, time.Since(started))
		s.plannerMetrics.RecordPlanRun(ctx, settings.EnergyMode.String(), "success")
		s.plannerMetrics.RecordTasksPlaced(ctx, "queue", len(resp.Queue))
		s.plannerMetrics.RecordTasksPlaced(ctx, "overflow", len(resp.Overflow))
		s.plannerMetrics.RecordTasksPlaced(ctx, "future", len(resp.Future))
		s.plannerMetrics.RecordTasksPlaced(ctx, "skipped", len(resp.Skipped))
		s.plannerMetrics.RecordOverloadScore(ctx, dayCtx.OverloadScore)
		s.plannerMetrics.RecordCapacityUtilization(ctx, resp.UsagePercentage)
		for _, rec := range recommendations {
			s.plannerMetrics.RecordRecommendation(ctx, string(rec.Type))
		}
	}

	tracing.RecordPlanResult(span, len(resp.Queue), len(resp.Overflow)+len(resp.Future), len(resp.Skipped), dayCtx.OverloadScore, nil)

	slog.InfoContext(ctx, "planning cycle completed",
		slog.String("run_id", resp.RunID),
		slog.String("date", date.String()),
		slog.String("energy_mode", settings.EnergyMode.String()),
		slog.String("momentum", dayCtx.Momentum.String()),
		slog.Int("queue_count", len(resp.Queue)),
		slog.Int("used_minutes", resp.UsedMinutes),
		slog.Int("capacity_minutes", resp.CapacityMinutes),
		slog.Int("overload_score", dayCtx.OverloadScore),
		slog.Int("recommendation_count", len(recommendations)),
	)

	return resp, nil
}

// Snapshot returns the last stored plan for the day. An empty date means today.
func (s *Service) Snapshot(ctx context.Context, userID string, date domain.Date) (*domain.PlanSnapshot, error) {
	if s.dayPlanRepo == nil {
		return nil, domain.ErrSnapshotNotFound
	}

	day, _, err := s.resolveDay(date, nil)
	if err != nil {
		return nil, err
	}

	return s.dayPlanRepo.GetSnapshot(ctx, userID, day)
}

// UpdateSettings stores validated day settings and drops the now stale
// snapshot for that day.
func (s *Service) UpdateSettings(ctx context.Context, userID string, date domain.Date, settings domain.DaySettings) (*domain.DaySettings, error) {
	day, _, err := s.resolveDay(date, nil)
	if err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if s.dayPlanRepo == nil {
		return &settings, nil
	}

	if err := s.dayPlanRepo.SaveSettings(ctx, userID, day, &settings); err != nil {
		return nil, fmt.Errorf("failed to save day settings: %w", err)
	}

	if err := s.dayPlanRepo.DeleteSnapshot(ctx, userID, day); err != nil {
		slog.WarnContext(ctx, "failed to invalidate plan snapshot",
			slog.String("user_id", userID),
			slog.String("date", day.String()),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "day settings updated",
		slog.String("user_id", userID),
		slog.String("date", day.String()),
		slog.String("energy_mode", settings.EnergyMode.String()),
	)

	return &settings, nil
}

// NextSlot finds the next free slot with the configured strategy. Working
// hours, buffer and search start fall back to the planner defaults.
func (s *Service) NextSlot(req SlotRequest) (domain.Slot, bool) {
	hours := s.cfg.WorkingHours
	if req.WorkingHours != nil && req.WorkingHours.Valid() {
		hours = *req.WorkingHours
	}

	buffer := s.cfg.SlotBufferMinutes
	if req.BufferMinutes != nil && *req.BufferMinutes >= 0 {
		buffer = *req.BufferMinutes
	}

	after := s.now().In(s.location())
	if req.After != nil {
		after = *req.After
	}

	return s.slotFinder.FindSlot(req.Timeline, req.DurationMinutes, hours, buffer, after)
}

// proposeBlocks places a tentative block for every CREATE_BLOCK action.
// Blocks already proposed are treated as busy for the following ones.
func (s *Service) proposeBlocks(
	recommendations []domain.Recommendation,
	tasks []domain.Task,
	events []domain.TimelineEvent,
	hours domain.WorkingHours,
	after time.Time,
) []domain.TimelineEvent {
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	busy := make([]domain.TimelineEvent, 0, len(events))
	busy = append(busy, events...)

	blocks := make([]domain.TimelineEvent, 0)
	for _, rec := range recommendations {
		for _, action := range rec.Actions {
			create, ok := action.(domain.CreateBlock)
			if !ok {
				continue
			}

			blockTitles := make([]string, 0, len(create.TaskIDs))
			for _, id := range create.TaskIDs {
				blockTitles = append(blockTitles, titles[id])
			}

			block, ok := timeline.CreateTaskBlock(s.slotFinder, create.TaskIDs, blockTitles, create.DurationMinutes, create.ContextType, busy, hours, after)
			if !ok {
				continue
			}
			block.Kind = domain.EventTentative

			busy = append(busy, block)
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func (s *Service) resolveSettings(ctx context.Context, userID string, date domain.Date, override *domain.DaySettings) domain.DaySettings {
	fallback := domain.DefaultDaySettings()
	fallback.WorkingHours = s.cfg.WorkingHours

	settings := fallback
	switch {
	case override != nil:
		settings = *override
	case s.dayPlanRepo != nil:
		stored, err := s.dayPlanRepo.GetSettings(ctx, userID, date)
		switch {
		case err == nil && stored != nil:
			settings = *stored
		case errors.Is(err, domain.ErrSettingsNotFound):
			slog.DebugContext(ctx, "no stored day settings, using defaults",
				slog.String("user_id", userID),
				slog.String("date", date.String()),
			)
		case err != nil:
			slog.WarnContext(ctx, "failed to load day settings, using defaults",
				slog.String("user_id", userID),
				slog.String("date", date.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if !settings.WorkingHours.Valid() {
		settings.WorkingHours = fallback.WorkingHours
	}
	return settings.WithDefaults()
}

func (s *Service) saveSnapshot(ctx context.Context, snapshot *domain.PlanSnapshot) {
	if s.dayPlanRepo == nil {
		return
	}

	outcome := "success"
	if err := s.dayPlanRepo.SaveSnapshot(ctx, snapshot); err != nil {
		outcome = "error"
		slog.WarnContext(ctx, "failed to save plan snapshot",
			slog.String("run_id", snapshot.RunID),
			slog.String("error", err.Error()),
		)
	}

	if s.plannerMetrics != nil {
		s.plannerMetrics.RecordSnapshotWrite(ctx, outcome)
	}
}

func (s *Service) recordResult(ctx context.Context, userID string, resp *Response) {
	if s.resultRecorder == nil {
		return
	}

	recordedAt := s.now()

	record := domain.PlanResultRecord{
		RunID:               resp.RunID,
		UserID:              userID,
		Date:                resp.Date,
		RecordedAt:          recordedAt,
		EnergyMode:          resp.Settings.EnergyMode.String(),
		Momentum:            resp.Context.Momentum.String(),
		CapacityMinutes:     resp.CapacityMinutes,
		UsedMinutes:         resp.UsedMinutes,
		QueueCount:          len(resp.Queue),
		OverflowCount:       len(resp.Overflow),
		FutureCount:         len(resp.Future),
		SkippedCount:        len(resp.Skipped),
		OverCapacityMinutes: resp.OverCapacityMinutes,
		OverloadScore:       resp.Context.OverloadScore,
		ConflictCount:       len(resp.Conflicts),
	}
	if err := s.resultRecorder.RecordPlanResult(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record plan result",
			slog.String("run_id", resp.RunID),
			slog.String("error", err.Error()),
		)
	}

	if len(resp.Recommendations) == 0 {
		return
	}

	records := make([]domain.RecommendationRecord, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		records = append(records, domain.RecommendationRecord{
			RunID:       resp.RunID,
			RecordedAt:  recordedAt,
			Type:        string(rec.Type),
			Priority:    rec.Priority,
			ActionCount: len(rec.Actions),
		})
	}
	if err := s.resultRecorder.RecordRecommendations(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record recommendations",
			slog.String("run_id", resp.RunID),
			slog.String("error", err.Error()),
		)
	}
}

// resolveDay returns the planning date and the reference instant. Without an
// explicit instant, today uses the current time, a future day starts at
// midnight and a past day is treated as over. An explicit instant must fall
// on the planning date in the planner's time zone.
func (s *Service) resolveDay(date domain.Date, at *time.Time) (domain.Date, time.Time, error) {
	loc := s.location()
	current := s.now().In(loc)

	if date == "" {
		if at != nil {
			return domain.NewDate(at.In(loc)), *at, nil
		}
		return domain.NewDate(current), current, nil
	}

	day, ok := date.Time()
	if !ok {
		return "", time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	if at != nil {
		if onDay := domain.NewDate(at.In(loc)); onDay != date {
			return "", time.Time{}, fmt.Errorf("%w: now %s falls on %s, not %s", domain.ErrInvalidDate, at.Format(time.RFC3339), onDay, date)
		}
		return date, *at, nil
	}

	today := domain.NewDate(current)
	switch days := today.DaysUntil(date); {
	case days == 0:
		return date, current, nil
	case days > 0:
		return date, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc), nil
	default:
		return date, time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc), nil
	}
}

func (s *Service) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.Local
}
