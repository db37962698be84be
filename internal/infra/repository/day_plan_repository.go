package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/observability/tracing"
)

const (
	settingsKeyPrefix = "dayplan:settings:"
	snapshotKeyPrefix = "dayplan:snapshot:"
	runsKeyPrefix     = "dayplan:runs:"

	settingsTTL        = 7 * 24 * time.Hour // a week of history per user
	defaultSnapshotTTL = 48 * time.Hour
	maxRunHistory      = 20
)

type settingsRecord struct {
	Energy                 int       `json:"energy"`
	Focus                  int       `json:"focus"`
	EnergyMode             string    `json:"energy_mode"`
	WorkStart              string    `json:"work_start"`
	WorkEnd                string    `json:"work_end"`
	ManualTimeBlockMinutes int       `json:"manual_time_block_minutes"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type snapshotRecord struct {
	RunID               string                  `json:"run_id"`
	UserID              string                  `json:"user_id"`
	Date                string                  `json:"date"`
	GeneratedAt         time.Time               `json:"generated_at"`
	QueueTaskIDs        []string                `json:"queue_task_ids"`
	OverflowTaskIDs     []string                `json:"overflow_task_ids"`
	FutureTaskIDs       []string                `json:"future_task_ids"`
	SkippedTaskIDs      []string                `json:"skipped_task_ids"`
	CapacityMinutes     int                     `json:"capacity_minutes"`
	UsedMinutes         int                     `json:"used_minutes"`
	UsagePercentage     int                     `json:"usage_percentage"`
	OverCapacity        bool                    `json:"over_capacity"`
	OverCapacityMinutes int                     `json:"over_capacity_minutes"`
	Context             domain.DayContext       `json:"context"`
	Recommendations     []domain.Recommendation `json:"recommendations"`
	ConflictCount       int                     `json:"conflict_count"`
}

type dayPlanRepository struct {
	client      *redis.Client
	snapshotTTL time.Duration
}

func NewDayPlanRepository(client *redis.Client, snapshotTTL time.Duration) domain.DayPlanRepository {
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}
	return &dayPlanRepository{
		client:      client,
		snapshotTTL: snapshotTTL,
	}
}

func dayKey(prefix, userID string, date domain.Date) string {
	return prefix + userID + ":" + date.String()
}

func (r *dayPlanRepository) GetSettings(ctx context.Context, userID string, date domain.Date) (*domain.DaySettings, error) {
	key := dayKey(settingsKeyPrefix, userID, date)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}

	var record settingsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSettingsData
	}

	start, err := domain.ParseClockTime(record.WorkStart)
	if err != nil {
		return nil, ErrInvalidSettingsData
	}
	end, err := domain.ParseClockTime(record.WorkEnd)
	if err != nil {
		return nil, ErrInvalidSettingsData
	}

	return &domain.DaySettings{
		Energy:                 record.Energy,
		Focus:                  record.Focus,
		EnergyMode:             domain.EnergyMode(record.EnergyMode),
		WorkingHours:           domain.WorkingHours{Start: start, End: end},
		ManualTimeBlockMinutes: record.ManualTimeBlockMinutes,
	}, nil
}

func (r *dayPlanRepository) SaveSettings(ctx context.Context, userID string, date domain.Date, settings *domain.DaySettings) error {
	if settings == nil {
		return ErrInvalidSettingsData
	}

	record := settingsRecord{
		Energy:                 settings.Energy,
		Focus:                  settings.Focus,
		EnergyMode:             settings.EnergyMode.String(),
		WorkStart:              settings.WorkingHours.Start.String(),
		WorkEnd:                settings.WorkingHours.End.String(),
		ManualTimeBlockMinutes: settings.ManualTimeBlockMinutes,
		UpdatedAt:              time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidSettingsData
	}

	return r.client.Set(ctx, dayKey(settingsKeyPrefix, userID, date), data, settingsTTL).Err()
}

// SaveSnapshot replaces the day's snapshot and appends the run to the day's
// run history in one transaction.
func (r *dayPlanRepository) SaveSnapshot(ctx context.Context, snapshot *domain.PlanSnapshot) error {
	if snapshot == nil || snapshot.UserID == "" || !snapshot.Date.Valid() {
		return ErrInvalidSnapshotData
	}

	snapshotKey := dayKey(snapshotKeyPrefix, snapshot.UserID, snapshot.Date)

	ctx, span := tracing.StartRedisOperationSpan(ctx, "save_snapshot", snapshotKey)
	defer span.End()

	record := snapshotRecord{
		RunID:               snapshot.RunID,
		UserID:              snapshot.UserID,
		Date:                snapshot.Date.String(),
		GeneratedAt:         snapshot.GeneratedAt,
		QueueTaskIDs:        snapshot.QueueTaskIDs,
		OverflowTaskIDs:     snapshot.OverflowTaskIDs,
		FutureTaskIDs:       snapshot.FutureTaskIDs,
		SkippedTaskIDs:      snapshot.SkippedTaskIDs,
		CapacityMinutes:     snapshot.CapacityMinutes,
		UsedMinutes:         snapshot.UsedMinutes,
		UsagePercentage:     snapshot.UsagePercentage,
		OverCapacity:        snapshot.OverCapacity,
		OverCapacityMinutes: snapshot.OverCapacityMinutes,
		Context:             snapshot.Context,
		Recommendations:     snapshot.Recommendations,
		ConflictCount:       snapshot.ConflictCount,
	}

	data, err := json.Marshal(record)
	if err != nil {
		tracing.RecordResult(span, err)
		return ErrInvalidSnapshotData
	}

	runsKey := dayKey(runsKeyPrefix, snapshot.UserID, snapshot.Date)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, snapshotKey, data, r.snapshotTTL)
	pipe.LPush(ctx, runsKey, snapshot.RunID)
	pipe.LTrim(ctx, runsKey, 0, maxRunHistory-1)
	pipe.Expire(ctx, runsKey, r.snapshotTTL)

	_, err = pipe.Exec(ctx)
	tracing.RecordResult(span, err)
	return err
}

func (r *dayPlanRepository) GetSnapshot(ctx context.Context, userID string, date domain.Date) (*domain.PlanSnapshot, error) {
	key := dayKey(snapshotKeyPrefix, userID, date)

	ctx, span := tracing.StartRedisOperationSpan(ctx, "get_snapshot", key)
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSnapshotNotFound
		}
		tracing.RecordResult(span, err)
		return nil, err
	}

	var record snapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		tracing.RecordResult(span, err)
		return nil, ErrInvalidSnapshotData
	}

	return &domain.PlanSnapshot{
		RunID:               record.RunID,
		UserID:              record.UserID,
		Date:                domain.Date(record.Date),
		GeneratedAt:         record.GeneratedAt,
		QueueTaskIDs:        record.QueueTaskIDs,
		OverflowTaskIDs:     record.OverflowTaskIDs,
		FutureTaskIDs:       record.FutureTaskIDs,
		SkippedTaskIDs:      record.SkippedTaskIDs,
		CapacityMinutes:     record.CapacityMinutes,
		UsedMinutes:         record.UsedMinutes,
		UsagePercentage:     record.UsagePercentage,
		OverCapacity:        record.OverCapacity,
		OverCapacityMinutes: record.OverCapacityMinutes,
		Context:             record.Context,
		Recommendations:     record.Recommendations,
		ConflictCount:       record.ConflictCount,
	}, nil
}

func (r *dayPlanRepository) DeleteSnapshot(ctx context.Context, userID string, date domain.Date) error {
	return r.client.Del(ctx, dayKey(snapshotKeyPrefix, userID, date)).Err()
}
