//go:build !gcloud

package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/KasumiMercury/primind-day-planner/internal/observability/logging"
)

func TestInitWithoutCollector(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	ctx := context.Background()
	obs, err := Init(ctx, Config{
		ServiceInfo:   logging.ServiceInfo{Name: "dayplanner-test", Version: "test"},
		Environment:   logging.EnvDev,
		DefaultModule: logging.Module("day-planner"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		if err := obs.Shutdown(ctx); err != nil {
			t.Errorf("unexpected shutdown error: %v", err)
		}
	}()

	if obs.Logger() == nil {
		t.Fatal("expected logger")
	}

	obs.SetLogLevel(slog.LevelError)
	if obs.Logger().Enabled(ctx, slog.LevelWarn) {
		t.Error("expected warn to be disabled after raising the level")
	}
}

func TestSamplingRate(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 1},
		{in: -0.5, want: 1},
		{in: 1.5, want: 1},
		{in: 0.25, want: 0.25},
	}

	for _, tt := range tests {
		if got := samplingRate(tt.in); got != tt.want {
			t.Errorf("samplingRate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
