package planrecorder

import "testing"

func TestLoadConfig(t *testing.T) {
	t.Setenv("PLAN_RESULTS_DISABLED", "true")
	t.Setenv("INFLUXDB_BUCKET", "")
	t.Setenv("BIGQUERY_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")
	t.Setenv("BIGQUERY_PLAN_TABLE", "runs")

	cfg := LoadConfig()

	if !cfg.Disabled {
		t.Error("expected recording to be disabled")
	}
	if cfg.InfluxDBBucket != "plan_results" {
		t.Errorf("expected default bucket, got %q", cfg.InfluxDBBucket)
	}
	if cfg.BigQueryProjectID != "my-project" {
		t.Errorf("expected project from GOOGLE_CLOUD_PROJECT, got %q", cfg.BigQueryProjectID)
	}
	if cfg.BigQueryPlanTable != "runs" {
		t.Errorf("expected plan table runs, got %q", cfg.BigQueryPlanTable)
	}
	if cfg.BigQueryRecommendationTable != "recommendations" {
		t.Errorf("expected default recommendation table, got %q", cfg.BigQueryRecommendationTable)
	}
}
