package planrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID           string
	BigQueryDataset             string
	BigQueryPlanTable           string
	BigQueryRecommendationTable string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("PLAN_RESULTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "plan_results"),

		BigQueryProjectID:           getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:             getEnvOrDefault("BIGQUERY_DATASET", "day_planner"),
		BigQueryPlanTable:           getEnvOrDefault("BIGQUERY_PLAN_TABLE", "plan_results"),
		BigQueryRecommendationTable: getEnvOrDefault("BIGQUERY_RECOMMENDATION_TABLE", "recommendations"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
