package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-day-planner/internal/domain"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
)

func newPlanCmd() *cobra.Command {
	var (
		file     string
		userID   string
		date     string
		now      string
		nowCount int
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build the plan for a day",
		Example: `  dayplan plan -f request.yaml
  dayplan plan -f request.json --date 2025-03-10 --now 2025-03-10T13:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req planner.Request
			if err := readRequestFile(cmd, file, &req); err != nil {
				return err
			}

			if date != "" {
				req.Date = domain.Date(date)
			}
			if now != "" {
				parsed, err := time.Parse(time.RFC3339, now)
				if err != nil {
					return fmt.Errorf("invalid --now, expected RFC3339: %w", err)
				}
				req.Now = &parsed
			}
			if cmd.Flags().Changed("now-count") {
				req.NowCount = nowCount
			}

			svc, err := newOfflineService()
			if err != nil {
				return err
			}

			resp, err := svc.Plan(cmd.Context(), userID, &req)
			if err != nil {
				return err
			}

			return writeJSON(cmd, resp)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "planning request file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&userID, "user", "local", "user id recorded in the plan")
	cmd.Flags().StringVar(&date, "date", "", "plan date (YYYY-MM-DD), overrides the file")
	cmd.Flags().StringVar(&now, "now", "", "reference time (RFC3339), overrides the file")
	cmd.Flags().IntVar(&nowCount, "now-count", 0, "number of tasks to put in the now list")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
