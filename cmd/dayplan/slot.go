package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
)

var errDurationRequired = errors.New("duration must be greater than zero")

type slotOutput struct {
	Found bool       `json:"found"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func newSlotCmd() *cobra.Command {
	var (
		file     string
		duration int
		after    string
	)

	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Find the next free slot on a timeline",
		Example: `  dayplan slot -f timeline.yaml --duration 45
  dayplan slot --duration 30 --after 2025-03-10T13:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req planner.SlotRequest
			if file != "" {
				if err := readRequestFile(cmd, file, &req); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("duration") {
				req.DurationMinutes = duration
			}
			if req.DurationMinutes <= 0 {
				return errDurationRequired
			}
			if after != "" {
				parsed, err := time.Parse(time.RFC3339, after)
				if err != nil {
					return fmt.Errorf("invalid --after, expected RFC3339: %w", err)
				}
				req.After = &parsed
			}

			svc, err := newOfflineService()
			if err != nil {
				return err
			}

			slot, ok := svc.NextSlot(req)
			if !ok {
				return writeJSON(cmd, slotOutput{Found: false})
			}
			return writeJSON(cmd, slotOutput{Found: true, Start: &slot.Start, End: &slot.End})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "timeline file (YAML or JSON, - for stdin)")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "slot length in minutes")
	cmd.Flags().StringVar(&after, "after", "", "search start (RFC3339), defaults to now")

	return cmd
}
