package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-day-planner/internal/config"
	"github.com/KasumiMercury/primind-day-planner/internal/service/daycontext"
	"github.com/KasumiMercury/primind-day-planner/internal/service/planner"
	"github.com/KasumiMercury/primind-day-planner/internal/service/queue"
	"github.com/KasumiMercury/primind-day-planner/internal/service/recommend"
	"github.com/KasumiMercury/primind-day-planner/internal/service/scoring"
	"github.com/KasumiMercury/primind-day-planner/internal/service/timeline"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "dayplan",
		Short:         "Plan a day from a task and timeline file",
		Long:          "dayplan scores tasks, builds today's queue, checks the timeline and suggests adjustments without a running server.",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log planner decisions to stderr")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newSlotCmd())

	return rootCmd
}

// newOfflineService wires the planner from environment configuration with no
// store and no result recorder.
func newOfflineService() (*planner.Service, error) {
	plannerCfg, err := config.LoadPlannerConfig()
	if err != nil {
		return nil, err
	}
	if err := plannerCfg.Validate(); err != nil {
		return nil, err
	}

	classifier := daycontext.NewKeywordClassifier()

	svc := planner.NewService(
		nil,
		nil,
		scoring.NewScorer(scoring.WeightsFromConfig(config.LoadScoringConfig())),
		queue.NewBuilder(),
		daycontext.NewInferrer(classifier),
		recommend.NewEngine(classifier, recommend.OptionsFromConfig(config.LoadRecommendConfig())),
		timeline.NewSlotFinder(plannerCfg),
		nil,
		plannerCfg,
	)
	return svc, nil
}

// readRequestFile decodes path as JSON when it has a .json extension and as
// YAML otherwise. A path of "-" reads YAML from stdin.
func readRequestFile(cmd *cobra.Command, path string, out any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open request file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, out)
	} else {
		err = yaml.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("failed to decode request file: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
