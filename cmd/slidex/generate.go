package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidex/internal/adapters/secondary/report"
	"github.com/fredcamaral/slidex/internal/domain/entities"
)

type generateOptions struct {
	keepGoing  bool
	reportPath string
}

func runGenerate(cmd *cobra.Command, opts *globalOptions, genOpts *generateOptions) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}

	if genOpts.keepGoing {
		a.config.OnError = entities.FailurePolicySkip
	}

	result, runErr := a.generator.Run(cmd.Context())

	if genOpts.reportPath != "" && result != nil {
		if err := report.NewWriter(a.fs).Write(cmd.Context(), genOpts.reportPath, result); err != nil {
			a.logger.Error("Could not write report: %v", err)
		} else {
			a.logger.Debug("Run report written to %s", genOpts.reportPath)
		}
	}

	if runErr != nil {
		return runErr
	}

	printSummary(a, result)
	return nil
}

// printSummary logs the outcome of a completed run
func printSummary(a *app, result *entities.RunReport) {
	summary := fmt.Sprintf("Generated %d page(s) and %s in %v",
		len(result.Pages), result.Index, result.Duration().Round(time.Millisecond))

	if skipped := result.SkippedCount(); skipped > 0 {
		a.logger.Warn("%s; %d lesson(s) skipped", summary, skipped)
		return
	}
	a.logger.Info("%s", summary)
}
