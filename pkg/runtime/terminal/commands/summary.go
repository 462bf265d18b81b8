package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/spf13/cobra"
)

type SummaryCmd struct {
	subscriptions []string
	period        string
	skipAnomalies bool
	skipAudit     bool
	skipRisks     bool
	deps          Dependencies
}

func NewSummaryCmd(deps Dependencies) *cobra.Command {
	sc := &SummaryCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render the executive ROI report as Markdown",
		RunE:  sc.run,
	}

	cmd.Flags().StringSliceVar(&sc.subscriptions, "subscriptions", nil, "Subscription IDs to report on (defaults to the configured profile)")
	cmd.Flags().StringVar(&sc.period, "period", summary.PeriodMonthly, "Reporting period, monthly or annual")
	cmd.Flags().BoolVar(&sc.skipAnomalies, "skip-anomalies", false, "Leave the anomaly section out of the report")
	cmd.Flags().BoolVar(&sc.skipAudit, "skip-audit", false, "Leave the waste audit section out of the report")
	cmd.Flags().BoolVar(&sc.skipRisks, "skip-risks", false, "Leave the governance section out of the report")

	return cmd
}

func (sc *SummaryCmd) run(cmd *cobra.Command, args []string) error {
	if sc.period != summary.PeriodMonthly && sc.period != summary.PeriodAnnual {
		return fmt.Errorf("period must be %q or %q, got %q", summary.PeriodMonthly, summary.PeriodAnnual, sc.period)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 180*time.Second)
	defer cancel()

	subscriptions := sc.subscriptions
	if len(subscriptions) == 0 {
		subscriptions = sc.deps.Defaults.SubscriptionIDs
	}

	opts := summary.DefaultOptions(subscriptions)
	opts.Period = sc.period
	opts.IncludeAnomalies = !sc.skipAnomalies
	opts.IncludeAudit = !sc.skipAudit
	opts.IncludeRisks = !sc.skipRisks

	result, err := sc.deps.Summaries.Compose(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to compose executive summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Markdown)
	return err
}
