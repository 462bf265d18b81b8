package terminal

import (
	"context"
	"io"
	"os"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/runtime/terminal/commands"
	"github.com/finopslab/sentinel/pkg/runtime/terminal/export"

	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	deps    commands.Dependencies
	plain   bool
	table   *export.Reporter
	compact *Reporter
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Dependencies commands.Dependencies
	Output       io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		deps:    opts.Dependencies,
		table:   export.NewReporter(opts.Output),
		compact: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// Handle dispatches a console report to the selected reporter.
func (cli *CLI) Handle(report *domain.ConsoleReport) error {
	if cli.plain {
		return cli.compact.Handle(report)
	}
	return cli.table.Handle(report)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Azure FinOps analysis tool",
	}

	cmd.PersistentFlags().BoolVar(&cli.plain, "plain", false, "Render compact text instead of tables")

	cmd.AddCommand(commands.NewAnomaliesCmd(cli.deps, cli))
	cmd.AddCommand(commands.NewAdvisorCmd(cli.deps, cli))
	cmd.AddCommand(commands.NewOverlayCmd(cli))
	cmd.AddCommand(commands.NewAuditCmd(cli.deps, cli))
	cmd.AddCommand(commands.NewBudgetCmd(cli.deps, cli))
	cmd.AddCommand(commands.NewSummaryCmd(cli.deps))

	return cmd
}
