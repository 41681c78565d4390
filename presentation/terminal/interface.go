package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/runner"
	"bank_e2e/application/scenarios"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
	"bank_e2e/infrastructure/alerts"
	"bank_e2e/infrastructure/browser"
	"bank_e2e/infrastructure/config"
	"bank_e2e/infrastructure/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	passed  = color.New(color.FgGreen, color.Bold).SprintFunc()
	failed  = color.New(color.FgRed, color.Bold).SprintFunc()
	skipped = color.New(color.FgYellow).SprintFunc()
	dim     = color.New(color.Attribute(90)).SprintFunc()
)

// errFailures - the run finished but some scenarios failed
var errFailures = fmt.Errorf("scenarios failed")

type TerminalInterface struct {
	root        *cobra.Command
	browserCtrl interfaces.Browser

	// outMu keeps each scenario's block of lines together
	outMu sync.Mutex
	out   io.Writer
}

func NewTerminalInterface() (*TerminalInterface, error) {
	t := &TerminalInterface{out: os.Stdout}

	root := &cobra.Command{
		Use:           "bank-e2e",
		Short:         "End-to-end scenarios for the XYZ Bank demo app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(t.runCommand(), t.listCommand(), t.reportCommand())
	t.root = root

	return t, nil
}

// Run - executes the command line
func (t *TerminalInterface) Run() error {
	return t.RunArgs(os.Args[1:])
}

// RunArgs - executes args as if given on the command line
func (t *TerminalInterface) RunArgs(args []string) error {
	t.root.SetArgs(args)
	t.root.SetOut(t.out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return t.root.ExecuteContext(ctx)
}

func (t *TerminalInterface) Close() error {
	if t.browserCtrl == nil {
		return nil
	}
	err := t.browserCtrl.Close()
	t.browserCtrl = nil
	return err
}

func (t *TerminalInterface) runCommand() *cobra.Command {
	var filter string
	var scenarioTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios in fresh browser sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := cfg.NewLogger()

			selected, err := scenarios.Match(filter)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				return fmt.Errorf("no scenario matches %q", filter)
			}

			data, err := storage.NewTestDataStore(cfg.DataFile).Load()
			if err != nil {
				return err
			}
			results, err := storage.NewResultStore(cfg.ResultsDir)
			if err != nil {
				return err
			}

			// Initialize browser controller
			browserCtrl, err := browser.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize browser: %w", err)
			}
			t.browserCtrl = browserCtrl
			defer t.Close()

			settings := base.Settings{
				BaseURL:           cfg.BaseURL,
				Timeout:           cfg.Timeout,
				NavigationTimeout: cfg.NavigationTimeout,
				Dialogs:           alerts.NewClassifier(logger),
			}
			r := runner.NewRunner(browserCtrl, data, settings, results, runner.Options{
				Workers:         cfg.Workers,
				ScenarioTimeout: scenarioTimeout,
				BaseURL:         cfg.BaseURL,
			}, logger)
			r.OnResult = t.printResult

			report, err := r.Run(cmd.Context(), selected)
			if err != nil {
				logger.WithError(err).Warn("Run finished with errors")
			}
			t.printSummary(report)

			if report.Failed() > 0 {
				return errFailures
			}
			return err
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&filter, "run", "", "Only run scenarios whose name matches this regexp")
	cmd.Flags().DurationVar(&scenarioTimeout, "scenario-timeout", 3*time.Minute, "Upper bound for one scenario")
	return cmd
}

func (t *TerminalInterface) listCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		RunE: func(cmd *cobra.Command, _ []string) error {
			selected, err := scenarios.Match(filter)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
			for _, s := range selected {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, dim(s.Description))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&filter, "run", "", "Only list scenarios whose name matches this regexp")
	return cmd
}

func (t *TerminalInterface) reportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the report of the last run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := storage.NewResultStore(dir)
			if err != nil {
				return err
			}
			report, err := results.LoadReport()
			if err != nil {
				return err
			}
			if len(report.Results) == 0 {
				fmt.Fprintln(t.out, "No run recorded yet")
				return nil
			}
			for _, res := range report.Results {
				t.printResult(res)
			}
			t.printSummary(*report)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "results-dir", "test-results", "Directory the run wrote its report to")
	return cmd
}

// printResult - writes one scenario's lines in a single write
func (t *TerminalInterface) printResult(res entities.ScenarioResult) {
	var b strings.Builder
	took := dim(res.Duration.Round(time.Millisecond).String())
	switch res.Status {
	case entities.ScenarioStatusPassed:
		fmt.Fprintf(&b, "%s %s %s\n", passed("PASS"), res.Name, took)
	case entities.ScenarioStatusSkipped:
		fmt.Fprintf(&b, "%s %s\n", skipped("SKIP"), res.Name)
	default:
		fmt.Fprintf(&b, "%s %s %s\n    %s\n", failed("FAIL"), res.Name, took, res.Error)
		for _, path := range []string{res.Artifacts.Screenshot, res.Artifacts.Trace, res.Artifacts.VideoDir} {
			if path != "" {
				fmt.Fprintf(&b, "    %s\n", dim(path))
			}
		}
	}

	t.outMu.Lock()
	defer t.outMu.Unlock()
	io.WriteString(t.out, b.String())
}

func (t *TerminalInterface) printSummary(report entities.RunReport) {
	var pass, skip int
	for _, res := range report.Results {
		switch res.Status {
		case entities.ScenarioStatusPassed:
			pass++
		case entities.ScenarioStatusSkipped:
			skip++
		}
	}
	fail := report.Failed()

	status := passed("ok")
	if fail > 0 {
		status = failed("FAILED")
	}
	t.outMu.Lock()
	defer t.outMu.Unlock()
	fmt.Fprintf(t.out, "\n%s  %d passed, %d failed, %d skipped in %s (%s)\n",
		status, pass, fail, skip, report.Duration.Round(time.Millisecond), report.Driver)
}
