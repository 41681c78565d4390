package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/scenarios"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options tune a run
type Options struct {
	Workers int
	// ScenarioTimeout bounds one scenario including its session setup
	ScenarioTimeout time.Duration
	BaseURL         string
}

type Runner struct {
	browser  interfaces.Browser
	data     *entities.TestData
	settings base.Settings
	results  interfaces.ResultStore
	opts     Options
	logger   *logrus.Logger

	// OnResult is called after every scenario. Calls never overlap, so it
	// may write to a shared output without locking.
	OnResult func(entities.ScenarioResult)

	resultMu sync.Mutex
}

// NewRunner - creates new runner instance. results may be nil.
func NewRunner(browser interfaces.Browser, data *entities.TestData, settings base.Settings, results interfaces.ResultStore, opts Options, logger *logrus.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		browser:  browser,
		data:     data,
		settings: settings,
		results:  results,
		opts:     opts,
		logger:   logger,
	}
}

// Run - executes scenarios, each on its own session. A failing scenario
// never stops the others; cancelling ctx skips the ones not yet started.
func (r *Runner) Run(ctx context.Context, list []scenarios.Scenario) (entities.RunReport, error) {
	report := entities.RunReport{
		StartedAt: time.Now(),
		Driver:    r.browser.Name(),
		BaseURL:   r.opts.BaseURL,
		Results:   make([]entities.ScenarioResult, len(list)),
	}

	r.logger.Infof("Running %d scenario(s) with %d worker(s) on %s", len(list), r.opts.Workers, report.Driver)

	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, sc := range list {
		i, sc := i, sc
		g.Go(func() error {
			res := r.runOne(ctx, sc)
			report.Results[i] = res
			r.notify(res)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(report.StartedAt)

	if r.results != nil {
		if err := r.results.SaveReport(report); err != nil {
			return report, fmt.Errorf("failed to save report: %w", err)
		}
	}
	return report, nil
}

// notify - hands res to OnResult, one call at a time
func (r *Runner) notify(res entities.ScenarioResult) {
	if r.OnResult == nil {
		return
	}
	r.resultMu.Lock()
	defer r.resultMu.Unlock()
	r.OnResult(res)
}

// runOne - executes single scenario
func (r *Runner) runOne(ctx context.Context, sc scenarios.Scenario) entities.ScenarioResult {
	res := entities.ScenarioResult{
		Name:      sc.Name,
		Status:    entities.ScenarioStatusRunning,
		StartedAt: time.Now(),
	}
	log := r.logger.WithField("scenario", sc.Name)

	if ctx.Err() != nil {
		res.Status = entities.ScenarioStatusSkipped
		res.Error = fmt.Sprintf("run canceled: %v", ctx.Err())
		return res
	}

	if r.opts.ScenarioTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.ScenarioTimeout)
		defer cancel()
	}

	err := r.execute(ctx, sc, log, &res)

	res.Duration = time.Since(res.StartedAt)
	if err != nil {
		res.Status = entities.ScenarioStatusFailed
		res.Error = err.Error()
		if kind := entities.FailureKind(err); kind != nil {
			res.Kind = kind.Error()
		} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			res.Kind = "canceled"
		}
		log.WithField("kind", res.Kind).Errorf("Failed after %s: %v", res.Duration.Round(time.Millisecond), err)
		return res
	}

	res.Status = entities.ScenarioStatusPassed
	log.Infof("Passed in %s", res.Duration.Round(time.Millisecond))
	return res
}

// execute - opens a session, runs the scenario and always closes the
// session, keeping the artifacts it reports
func (r *Runner) execute(ctx context.Context, sc scenarios.Scenario, log *logrus.Entry, res *entities.ScenarioResult) (err error) {
	session, err := r.browser.NewSession(ctx, sc.Name)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario panicked: %v", p)
		}
		// artifacts are written even when ctx is already done
		artifacts, closeErr := session.Close(context.WithoutCancel(ctx), err != nil)
		res.Artifacts = artifacts
		if closeErr != nil {
			log.Warnf("Failed to close session: %v", closeErr)
		}
	}()

	settings := r.settings
	settings.Logger = log

	env := &scenarios.Env{
		Doc:      session.Document(),
		Settings: settings,
		Data:     r.data,
		Faker:    gofakeit.New(0),
	}

	log.Info("Starting")
	return sc.Run(ctx, env)
}
