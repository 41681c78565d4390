package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bank_e2e/application/pages/base"
	"bank_e2e/application/pages/pagetest"
	"bank_e2e/application/scenarios"
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBrowser struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	failOpen bool
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{sessions: make(map[string]*fakeSession)}
}

func (b *fakeBrowser) Name() string { return "fake" }
func (b *fakeBrowser) Close() error { return nil }

func (b *fakeBrowser) NewSession(ctx context.Context, name string) (interfaces.Session, error) {
	if b.failOpen {
		return nil, errors.New("no browser")
	}
	s := &fakeSession{doc: pagetest.NewDocument(), name: name}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[name] = s
	return s, nil
}

func (b *fakeBrowser) session(name string) *fakeSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[name]
}

type fakeSession struct {
	doc    *pagetest.Document
	name   string
	closed bool
	failed bool
}

func (s *fakeSession) Document() interfaces.Document { return s.doc }

func (s *fakeSession) Close(ctx context.Context, failed bool) (entities.Artifacts, error) {
	s.closed = true
	s.failed = failed
	if failed {
		return entities.Artifacts{Screenshot: s.name + ".png"}, nil
	}
	return entities.Artifacts{}, nil
}

type memoryResults struct {
	saved *entities.RunReport
}

func (m *memoryResults) SaveReport(report entities.RunReport) error {
	m.saved = &report
	return nil
}

func (m *memoryResults) LoadReport() (*entities.RunReport, error) {
	return m.saved, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func scenario(name string, run scenarios.Func) scenarios.Scenario {
	return scenarios.Scenario{Name: name, Description: name, Run: run}
}

func TestRunReportsEachScenario(t *testing.T) {
	browser := newFakeBrowser()
	results := &memoryResults{}
	r := NewRunner(browser, &entities.TestData{}, base.Settings{}, results, Options{BaseURL: "http://bank/"}, quietLogger())

	list := []scenarios.Scenario{
		scenario("ok", func(ctx context.Context, env *scenarios.Env) error { return nil }),
		scenario("missing", func(ctx context.Context, env *scenarios.Env) error {
			return env.Doc.Locate(entities.ByCSS("#nope")).Click(ctx)
		}),
		scenario("panics", func(ctx context.Context, env *scenarios.Env) error { panic("boom") }),
	}

	report, err := r.Run(context.Background(), list)
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "fake", report.Driver)
	assert.Equal(t, "http://bank/", report.BaseURL)
	assert.Equal(t, 2, report.Failed())

	assert.Equal(t, entities.ScenarioStatusPassed, report.Results[0].Status)

	missing := report.Results[1]
	assert.Equal(t, entities.ScenarioStatusFailed, missing.Status)
	assert.Equal(t, entities.ErrElementNotFound.Error(), missing.Kind)
	assert.Equal(t, "missing.png", missing.Artifacts.Screenshot)

	assert.Equal(t, entities.ScenarioStatusFailed, report.Results[2].Status)
	assert.Contains(t, report.Results[2].Error, "boom")

	for _, name := range []string{"ok", "missing", "panics"} {
		s := browser.session(name)
		require.NotNil(t, s, name)
		assert.True(t, s.closed, name)
	}
	assert.False(t, browser.session("ok").failed)

	require.NotNil(t, results.saved)
	assert.Len(t, results.saved.Results, 3)
}

func TestRunIsolatesSessions(t *testing.T) {
	browser := newFakeBrowser()
	r := NewRunner(browser, &entities.TestData{}, base.Settings{}, nil, Options{Workers: 4}, quietLogger())

	var running, peak int32
	docs := make(chan interfaces.Document, 8)
	var list []scenarios.Scenario
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		list = append(list, scenario(name, func(ctx context.Context, env *scenarios.Env) error {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			docs <- env.Doc
			return nil
		}))
	}

	report, err := r.Run(context.Background(), list)
	require.NoError(t, err)
	close(docs)

	assert.Zero(t, report.Failed())
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))

	seen := map[interfaces.Document]bool{}
	for d := range docs {
		assert.False(t, seen[d], "document shared between scenarios")
		seen[d] = true
	}
	assert.Len(t, seen, 8)
}

func TestRunSkipsAfterCancel(t *testing.T) {
	r := NewRunner(newFakeBrowser(), &entities.TestData{}, base.Settings{}, nil, Options{}, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	list := []scenarios.Scenario{
		scenario("first", func(ctx context.Context, env *scenarios.Env) error {
			cancel()
			return ctx.Err()
		}),
		scenario("second", func(ctx context.Context, env *scenarios.Env) error { return nil }),
	}

	report, err := r.Run(ctx, list)
	require.NoError(t, err)

	assert.Equal(t, entities.ScenarioStatusFailed, report.Results[0].Status)
	assert.Equal(t, "canceled", report.Results[0].Kind)
	assert.Equal(t, entities.ScenarioStatusSkipped, report.Results[1].Status)
}

func TestRunScenarioTimeout(t *testing.T) {
	r := NewRunner(newFakeBrowser(), &entities.TestData{}, base.Settings{}, nil, Options{ScenarioTimeout: 20 * time.Millisecond}, quietLogger())

	report, err := r.Run(context.Background(), []scenarios.Scenario{
		scenario("slow", func(ctx context.Context, env *scenarios.Env) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ScenarioStatusFailed, report.Results[0].Status)
	assert.Equal(t, "canceled", report.Results[0].Kind)
}

func TestRunSessionFailure(t *testing.T) {
	browser := newFakeBrowser()
	browser.failOpen = true
	var seen []entities.ScenarioResult
	r := NewRunner(browser, &entities.TestData{}, base.Settings{}, nil, Options{}, quietLogger())
	r.OnResult = func(res entities.ScenarioResult) { seen = append(seen, res) }

	report, err := r.Run(context.Background(), []scenarios.Scenario{
		scenario("x", func(ctx context.Context, env *scenarios.Env) error { return nil }),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, report.Results[0].Error, "failed to open session")
	assert.Len(t, seen, 1)
}

func TestOnResultCallsNeverOverlap(t *testing.T) {
	r := NewRunner(newFakeBrowser(), &entities.TestData{}, base.Settings{}, nil, Options{Workers: 8}, quietLogger())

	var inFlight, overlaps int32
	var calls int
	r.OnResult = func(res entities.ScenarioResult) {
		if atomic.AddInt32(&inFlight, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		calls++
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}

	var list []scenarios.Scenario
	for i := 0; i < 16; i++ {
		list = append(list, scenario(fmt.Sprintf("s%02d", i), func(ctx context.Context, env *scenarios.Env) error {
			return nil
		}))
	}

	_, err := r.Run(context.Background(), list)
	require.NoError(t, err)
	assert.Zero(t, atomic.LoadInt32(&overlaps))
	assert.Equal(t, 16, calls)
}
