/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/humaidq/labwise/logging"
)

// analysisJob is one run of the Analyzer started on entry to StepAnalysis.
type analysisJob struct {
	id      string
	started time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// Controller owns the state of one wizard session and is the only place that
// changes it. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id       string
	log      *log.Logger
	analyzer Analyzer
	now      func() time.Time
	lastSeen time.Time

	step        Step
	tests       TestSet
	values      FormValues
	fieldErrors ValidationErrors
	attrs       PersonalAttributes
	hasAttrs    bool
	result      *AnalysisResult
	analysis    *analysisJob
	analysisErr error
}

// State is a read-only snapshot of a Controller for rendering views.
type State struct {
	ID                string
	Step              Step
	Tests             TestSet
	Values            FormValues
	Errors            ValidationErrors
	Attributes        PersonalAttributes
	HasAttributes     bool
	Result            *AnalysisResult
	AnalysisRunning   bool
	AnalysisStartedAt time.Time
	AnalysisError     string
}

// NewController returns a controller on the landing step. A nil analyzer uses
// CannedAnalyzer with DefaultAnalysisDelay.
func NewController(id string, analyzer Analyzer) *Controller {
	if analyzer == nil {
		analyzer = CannedAnalyzer{Delay: DefaultAnalysisDelay}
	}

	if id == "" {
		id = uuid.NewString()
	}

	c := &Controller{
		id:          id,
		log:         logging.ForWizard(logger, id),
		analyzer:    analyzer,
		now:         time.Now,
		step:        StepLanding,
		values:      make(FormValues),
		fieldErrors: make(ValidationErrors),
		attrs:       DefaultPersonalAttributes(),
	}
	c.lastSeen = c.now()

	return c
}

// ID returns the controller identifier.
func (c *Controller) ID() string {
	return c.id
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.step
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		ID:            c.id,
		Step:          c.step,
		Tests:         c.tests,
		Values:        c.values.Clone(),
		Errors:        c.fieldErrors.Clone(),
		Attributes:    c.attrs,
		HasAttributes: c.hasAttrs,
	}

	if c.result != nil {
		result := *c.result
		state.Result = &result
	}

	if c.analysis != nil {
		state.AnalysisRunning = true
		state.AnalysisStartedAt = c.analysis.started
	}

	if c.analysisErr != nil {
		state.AnalysisError = c.analysisErr.Error()
	}

	return state
}

func (c *Controller) expectLocked(step Step, action string) error {
	if c.step != step {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, c.step)
	}

	return nil
}

// Start moves from the landing page to test selection.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepLanding, "start"); err != nil {
		return err
	}

	c.step = StepTestSelection

	return nil
}

// ConfirmTests replaces the selected tests and moves to data input.
func (c *Controller) ConfirmTests(tests TestSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepTestSelection, "confirm tests"); err != nil {
		return err
	}

	if tests.Empty() {
		return ErrNoTestsSelected
	}

	c.tests = tests
	c.fieldErrors = c.values.rangeErrors(tests)
	c.step = StepDataInput

	return nil
}

// EditField stores one raw input and updates only that field's error entry.
func (c *Controller) EditField(path FieldPath, raw string) (FieldEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepDataInput, "edit field"); err != nil {
		return FieldEntry{}, err
	}

	if !c.tests.Has(path.Test) {
		return FieldEntry{}, fmt.Errorf("%w: %s", ErrTestNotSelected, path.Test)
	}

	entry, err := ValidateField(path, raw)
	if err != nil {
		return FieldEntry{}, fmt.Errorf("%w: %s", err, path)
	}

	if entry.Set {
		c.values[path] = entry.Value
	} else {
		delete(c.values, path)
	}

	if entry.Problem != "" {
		c.fieldErrors[path.String()] = entry.Problem
	} else {
		delete(c.fieldErrors, path.String())
	}

	return entry, nil
}

// ConfirmData stores the submitted values of the selected tests and moves to
// personal attributes when they validate. On failure the values are kept,
// the errors are returned and the step does not change.
func (c *Controller) ConfirmData(values FormValues) (ValidationErrors, error) {
	return c.ConfirmDataFrom(func(TestSet) FormValues { return values })
}

// ConfirmDataFrom is ConfirmData with the values read under the controller
// lock, so read sees the same test selection the values are stored against.
func (c *Controller) ConfirmDataFrom(read func(tests TestSet) FormValues) (ValidationErrors, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepDataInput, "confirm data"); err != nil {
		return nil, err
	}

	c.values = c.values.replaceTests(c.tests, read(c.tests))

	errs, ok := ValidateForm(c.tests, c.values)
	c.fieldErrors = errs

	if !ok {
		return errs.Clone(), ErrValidationFailed
	}

	c.step = StepPersonalAttributes

	return nil, nil
}

// ConfirmAttributes stores the personal attributes and starts the analysis.
func (c *Controller) ConfirmAttributes(attrs PersonalAttributes) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepPersonalAttributes, "confirm attributes"); err != nil {
		return err
	}

	c.attrs = attrs.Normalize()
	c.hasAttrs = true
	c.step = StepAnalysis
	c.startAnalysisLocked()

	return nil
}

// ViewSupplements moves from the results to the supplement list.
func (c *Controller) ViewSupplements() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepResults, "view supplements"); err != nil {
		return err
	}

	c.step = StepSupplements

	return nil
}

// RetryAnalysis starts a new analysis after a failed one.
func (c *Controller) RetryAnalysis() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expectLocked(StepAnalysis, "retry analysis"); err != nil {
		return err
	}

	if c.analysis != nil {
		return ErrAnalysisInProgress
	}

	c.startAnalysisLocked()

	return nil
}

// Back moves to the previous step without discarding any answers. Leaving
// the analysis step cancels the running job; returning to it starts a new one.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.step.Prev()
	if !ok {
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, c.step)
	}

	if c.step == StepAnalysis {
		c.cancelAnalysisLocked()
	}

	c.step = prev

	if c.step == StepAnalysis {
		c.startAnalysisLocked()
	}

	return nil
}

// AwaitAnalysis blocks until the running analysis job finishes or ctx is
// done. It returns immediately when no job is running.
func (c *Controller) AwaitAnalysis(ctx context.Context) error {
	c.mu.Lock()
	job := c.analysis
	c.mu.Unlock()

	if job == nil {
		return nil
	}

	select {
	case <-job.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any running analysis. The controller must not be used after.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelAnalysisLocked()
}

func (c *Controller) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSeen = c.now()
}

func (c *Controller) idleFor(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return now.Sub(c.lastSeen)
}

func (c *Controller) startAnalysisLocked() {
	c.cancelAnalysisLocked()
	c.analysisErr = nil

	ctx, cancel := context.WithCancel(context.Background())
	job := &analysisJob{
		id:      uuid.NewString(),
		started: c.now(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	c.analysis = job

	input := AnalysisInput{
		Tests:      c.tests,
		Values:     c.values.Clone(),
		Attributes: c.attrs,
	}

	c.log.Debug("analysis started", "job_id", job.id, "tests", c.tests.String())

	go func() {
		defer close(job.done)
		defer cancel()

		result, err := c.analyzer.Analyze(ctx, input)
		c.finishAnalysis(job, result, err)
	}()
}

func (c *Controller) cancelAnalysisLocked() {
	if c.analysis == nil {
		return
	}

	c.analysis.cancel()
	c.log.Debug("analysis cancelled", "job_id", c.analysis.id)
	c.analysis = nil
}

// finishAnalysis applies a job's outcome when the job is still the current
// one. Outcomes of cancelled or replaced jobs are dropped.
func (c *Controller) finishAnalysis(job *analysisJob, result AnalysisResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.analysis != job {
		c.log.Debug("discarding stale analysis", "job_id", job.id)
		return
	}

	c.analysis = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}

		c.log.Error("analysis failed", "job_id", job.id, "error", err)
		c.analysisErr = err

		return
	}

	if c.step != StepAnalysis {
		return
	}

	c.result = &result
	c.step = StepResults

	c.log.Info(
		"analysis completed",
		"job_id", job.id,
		"overall_score", result.OverallScore,
		"duration_ms", c.now().Sub(job.started).Milliseconds(),
	)
}
