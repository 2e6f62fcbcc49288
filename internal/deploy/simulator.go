// Package deploy simulates publishing a project: a fixed sequence of stages
// followed by a random outcome. Nothing is actually deployed.
package deploy

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/conneroisu/blockcraft/internal/codegen"
	"github.com/conneroisu/blockcraft/internal/logging"
	"github.com/conneroisu/blockcraft/internal/types"
)

// DefaultSuccessRate is the probability that a run succeeds.
const DefaultSuccessRate = 0.9

// Stage is one step of a deployment.
type Stage struct {
	Label    string        `json:"label"`
	Duration time.Duration `json:"duration"`
}

// Stages is the deployment pipeline in order.
var Stages = []Stage{
	{"Preparing build environment", 2000 * time.Millisecond},
	{"Installing dependencies", 3000 * time.Millisecond},
	{"Building frontend assets", 2500 * time.Millisecond},
	{"Setting up backend services", 2000 * time.Millisecond},
	{"Configuring database", 1500 * time.Millisecond},
	{"Running security checks", 1800 * time.Millisecond},
	{"Deploying to production", 2200 * time.Millisecond},
	{"Verifying deployment", 1000 * time.Millisecond},
}

// Progress is reported after each completed stage.
type Progress struct {
	Stage   string  `json:"stage"`
	Index   int     `json:"index"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Result is the outcome of a run.
type Result struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Random is the part of *rand.Rand the simulator uses.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Simulator runs simulated deployments.
type Simulator struct {
	successRate float64
	timeScale   float64
	rand        Random
	sleep       func(ctx context.Context, d time.Duration) error
	logger      logging.Logger
	mutex       sync.RWMutex
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSuccessRate sets the probability of success, clamped to [0, 1].
func WithSuccessRate(rate float64) Option {
	return func(s *Simulator) {
		s.successRate = min(max(rate, 0), 1)
	}
}

// WithTimeScale multiplies every stage duration. Zero makes runs instant.
func WithTimeScale(scale float64) Option {
	return func(s *Simulator) {
		if scale >= 0 {
			s.timeScale = scale
		}
	}
}

// WithRand sets the random source.
func WithRand(r Random) Option {
	return func(s *Simulator) { s.rand = r }
}

// WithSleep replaces the wait between stages.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Simulator) { s.sleep = fn }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// NewSimulator creates a Simulator.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		successRate: DefaultSuccessRate,
		timeScale:   1,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:       sleep,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure applies opts to a simulator that may be in use.
func (s *Simulator) Configure(opts ...Option) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for _, opt := range opts {
		opt(s)
	}
}

// Run walks every stage, calling onProgress after each, then draws the
// outcome. Cancelling ctx stops the run and returns ctx.Err().
func (s *Simulator) Run(ctx context.Context, project types.Project, onProgress func(Progress)) (Result, error) {
	s.mutex.RLock()
	successRate, timeScale, wait := s.successRate, s.timeScale, s.sleep
	s.mutex.RUnlock()

	logger := s.logger.With("project", project.Name)
	perf := logging.StartOperation(logger, "deploy")

	for i, stage := range Stages {
		d := time.Duration(float64(stage.Duration) * timeScale)
		if err := wait(ctx, d); err != nil {
			perf.EndWithError(ctx, err)
			return Result{}, err
		}
		if onProgress != nil {
			onProgress(Progress{
				Stage:   stage.Label,
				Index:   i,
				Total:   len(Stages),
				Percent: float64(i+1) / float64(len(Stages)) * 100,
			})
		}
		logger.Debug(ctx, "Deployment stage complete", "stage", stage.Label)
	}

	s.mutex.Lock()
	result := Result{
		Success: s.rand.Float64() < successRate,
		URL:     s.url(project.Name),
	}
	s.mutex.Unlock()
	perf.End(ctx)
	logger.Info(ctx, "Deployment finished", "success", result.Success, "url", result.URL)
	return result, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func (s *Simulator) url(name string) string {
	var suffix strings.Builder
	for range 5 {
		suffix.WriteByte(base36[s.rand.Intn(len(base36))])
	}
	return "https://" + codegen.Slug(name) + "-" + suffix.String() + ".vercel.app"
}

// TotalDuration is the unscaled length of a run.
func TotalDuration() time.Duration {
	var total time.Duration
	for _, stage := range Stages {
		total += stage.Duration
	}
	return total
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
