package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/trails/internal/particle"
	"github.com/san-kum/trails/internal/scene"
)

// Loop owns the global clock and drives one particle system and one render
// port frame by frame.
type Loop struct {
	cfg       Config
	sys       *particle.System
	port      scene.Port
	log       *log.Logger
	clock     int64
	metrics   []Metric
	observers []Observer
}

// New returns a loop at clock 0. port and logger may be nil.
func New(cfg Config, sys *particle.System, port scene.Port, logger *log.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{
		cfg:       cfg,
		sys:       sys,
		port:      port,
		log:       logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Clock() int64             { return l.clock }
func (l *Loop) System() *particle.System { return l.sys }
func (l *Loop) Config() Config           { return l.cfg }
func (l *Loop) Camera() scene.Camera     { return scene.Orbit(l.clock, l.cfg.OrbitRadius, l.cfg.OrbitSpeed) }
func (l *Loop) Metrics() []Metric        { return l.metrics }

// Step advances the clock, runs spawn/tick/reap and renders the frame.
// Simulation state is fully updated before the port sees it.
func (l *Loop) Step() (Frame, error) {
	l.clock++
	st := l.sys.Tick(l.cfg.Dt, l.clock)
	f := Frame{Clock: l.clock, Stats: st, System: l.sys}

	var err error
	if l.port != nil {
		if rerr := l.port.Render(l.Camera()); rerr != nil {
			err = &RenderError{Clock: l.clock, Wrapped: rerr}
		}
	}

	for _, m := range l.metrics {
		m.Observe(f)
	}
	for _, o := range l.observers {
		o.OnFrame(f)
	}
	if st.Spawned > 0 || st.Reaped > 0 {
		l.log.Debug("frame", "clock", l.clock, "spawned", st.Spawned, "reaped", st.Reaped, "live", st.Live)
	}
	return f, err
}

// Run steps until ctx is done or, when frames > 0, that many frames have
// run. Render errors are collected, not fatal.
func (l *Loop) Run(ctx context.Context, frames int) (*Result, error) {
	result := &Result{
		Population: make([]float64, 0, max(frames, 0)),
		Metrics:    make(map[string]float64),
		Errors:     make([]error, 0),
	}
	for _, m := range l.metrics {
		m.Reset()
	}

	var tick <-chan time.Time
	if l.cfg.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(l.cfg.FPS))
		defer t.Stop()
		tick = t.C
	}

	l.log.Info("run", "frames", frames, "dt", l.cfg.Dt, "fps", l.cfg.FPS)
	start := time.Now()

	for frames <= 0 || result.Frames < frames {
		if tick != nil {
			select {
			case <-ctx.Done():
				l.collect(result)
				return result, ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				l.collect(result)
				return result, ctx.Err()
			default:
			}
		}

		f, err := l.Step()
		if err != nil {
			result.Errors = append(result.Errors, err)
			l.log.Warn("render failed", "err", err)
		}
		result.Frames++
		result.Population = append(result.Population, float64(f.Stats.Live))
	}

	l.collect(result)
	l.log.Info("done", "frames", result.Frames, "elapsed", time.Since(start), "live", l.sys.Len())
	return result, nil
}

func (l *Loop) collect(r *Result) {
	for _, m := range l.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
