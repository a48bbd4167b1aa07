package sim

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/observability"
)

// Runner steps cloths headlessly. It holds no per-run state, so one Runner
// may serve several goroutines running separate cloths.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Stats totals a run.
type Stats struct {
	Frames   int
	Torn     int
	Severed  int
	Live     int
	Duration time.Duration
}

// Result is the outcome of a run. On cancellation Run still returns the
// partial result alongside the context error.
type Result struct {
	Cloth *cloth.Cloth
	Stats Stats
	RunID string
}

// Run builds a cloth and steps it opts.Frames times.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	logger := opts.Logger.With("run", opts.RunID)

	c, err := cloth.New(opts.Config)
	if err != nil {
		return nil, err
	}

	hooks := observability.Simulation()
	hooks.OnRunStart(ctx, opts.RunID, c.NumParticles(), c.NumConstraints())
	logger.Debug("cloth built",
		"particles", c.NumParticles(),
		"constraints", c.NumConstraints())

	res := &Result{Cloth: c, RunID: opts.RunID}
	start := time.Now()
	err = r.step(ctx, c, opts, res)
	res.Stats.Duration = time.Since(start)
	res.Stats.Live = c.NumConstraints()
	hooks.OnRunComplete(ctx, opts.RunID, res.Stats.Frames, res.Stats.Duration, err)

	if err != nil {
		logger.Warn("run interrupted", "frames", res.Stats.Frames, "err", err)
		return res, err
	}
	logger.Info("simulated cloth",
		"frames", res.Stats.Frames,
		"torn", res.Stats.Torn,
		"severed", res.Stats.Severed,
		"live", res.Stats.Live,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) step(ctx context.Context, c *cloth.Cloth, opts Options, res *Result) error {
	cfg := c.Config()
	hooks := observability.Simulation()

	var in cloth.Input
	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		in = opts.Source.Input(frame, in)
		st := c.Step(cfg.Frame(in))

		res.Stats.Frames++
		res.Stats.Torn += st.Torn
		res.Stats.Severed += st.Severed
		hooks.OnStep(ctx, opts.RunID, st.Frame, st.Torn, st.Severed, st.Live)
		if opts.OnFrame != nil {
			opts.OnFrame(st)
		}
	}
	return nil
}
