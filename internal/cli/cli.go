// Package cli implements the clothsim command-line interface.
//
// # Commands
//
//   - run: interactive cloth in the terminal (mouse drag and cut)
//   - render: headless simulation exported to SVG, JSON, PNG, PDF or DOT
//   - config: write, show and validate settings files
//   - completion: shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. The interactive command owns the terminal,
// so it logs to --log-file or not at all.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/clothsim/pkg/buildinfo"
	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/config"
	"github.com/matzehuels/clothsim/pkg/render"
)

const appName = "clothsim"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Clothsim simulates a tearable cloth",
		Long:         `Clothsim simulates a pinned sheet of cloth with Verlet integration. Drag it around or cut it with the mouse in your terminal, or run it headlessly and export the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Debug("starting", "version", buildinfo.String(), "command", cmd.Name())
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// physicsFlags are cloth overrides shared by run and render. Only flags the
// user actually set replace values from the settings file.
type physicsFlags struct {
	width, height float64
	spacing       float64
	cols, rows    int
	gravity       float64
	windX, windY  float64
	tearFactor    float64
	damping       float64
}

func (p *physicsFlags) register(fs *pflag.FlagSet) {
	d := cloth.DefaultConfig()
	fs.Float64Var(&p.width, "width", d.Width, "viewport width")
	fs.Float64Var(&p.height, "height", d.Height, "viewport height")
	fs.Float64Var(&p.spacing, "spacing", d.Spacing, "rest distance between neighbouring particles")
	fs.IntVar(&p.cols, "cols", d.Cols, "lattice columns")
	fs.IntVar(&p.rows, "rows", d.Rows, "lattice rows")
	fs.Float64Var(&p.gravity, "gravity", d.Gravity, "downward acceleration")
	fs.Float64Var(&p.windX, "wind-x", d.WindX, "horizontal wind acceleration")
	fs.Float64Var(&p.windY, "wind-y", d.WindY, "vertical wind acceleration")
	fs.Float64Var(&p.tearFactor, "tear-factor", d.TearFactor, "stretch ratio at which a constraint tears")
	fs.Float64Var(&p.damping, "damping", d.VelocityDamping, "velocity damping per frame, 0 to 1")
}

func (p *physicsFlags) apply(fs *pflag.FlagSet, cfg *cloth.Config) {
	set := func(name string, dst *float64, v float64) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("width", &cfg.Width, p.width)
	set("height", &cfg.Height, p.height)
	set("spacing", &cfg.Spacing, p.spacing)
	set("gravity", &cfg.Gravity, p.gravity)
	set("wind-x", &cfg.WindX, p.windX)
	set("wind-y", &cfg.WindY, p.windY)
	set("tear-factor", &cfg.TearFactor, p.tearFactor)
	set("damping", &cfg.VelocityDamping, p.damping)
	if fs.Changed("cols") {
		cfg.Cols = p.cols
	}
	if fs.Changed("rows") {
		cfg.Rows = p.rows
	}
}

// loadSettings reads path, or the defaults when path is empty, applies flag
// overrides and validates the result.
func loadSettings(path string, fs *pflag.FlagSet, p *physicsFlags) (config.Settings, error) {
	s := config.Default()
	if path != "" {
		var err error
		if s, err = config.Load(path); err != nil {
			return config.Settings{}, err
		}
	}
	if p != nil {
		p.apply(fs, &s.Cloth)
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}
