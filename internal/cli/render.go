package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/observability"
	"github.com/matzehuels/clothsim/pkg/render"
	"github.com/matzehuels/clothsim/pkg/render/mesh"
	"github.com/matzehuels/clothsim/pkg/render/sink"
	"github.com/matzehuels/clothsim/pkg/script"
	"github.com/matzehuels/clothsim/pkg/sim"
)

const defaultOutput = "cloth"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config  string   // settings file
	script  string   // pointer script
	frames  int      // frames to simulate; 0 means the script length or sim.DefaultFrames
	formats []string // output formats
	output  string   // output file (single format) or base path
	mesh    bool     // lay out svg/png/pdf with graphviz instead of drawing lines directly
	pins    bool     // mark pinned particles
	scale   float64  // PNG scale factor
	physics physicsFlags
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1.0}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Simulate headlessly and export the final frame",
		Long: `Simulate the cloth for a fixed number of frames without a terminal UI and
write the final frame in one or more formats. Pointer input comes from an
optional TOML script of drag and cut events.`,
		Example: `  clothsim render --frames 300 -f svg,json
  clothsim render --script slash.toml -o slash.png -f png
  clothsim render --mesh -f dot,svg -o mesh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := render.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, &opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.config, "config", "c", "", "settings file (TOML)")
	fs.StringVarP(&opts.script, "script", "s", "", "pointer script (TOML)")
	fs.IntVar(&opts.frames, "frames", 0, fmt.Sprintf("frames to simulate (default: script length or %d)", sim.DefaultFrames))
	fs.StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default \""+defaultOutput+"\")")
	fs.BoolVar(&opts.mesh, "mesh", false, "lay out svg/png/pdf output with graphviz neato")
	fs.BoolVar(&opts.pins, "pins", false, "mark pinned particles")
	fs.Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	opts.physics.register(fs)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := loadSettings(opts.config, cmd.Flags(), &opts.physics)
	if err != nil {
		return err
	}

	var source sim.InputSource
	frames := opts.frames
	if opts.script != "" {
		s, err := script.Load(opts.script)
		if err != nil {
			return err
		}
		source = s
		if frames == 0 {
			frames = s.Len()
		}
		logger.Debug("loaded script", "path", opts.script, "events", len(s.Events()))
	}

	total := frames
	if total == 0 {
		total = sim.DefaultFrames
	}
	spinner := newFrameSpinner(ctx, "Simulating", total)
	spinner.Start()
	prog := newProgress(logger)

	res, err := sim.NewRunner(logger).Run(ctx, sim.Options{
		Config: settings.Cloth,
		Frames: frames,
		Source: source,
		OnFrame: func(st cloth.StepStats) {
			spinner.Update(st.Frame)
		},
	})
	if err != nil {
		if spinner.Interrupted() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Simulation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Simulated %d frames", res.Stats.Frames))

	scene := render.Snapshot(res.Cloth)
	paths, err := writeOutputs(ctx, scene, res.RunID, opts)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout())
	out.success("Rendered %d file(s)", len(paths))
	out.keyValue("run", res.RunID)
	out.runStats(res.Stats.Frames, res.Stats.Live, res.Stats.Torn, res.Stats.Severed)
	for _, p := range paths {
		out.file(p)
	}
	return nil
}

// writeOutputs renders scene once per format and returns the written paths.
func writeOutputs(ctx context.Context, scene render.Scene, runID string, opts *renderOpts) (paths []string, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.formats, time.Since(start), err) }()

	for _, format := range opts.formats {
		data, err := renderScene(scene, format, runID, opts)
		if err != nil {
			return paths, fmt.Errorf("render %s: %w", format, err)
		}
		path := outputPath(opts.output, format, len(opts.formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderScene(scene render.Scene, format, runID string, opts *renderOpts) ([]byte, error) {
	if opts.mesh || format == render.FormatDOT {
		dot := mesh.ToDOT(scene)
		switch format {
		case render.FormatDOT:
			return []byte(dot), nil
		case render.FormatSVG:
			return mesh.RenderSVG(dot)
		case render.FormatPNG:
			return mesh.RenderPNG(dot, opts.scale)
		case render.FormatPDF:
			return mesh.RenderPDF(dot)
		}
	}

	svgOpts := []sink.SVGOption{sink.WithRunID(runID)}
	if opts.pins {
		svgOpts = append(svgOpts, sink.WithPins("#ff4040"))
	}

	switch format {
	case render.FormatSVG:
		return sink.RenderSVG(scene, svgOpts...), nil
	case render.FormatJSON:
		return sink.RenderJSON(scene, sink.WithJSONRunID(runID))
	case render.FormatPNG:
		return sink.RenderPNG(scene, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.scale))
	case render.FormatPDF:
		return sink.RenderPDF(scene, sink.WithPDFSVGOptions(svgOpts...))
	}
	return nil, render.ValidateFormat(format)
}

// outputPath picks the file for one format. A single format with an explicit
// file name is written as given; otherwise the format is appended to the base
// path, after stripping any known format extension.
func outputPath(output, format string, single bool) string {
	if output == "" {
		return defaultOutput + "." + format
	}
	ext := filepath.Ext(output)
	if single && ext != "" {
		return output
	}
	if slices.Contains(render.Formats, strings.TrimPrefix(ext, ".")) {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}
