package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/config"
	"github.com/matzehuels/clothsim/pkg/observability"
	"github.com/matzehuels/clothsim/pkg/render"
	"github.com/matzehuels/clothsim/pkg/render/term"
	"github.com/matzehuels/clothsim/pkg/vec"
)

const statusLines = 1

// =============================================================================
// ClothModel - Interactive simulation
// =============================================================================

type tickMsg time.Time

// ClothModel is the bubbletea model for the interactive cloth. It owns the
// cloth and mutates it only from Update.
type ClothModel struct {
	ctx      context.Context
	logger   *log.Logger
	settings config.Settings

	cloth   *cloth.Cloth
	runID   string
	started time.Time
	canvas  *term.Canvas

	input   cloth.Input // last frame's snapshot
	pointer vec.Vec2
	drag    bool
	cut     bool
	paused  bool

	frames  int // frames stepped across resets
	torn    int
	severed int
}

// NewClothModel builds a fresh cloth from settings. settings must be valid.
func NewClothModel(ctx context.Context, settings config.Settings, logger *log.Logger) (ClothModel, error) {
	m := ClothModel{ctx: ctx, logger: logger, settings: settings}
	if err := m.reset(); err != nil {
		return ClothModel{}, err
	}
	return m, nil
}

func (m *ClothModel) reset() error {
	c, err := cloth.New(m.settings.Cloth)
	if err != nil {
		return err
	}
	if m.cloth != nil {
		m.complete(nil)
	}
	m.cloth = c
	m.runID = uuid.NewString()
	m.started = time.Now()
	m.input = cloth.Input{Pointer: m.pointer, Previous: m.pointer}
	m.torn, m.severed = 0, 0
	m.redraw()

	observability.Simulation().OnRunStart(m.ctx, m.runID, c.NumParticles(), c.NumConstraints())
	m.logger.Info("cloth built", "run", m.runID,
		"particles", c.NumParticles(),
		"constraints", c.NumConstraints())
	return nil
}

func (m ClothModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.settings.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ClothModel) Init() tea.Cmd {
	return m.tick()
}

func (m ClothModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.canvas = term.NewCanvas(msg.Width, max(msg.Height-statusLines, 0))
		m.redraw()
	case tickMsg:
		if !m.paused {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m ClothModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "n":
		if m.paused {
			m.step()
		}
	case "r":
		m.logger.Info("reset", "run", m.runID, "frame", m.cloth.FrameCount())
		if err := m.reset(); err != nil {
			m.logger.Error("reset failed", "err", err)
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleMouse tracks the pointer in scene coordinates. Left button drags,
// right button cuts, any release lets go of both. While paused the last
// snapshot follows the pointer, so resuming starts without motion.
func (m *ClothModel) handleMouse(msg tea.MouseMsg) {
	if m.canvas == nil || msg.Y >= m.canvas.Rows() {
		return
	}
	cfg := m.settings.Cloth
	m.pointer = m.canvas.ScenePoint(msg.X, msg.Y, cfg.Width, cfg.Height)
	if m.paused {
		m.input.Pointer = m.pointer
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.drag = true
		case tea.MouseButtonRight:
			m.cut = true
		}
	case tea.MouseActionRelease:
		m.drag, m.cut = false, false
	}
}

// step advances the cloth one frame with the current pointer snapshot.
func (m *ClothModel) step() {
	m.input = m.input.Advance(m.pointer)
	m.input.Drag, m.input.Cut = m.drag, m.cut

	st := m.cloth.Step(m.settings.Cloth.Frame(m.input))
	m.frames++
	m.torn += st.Torn
	m.severed += st.Severed
	observability.Simulation().OnStep(m.ctx, m.runID, st.Frame, st.Torn, st.Severed, st.Live)
	if st.Torn > 0 || st.Severed > 0 {
		m.logger.Debug("constraints removed", "run", m.runID, "frame", st.Frame,
			"torn", st.Torn, "severed", st.Severed, "live", st.Live)
	}
	m.redraw()
}

func (m *ClothModel) redraw() {
	if m.canvas != nil {
		m.canvas.Draw(render.Snapshot(m.cloth))
	}
}

func (m ClothModel) View() string {
	var b strings.Builder
	if m.canvas != nil {
		b.WriteString(styleCloth.Render(m.canvas.String()))
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar())
	return b.String()
}

func (m ClothModel) statusBar() string {
	state := styleRunning.Render("▶ running")
	if m.paused {
		state = stylePaused.Render("⏸ paused")
	}
	tool := ""
	switch {
	case m.cut:
		tool = " " + styleCutting.Render("✂ cut")
	case m.drag:
		tool = " " + StyleTitle.Render("✋ drag")
	}

	stats := fmt.Sprintf("frame %d · live %d · torn %d · severed %d",
		m.cloth.FrameCount(), m.cloth.NumConstraints(), m.torn, m.severed)
	help := StyleDim.Render("space pause · n step · r reset · q quit")
	return styleBar.Render(state + tool + "  " + stats + "  " + help)
}

// complete reports the end of the current cloth's run.
func (m ClothModel) complete(err error) {
	observability.Simulation().OnRunComplete(m.ctx, m.runID, m.cloth.FrameCount(), time.Since(m.started), err)
}

// Frames returns the number of frames stepped since the model was created.
func (m ClothModel) Frames() int { return m.frames }

// RunID returns the id of the current cloth.
func (m ClothModel) RunID() string { return m.runID }
