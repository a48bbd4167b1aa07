package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

const barWidth = 20

// frameSpinner animates on stderr while the headless runner steps the cloth.
// When the total is known it draws a progress bar of frames done.
type frameSpinner struct {
	out   io.Writer
	label string
	total int
	frame atomic.Int64

	parent context.Context
	quit   chan struct{}
	exited chan struct{}
	once   sync.Once
	active atomic.Bool
	drawn  int // columns of the widest line, guarded by the goroutine
}

func newFrameSpinner(ctx context.Context, label string, total int) *frameSpinner {
	return &frameSpinner{
		out:    os.Stderr,
		label:  label,
		total:  total,
		parent: ctx,
		quit:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

// Start begins the animation. It returns at once.
func (s *frameSpinner) Start() {
	if !s.active.CompareAndSwap(false, true) {
		return
	}
	go s.loop()
}

func (s *frameSpinner) loop() {
	defer close(s.exited)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.parent.Done():
			s.erase()
			return
		case <-s.quit:
			s.erase()
			return
		case <-ticker.C:
			line := s.line(spinnerFrames[i%len(spinnerFrames)])
			s.drawn = max(s.drawn, len([]rune(line)))
			fmt.Fprintf(s.out, "\r%s", line)
		}
	}
}

func (s *frameSpinner) line(r rune) string {
	icon := styleIconSpinner.Render(string(r))
	done := int(s.frame.Load())
	if s.total <= 0 {
		return fmt.Sprintf("%s %s %s", icon, StyleDim.Render(s.label), StyleNumber.Render(fmt.Sprint(done)))
	}
	fill := min(done*barWidth/s.total, barWidth)
	bar := strings.Repeat("█", fill) + strings.Repeat("░", barWidth-fill)
	return fmt.Sprintf("%s %s %s %s", icon, StyleDim.Render(s.label), bar,
		StyleNumber.Render(fmt.Sprintf("%d/%d", done, s.total)))
}

func (s *frameSpinner) erase() {
	if s.drawn > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.drawn))
	}
}

// Update records the last frame stepped. Safe to call from any goroutine.
func (s *frameSpinner) Update(frame int) {
	s.frame.Store(int64(frame))
}

// Stop ends the animation and clears its line. Calling Stop more than once,
// or before Start, is harmless.
func (s *frameSpinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		if s.active.Load() {
			<-s.exited
		}
	})
}

// StopWithError stops the spinner and prints message as a failure.
func (s *frameSpinner) StopWithError(message string) {
	s.Stop()
	newPrinter(s.out).failure("%s", message)
}

// Interrupted reports whether the command context was cancelled.
func (s *frameSpinner) Interrupted() bool {
	return s.parent.Err() != nil
}
