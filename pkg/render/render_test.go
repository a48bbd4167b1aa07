package render

import (
	"testing"

	"github.com/matzehuels/clothsim/pkg/cloth"
	"github.com/matzehuels/clothsim/pkg/errors"
	"github.com/matzehuels/clothsim/pkg/vec"
)

func TestSnapshot(t *testing.T) {
	cfg := cloth.DefaultConfig()
	cfg.Cols, cfg.Rows = 2, 1
	c, err := cloth.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	s := Snapshot(c)
	if s.Width != cfg.Width || s.Height != cfg.Height {
		t.Errorf("viewport = %gx%g, want %gx%g", s.Width, s.Height, cfg.Width, cfg.Height)
	}
	if s.Particles != 6 {
		t.Errorf("Particles = %d, want 6", s.Particles)
	}
	if len(s.Lines) != c.NumConstraints() {
		t.Errorf("Lines = %d, want %d", len(s.Lines), c.NumConstraints())
	}
	if len(s.Pins) != 3 {
		t.Errorf("Pins = %d, want 3", len(s.Pins))
	}

	first := s.Lines[0]
	if first.From != 1 || first.To != 0 {
		t.Errorf("first line = %d->%d, want 1->0", first.From, first.To)
	}
	if first.A != c.Particle(1).Position {
		t.Errorf("first line A = %v, want %v", first.A, c.Particle(1).Position)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	cfg := cloth.DefaultConfig()
	cfg.Cols, cfg.Rows = 1, 1
	c, err := cloth.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := Snapshot(c)
	before := s.Lines[0].A

	c.Step(cfg.Frame(cloth.Input{}.Advance(vec.New(-100, -100))))
	c.Particle(3).Position = vec.New(1, 1)

	if s.Lines[0].A != before {
		t.Error("snapshot changed after stepping the cloth")
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"SVG", true}, // case-sensitive
		{"gif", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "bmp"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}
