package term

import (
	"testing"

	"github.com/matzehuels/clothsim/pkg/render"
	"github.com/matzehuels/clothsim/pkg/vec"
)

func TestSetDots(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "⠁"},
		{1, 0, "⠈"},
		{0, 3, "⡀"},
		{1, 3, "⢀"},
	}
	for _, tt := range tests {
		c := NewCanvas(1, 1)
		c.Set(tt.x, tt.y)
		if got := c.String(); got != tt.want {
			t.Errorf("Set(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSetOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if got := c.String(); got != "  " {
		t.Errorf("String() = %q, want blank", got)
	}
	if c.Dot(-1, 0) {
		t.Error("Dot() outside canvas should be false")
	}
}

func TestLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Line(0, 0, 3, 3)
	for i := range 4 {
		if !c.Dot(i, i) {
			t.Errorf("diagonal dot (%d,%d) not set", i, i)
		}
	}
	if c.Dot(3, 0) {
		t.Error("off-diagonal dot set")
	}

	full := NewCanvas(1, 1)
	full.Line(0, 0, 0, 3)
	full.Line(1, 3, 1, 0)
	if got := full.String(); got != "⣿" {
		t.Errorf("filled cell = %q, want ⣿", got)
	}
}

func TestLineClipped(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Line(-5, 0, 5, 0)
	if !c.Dot(0, 0) || !c.Dot(1, 0) {
		t.Error("visible part of a clipped line not drawn")
	}
}

func TestStringRows(t *testing.T) {
	c := NewCanvas(1, 2)
	c.Set(0, 4)
	if got := c.String(); got != " \n⠁" {
		t.Errorf("String() = %q", got)
	}
}

func TestDrawScalesScene(t *testing.T) {
	c := NewCanvas(10, 5) // 20 x 20 dots
	c.Draw(render.Scene{
		Width:  200,
		Height: 200,
		Lines: []render.Line{
			{A: vec.New(0, 100), B: vec.New(199, 100)},
		},
	})
	for x := range c.Width() {
		if !c.Dot(x, 10) {
			t.Fatalf("dot (%d,10) not set", x)
		}
	}

	c.Draw(render.Scene{Width: 200, Height: 200})
	if c.Dot(5, 10) {
		t.Error("Draw() should clear the previous frame")
	}
}

func TestScenePoint(t *testing.T) {
	c := NewCanvas(80, 32)
	got := c.ScenePoint(0, 0, 800, 640)
	if got != vec.New(5, 10) {
		t.Errorf("ScenePoint(0,0) = %v, want {5 10}", got)
	}
	got = c.ScenePoint(79, 31, 800, 640)
	if got != vec.New(795, 630) {
		t.Errorf("ScenePoint(79,31) = %v, want {795 630}", got)
	}
	if NewCanvas(0, 0).ScenePoint(1, 1, 10, 10) != vec.Zero {
		t.Error("empty canvas should map to zero")
	}
}
