package sparkles

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/decker502/sparkles/pkg/config"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// TestNewParticles_CountSizePosition 数量、尺寸、位置范围
func TestNewParticles_CountSizePosition(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		opts          config.Options
	}{
		{"defaults", 200, 100, config.Options{}},
		{"many small", 640, 480, config.Options{config.KeyCount: 500, config.KeyMinSize: 1, config.KeyMaxSize: 2}},
		{"single size", 50, 50, config.Options{config.KeyCount: 64, config.KeyMinSize: 5, config.KeyMaxSize: 5}},
		{"tiny surface", 1, 1, config.Options{config.KeyCount: 10}},
	}

	rng := newTestRand()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := config.Merge(config.DefaultOptions(), tt.opts)
			particles := newParticles(rng, tt.width, tt.height, opts)

			if len(particles) != opts.Count() {
				t.Fatalf("Expected %d particles, got %d", opts.Count(), len(particles))
			}

			for i, p := range particles {
				if p.Size < float64(opts.MinSize()) || p.Size > float64(opts.MaxSize()) {
					t.Errorf("Particle %d size %.0f outside [%d, %d]", i, p.Size, opts.MinSize(), opts.MaxSize())
				}
				if p.Position.X < 0 || p.Position.X >= float64(tt.width) {
					t.Errorf("Particle %d x=%.0f outside [0, %d)", i, p.Position.X, tt.width)
				}
				if p.Position.Y < 0 || p.Position.Y >= float64(tt.height) {
					t.Errorf("Particle %d y=%.0f outside [0, %d)", i, p.Position.Y, tt.height)
				}
				if p.Opacity <= 0 || p.Opacity >= 1 {
					t.Errorf("Particle %d initial opacity %f outside (0, 1)", i, p.Opacity)
				}
				if p.Delta.X < -500 || p.Delta.X > 499 {
					t.Errorf("Particle %d dx=%.0f outside [-500, 499]", i, p.Delta.X)
				}
				if !validCel(p.Cel) {
					t.Errorf("Particle %d has invalid cel %d", i, p.Cel)
				}
			}
		})
	}
}

// TestNewParticles_NegativeCount 负数数量得到空集合而不是 panic
func TestNewParticles_NegativeCount(t *testing.T) {
	opts := config.Merge(config.DefaultOptions(), config.Options{config.KeyCount: -3})
	if got := newParticles(newTestRand(), 10, 10, opts); len(got) != 0 {
		t.Errorf("Expected empty set for negative count, got %d", len(got))
	}
}

// TestVerticalDelta_Direction 方向偏好的取值范围
func TestVerticalDelta_Direction(t *testing.T) {
	tests := []struct {
		direction config.Direction
		min, max  float64
	}{
		{config.DirectionDown, 50, 549},
		{config.DirectionUp, -549, -50},
		{config.DirectionBoth, -500, 499},
	}

	rng := newTestRand()
	for _, tt := range tests {
		t.Run(string(tt.direction), func(t *testing.T) {
			for i := 0; i < 2000; i++ {
				dy := verticalDelta(rng, tt.direction)
				if dy < tt.min || dy > tt.max {
					t.Fatalf("dy=%.0f outside [%.0f, %.0f]", dy, tt.min, tt.max)
				}
			}
		})
	}
}

// TestResolveColor 颜色解析
func TestResolveColor(t *testing.T) {
	rng := newTestRand()

	t.Run("rainbow", func(t *testing.T) {
		opts := config.Options{config.KeyColor: "rainbow", config.KeyCount: 2}
		particles := newParticles(rng, 100, 100, opts)
		a, b := particles[0].Color, particles[1].Color
		if !hexColorPattern.MatchString(a) || !hexColorPattern.MatchString(b) {
			t.Fatalf("Rainbow colors must be 6-digit hex, got %q and %q", a, b)
		}
		if a == b {
			t.Errorf("Two rainbow particles got the same color %q", a)
		}
		if particles[0].tint == nil {
			t.Error("Rainbow color should be parsed into a tint")
		}
	})

	t.Run("single choice list", func(t *testing.T) {
		opts := config.Options{config.KeyColor: []string{"#111111"}, config.KeyCount: 20}
		for _, p := range newParticles(rng, 100, 100, opts) {
			if p.Color != "#111111" {
				t.Fatalf("Expected #111111, got %q", p.Color)
			}
		}
	})

	t.Run("choice list", func(t *testing.T) {
		choices := []string{"#111111", "#222222", "gold"}
		seen := make(map[string]bool)
		opts := config.Options{config.KeyColor: choices, config.KeyCount: 200}
		for _, p := range newParticles(rng, 100, 100, opts) {
			seen[p.Color] = true
		}
		for _, c := range choices {
			if !seen[c] {
				t.Errorf("Choice %q was never picked in 200 particles", c)
			}
		}
	})

	t.Run("literal", func(t *testing.T) {
		opts := config.Options{config.KeyColor: "#ABCDEF", config.KeyCount: 3}
		for _, p := range newParticles(rng, 100, 100, opts) {
			if p.Color != "#ABCDEF" {
				t.Errorf("Expected literal color, got %q", p.Color)
			}
		}
	})

	t.Run("no color", func(t *testing.T) {
		opts := config.Options{config.KeyColor: "", config.KeyCount: 3}
		for _, p := range newParticles(rng, 100, 100, opts) {
			if p.tint != nil {
				t.Error("Empty color should not produce a tint")
			}
		}
	})

	t.Run("unknown color", func(t *testing.T) {
		opts := config.Options{config.KeyColor: "bogus", config.KeyCount: 3}
		for _, p := range newParticles(rng, 100, 100, opts) {
			if p.Color != "bogus" || p.tint != nil {
				t.Errorf("Unknown color should be kept as-is without tint, got %q tint=%v", p.Color, p.tint)
			}
		}
	})
}

// TestRandomHexColor 随机颜色格式
func TestRandomHexColor(t *testing.T) {
	rng := newTestRand()
	for i := 0; i < 1000; i++ {
		if c := randomHexColor(rng); !hexColorPattern.MatchString(c) {
			t.Fatalf("Invalid hex color %q", c)
		}
	}
}

func validCel(cel int) bool {
	for _, c := range spriteCels {
		if c == cel {
			return true
		}
	}
	return false
}
