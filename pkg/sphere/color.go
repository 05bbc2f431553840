package sphere

import (
	"fmt"
	"math/rand/v2"
)

// Color is a linear RGB color with components in [0, 1].
type Color [3]float32

// Bright colors keep every channel in [minChannel, 1).
const minChannel = 0.3

// ColorMode selects how often a new color is drawn.
type ColorMode string

// Color modes.
const (
	ColorPerCell  ColorMode = "cell"
	ColorPerChunk ColorMode = "chunk"
)

// ParseColorMode validates a color mode name from configuration.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorPerCell, ColorPerChunk:
		return ColorMode(s), nil
	case "":
		return ColorPerCell, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want \"cell\" or \"chunk\")", s)
	}
}

// Palette draws random bright colors from a deterministic stream.
// A Palette is not safe for concurrent use; give each chunk its own.
type Palette struct {
	rng *rand.Rand
}

// NewPalette returns a palette for the given run seed and stream. Two
// palettes with the same seed and stream produce the same colors.
func NewPalette(seed, stream uint64) *Palette {
	return &Palette{rng: rand.New(rand.NewPCG(seed, stream))}
}

// Next returns the next color.
func (p *Palette) Next() Color {
	return Color{p.channel(), p.channel(), p.channel()}
}

func (p *Palette) channel() float32 {
	return minChannel + (1-minChannel)*p.rng.Float32()
}
