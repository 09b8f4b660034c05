package renderer

import (
	"image/color"

	"github.com/df07/go-portal-raytracer/pkg/core"
)

// ColorToBytes converts a linear color to 8-bit RGBA. Each channel is clamped
// to [0, 0.999] and scaled by 256, so 1.0 maps to 255 and every byte value
// covers an equal share of the range. Alpha is always opaque.
func ColorToBytes(c core.Vec3) [4]uint8 {
	c = c.Clamp(0.0, 0.999)
	return [4]uint8{
		uint8(256 * c.X),
		uint8(256 * c.Y),
		uint8(256 * c.Z),
		255,
	}
}

// vec3ToColor converts a Vec3 color to an image color, applying gamma first
// when gamma is greater than zero
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	if gamma > 0 && gamma != 1 {
		// Negative components would become NaN under a fractional power
		c = c.Clamp(0.0, 1.0).GammaCorrect(gamma)
	}

	b := ColorToBytes(c)
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
}
