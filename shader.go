package warpcam

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// One fragment shader per filter kind. The warp itself is done by the draw
// geometry; shaders only filter the sampled texel. Thresholds and weights
// match the CPU filters in filter.go.

const passthroughShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src)
}
`

const grayscaleShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	l := dot(c.rgb, vec3(0.3, 0.6, 0.1))
	return vec4(l, l, l, c.a)
}
`

// 3x3 kernel: centre 8, neighbours -1.
const edgeShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	s := imageSrc0At(src+vec2(-1, -1)).rgb +
		imageSrc0At(src+vec2(0, -1)).rgb +
		imageSrc0At(src+vec2(1, -1)).rgb +
		imageSrc0At(src+vec2(-1, 0)).rgb +
		imageSrc0At(src+vec2(1, 0)).rgb +
		imageSrc0At(src+vec2(-1, 1)).rgb +
		imageSrc0At(src+vec2(0, 1)).rgb +
		imageSrc0At(src+vec2(1, 1)).rgb
	e := clamp(8.0*c.rgb-s, vec3(0), vec3(1))
	return vec4(e, c.a)
}
`

const stylizeShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	rgb := c.rgb
	if c.a > 0 {
		rgb = rgb / c.a
	}
	// Posterize to 4 levels in byte units.
	q := floor((rgb*255.0+0.5)/64.0) * 64.0
	if q.r > 100.0 && q.g < 50.0 && q.b < 50.0 {
		return vec4(c.a, 0, 0, c.a)
	}
	if dot(q, vec3(0.3, 0.6, 0.1)) > 90.0 {
		return vec4(c.a)
	}
	return vec4(0, 0, 0, c.a)
}
`

// Box average over the median window. Texels outside the frame are
// transparent and excluded through the alpha sum.
const medianShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	sum := vec4(0)
	for dy := -7; dy <= 7; dy++ {
		for dx := -7; dx <= 7; dx++ {
			sum += imageSrc0At(src + vec2(float(dx), float(dy)))
		}
	}
	c := imageSrc0At(src)
	if sum.a == 0 {
		return c
	}
	return sum / sum.a * c.a
}
`

var shaderSources = [filterKindCount]string{
	FilterNone:       passthroughShaderSrc,
	FilterGrayscale:  grayscaleShaderSrc,
	FilterPixelate:   passthroughShaderSrc,
	FilterEdgeDetect: edgeShaderSrc,
	FilterStylize:    stylizeShaderSrc,
	FilterMedianBlur: medianShaderSrc,
}

// shaderSet compiles filter shaders on first use. Single-threaded.
type shaderSet struct {
	compiled [filterKindCount]*ebiten.Shader
}

// get returns the compiled shader for kind.
func (s *shaderSet) get(kind FilterKind) (*ebiten.Shader, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFilter, kind)
	}
	if s.compiled[kind] == nil {
		sh, err := ebiten.NewShader([]byte(shaderSources[kind]))
		if err != nil {
			return nil, fmt.Errorf("%w: compile %s shader: %v", ErrResource, kind, err)
		}
		s.compiled[kind] = sh
	}
	return s.compiled[kind], nil
}

// compileAll compiles every filter shader so failures surface at startup.
func (s *shaderSet) compileAll() error {
	for k := FilterKind(0); k < filterKindCount; k++ {
		if _, err := s.get(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *shaderSet) dispose() {
	for i, sh := range s.compiled {
		if sh != nil {
			sh.Deallocate()
			s.compiled[i] = nil
		}
	}
}
