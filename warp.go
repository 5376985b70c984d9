package warpcam

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"
)

// Warp inverse-maps src through forward (source to destination) and returns
// a new image with the same bounds. Each destination pixel takes the source
// pixel nearest to its inverse-mapped position (rounded half away from
// zero); positions outside the source are left at Background.
//
// A singular forward transform is logged and replaced by the identity, so
// the result is a copy of src. src is never modified.
func Warp(src *image.RGBA, forward Transform) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	// Bounds match by construction.
	_ = (&Rasterizer{}).WarpInto(dst, src, forward)
	return dst
}

// Rasterizer runs the inverse warp with optional row parallelism and buffer
// reuse. The zero value warps serially.
type Rasterizer struct {
	// Workers is the number of row bands warped concurrently. Values below 2
	// warp on the calling goroutine. Output is identical either way.
	Workers int
}

// Warp is like the package-level Warp but uses r's worker setting.
func (r *Rasterizer) Warp(src *image.RGBA, forward Transform) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	_ = r.WarpInto(dst, src, forward)
	return dst
}

// WarpInto writes the warp of src into dst, overwriting every pixel of dst.
// dst must have the same size as src.
func (r *Rasterizer) WarpInto(dst, src *image.RGBA, forward Transform) error {
	sb, db := src.Bounds(), dst.Bounds()
	if sb.Size() != db.Size() {
		return fmt.Errorf("%w: src %v, dst %v", ErrSizeMismatch, sb.Size(), db.Size())
	}
	inv, err := forward.Invert()
	if err != nil {
		Logger().Warn("singular transform, using identity", "transform", forward.String(), "err", err)
		inv = Identity()
	}

	h := db.Dy()
	workers := r.Workers
	if workers > h {
		workers = h
	}
	if workers < 2 {
		warpRows(dst, src, inv, 0, h)
		return nil
	}

	var g errgroup.Group
	band := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		g.Go(func() error {
			warpRows(dst, src, inv, y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// warpRows fills destination rows [y0, y1) in local coordinates.
func warpRows(dst, src *image.RGBA, inv Transform, y0, y1 int) {
	sb, db := src.Bounds(), dst.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	w := db.Dx()

	for row := y0; row < y1; row++ {
		d := dst.PixOffset(db.Min.X, db.Min.Y+row)
		for col := 0; col < w; col++ {
			x, y := inv.Apply(float64(col), float64(row))
			sx, sy := int(math.Round(x)), int(math.Round(y))
			px := dst.Pix[d : d+4 : d+4]
			if x >= -0.5 && y >= -0.5 && sx >= 0 && sx < sw && sy >= 0 && sy < sh {
				s := src.PixOffset(sb.Min.X+sx, sb.Min.Y+sy)
				copy(px, src.Pix[s:s+4])
			} else {
				px[0], px[1], px[2], px[3] = Background.R, Background.G, Background.B, Background.A
			}
			d += 4
		}
	}
}
