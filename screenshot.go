package warpcam

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot of the presented frame, captured at
// the end of the next Draw. Files are written to Config.ScreenshotDir.
func (a *App) Screenshot(label string) {
	a.screenshots = append(a.screenshots, label)
}

// flushScreenshots writes every queued screenshot of screen.
func (a *App) flushScreenshots(screen *ebiten.Image) {
	if len(a.screenshots) == 0 {
		return
	}
	defer func() { a.screenshots = a.screenshots[:0] }()

	dir := a.cfg.ScreenshotDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Error("screenshot mkdir", "dir", dir, "err", err)
		return
	}
	img := readScreen(screen)
	stamp := a.now().Format("20060102_150405")
	for _, label := range a.screenshots {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s_%s.png",
			stamp, sanitizeLabel(label), a.mode, a.filter))
		if err := writePNG(path, img); err != nil {
			Logger().Error("screenshot", "err", err)
			continue
		}
		Logger().Info("screenshot saved", "path", path)
	}
}

// readScreen copies screen into a straight-alpha image.
func readScreen(screen *ebiten.Image) *image.NRGBA {
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	return unpremultiply(pixels, b.Dx(), b.Dy())
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

// writePNG encodes img to a PNG file at path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces everything else
// with '_' and falls back to "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

// timestamp is the default clock.
func timestamp() time.Time { return time.Now() }
