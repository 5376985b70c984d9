package warpcam

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cpu", "cpu"},
		{"after-drag", "after-drag"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	a, _ := newTestApp(t, NewStillSource(TestPattern(8, 8)))
	a.Screenshot("a")
	a.Screenshot("b")
	if len(a.screenshots) != 2 {
		t.Fatalf("queue len = %d, want 2", len(a.screenshots))
	}
	if a.screenshots[0] != "a" || a.screenshots[1] != "b" {
		t.Errorf("queue = %v, want [a b]", a.screenshots)
	}
}

func TestScreenshotKeyQueuesCapture(t *testing.T) {
	a, _ := newTestApp(t, NewStillSource(TestPattern(8, 8)))
	a.InjectKeys(KeyScreenshot)
	runFrames(t, a, 1)
	if len(a.screenshots) != 1 || a.screenshots[0] != "capture" {
		t.Errorf("queue = %v, want [capture]", a.screenshots)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	if d := DefaultConfig().ScreenshotDir; d != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", d, "screenshots")
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half alpha
		0, 0, 0, 0, // transparent
		200, 10, 10, 100, // channel over alpha clamps
	}
	img := unpremultiply(pixels, 2, 2)
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{1, 0, color.NRGBA{127, 63, 0, 128}},
		{0, 1, color.NRGBA{0, 0, 0, 0}},
		{1, 1, color.NRGBA{255, 25, 25, 100}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := TestPattern(12, 9)
	if err := writePNG(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 12, 9) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := ToRGBA(img).RGBAAt(6, 5); got != src.RGBAAt(6, 5) {
		t.Errorf("pixel = %v, want %v", got, src.RGBAAt(6, 5))
	}

	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), src); err == nil {
		t.Error("expected error for missing directory")
	}
}
