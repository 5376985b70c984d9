package warpcam

import (
	"fmt"
	"image"
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // decoder registration
	_ "golang.org/x/image/webp" // decoder registration
)

// Source yields video frames. NextFrame may return an empty image (see
// IsEmptyFrame) when no frame is available; callers skip it. A non-nil
// error is fatal for the run.
type Source interface {
	NextFrame() (*image.RGBA, error)
}

// StillSource repeats one image forever.
type StillSource struct {
	frame *image.RGBA
}

// NewStillSource returns a source yielding img on every call.
func NewStillSource(img image.Image) *StillSource {
	return &StillSource{frame: ToRGBA(img)}
}

// LoadStillSource decodes a PNG, JPEG, BMP or WebP file into a StillSource.
func LoadStillSource(path string) (*StillSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrResource, path, err)
	}
	defer f.Close()
	return DecodeStillSource(f)
}

// DecodeStillSource decodes an image from r into a StillSource.
func DecodeStillSource(r io.Reader) (*StillSource, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", ErrResource, err)
	}
	Logger().Debug("decoded still frame", "format", format, "size", img.Bounds().Size())
	return NewStillSource(img), nil
}

// NextFrame implements Source.
func (s *StillSource) NextFrame() (*image.RGBA, error) {
	return s.frame, nil
}

// SequenceSource yields a fixed list of frames in order and then starts over.
// Nil entries are returned as empty frames.
type SequenceSource struct {
	frames []*image.RGBA
	next   int
}

// NewSequenceSource returns a source cycling through frames.
func NewSequenceSource(frames ...*image.RGBA) *SequenceSource {
	return &SequenceSource{frames: frames}
}

// NextFrame implements Source.
func (s *SequenceSource) NextFrame() (*image.RGBA, error) {
	if len(s.frames) == 0 {
		return nil, nil
	}
	f := s.frames[s.next]
	s.next = (s.next + 1) % len(s.frames)
	return f, nil
}

// FrameSize returns the size of the first non-empty frame src yields, reading
// at most tries frames.
func FrameSize(src Source, tries int) (image.Point, error) {
	for i := 0; i < max(tries, 1); i++ {
		f, err := src.NextFrame()
		if err != nil {
			return image.Point{}, err
		}
		if !IsEmptyFrame(f) {
			return f.Bounds().Size(), nil
		}
	}
	return image.Point{}, ErrEmptyFrame
}
