package gocvcapture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/phanxgames/warpcam"
)

// Webcam reads frames from an OpenCV video capture device.
type Webcam struct {
	capture *gocv.VideoCapture
	mat     gocv.Mat
	device  any
	size    image.Point // requested frame size, zero for device default
}

var _ warpcam.Source = (*Webcam)(nil)

// Open opens capture device (an index or a URL/file path) and requests a
// frame size of width x height. Zero sizes keep the device default. Devices
// that ignore the request have their frames scaled to the requested size.
func Open(device any, width, height int) (*Webcam, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: open capture %v: %v", warpcam.ErrResource, device, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: capture %v not opened", warpcam.ErrResource, device)
	}
	if width > 0 && height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}
	warpcam.Logger().Info("capture opened", "device", device,
		"width", capture.Get(gocv.VideoCaptureFrameWidth),
		"height", capture.Get(gocv.VideoCaptureFrameHeight))
	w := &Webcam{capture: capture, mat: gocv.NewMat(), device: device}
	if width > 0 && height > 0 {
		w.size = image.Pt(width, height)
	}
	return w, nil
}

// NextFrame implements warpcam.Source. A failed or empty read yields an
// empty frame, which the viewer skips.
func (w *Webcam) NextFrame() (*image.RGBA, error) {
	if ok := w.capture.Read(&w.mat); !ok || w.mat.Empty() {
		return nil, nil
	}
	img, err := w.mat.ToImage()
	if err != nil {
		warpcam.Logger().Warn("frame conversion failed", "device", w.device, "err", err)
		return nil, nil
	}
	if w.size != (image.Point{}) && img.Bounds().Size() != w.size {
		return warpcam.ScaleNearest(img, w.size.X, w.size.Y), nil
	}
	return warpcam.ToRGBA(img), nil
}

// Close releases the device and the frame buffer.
func (w *Webcam) Close() error {
	if err := w.mat.Close(); err != nil {
		return err
	}
	return w.capture.Close()
}
