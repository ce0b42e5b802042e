package detector

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned by Process when the captured frame has no pixels.
var ErrEmptyFrame = errors.New("frame is empty")

// Frame is a read-only view of an RGB image handed to a Detector.
// It exposes no way to modify the underlying pixels.
type Frame struct {
	mat gocv.Mat
}

// NewFrame wraps an RGB mat without copying it. The caller keeps ownership
// of mat and must keep it alive while the Frame is in use.
func NewFrame(mat gocv.Mat) Frame {
	return Frame{mat: mat}
}

// Width returns the frame width in pixels.
func (f Frame) Width() int { return f.mat.Cols() }

// Height returns the frame height in pixels.
func (f Frame) Height() int { return f.mat.Rows() }

// Empty reports whether the frame has no pixels.
func (f Frame) Empty() bool { return f.mat.Empty() }

// Bytes returns a copy of the packed RGB pixel data, row by row.
func (f Frame) Bytes() []byte {
	return f.mat.ToBytes()
}

// Clone returns a deep copy of the frame. The caller must close it.
func (f Frame) Clone() gocv.Mat {
	return f.mat.Clone()
}

// Process runs d on a BGR frame as captured from the camera.
//
// The frame is converted to RGB for the detector and the RGB buffer is
// converted back to BGR for display. The input frame is not modified.
// The caller must close the returned image.
func Process(d Detector, frame gocv.Mat) (gocv.Mat, Result, error) {
	if frame.Empty() {
		return gocv.NewMat(), Result{}, ErrEmptyFrame
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	if err := gocv.CvtColor(frame, &rgb, gocv.ColorBGRToRGB); err != nil {
		return gocv.NewMat(), Result{}, fmt.Errorf("convert to RGB: %w", err)
	}

	result, err := d.Detect(NewFrame(rgb))
	if err != nil {
		return gocv.NewMat(), Result{}, fmt.Errorf("detect: %w", err)
	}

	image := gocv.NewMat()
	if err := gocv.CvtColor(rgb, &image, gocv.ColorRGBToBGR); err != nil {
		return image, Result{}, fmt.Errorf("convert to BGR: %w", err)
	}

	return image, result, nil
}
