// Package overlay draws detected landmarks onto video frames using GoCV.
package overlay

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/detector"
)

// VisibilityThreshold is the minimum pose visibility for a point to be drawn.
const VisibilityThreshold = 0.5

// Renderer draws a detection result onto an image in place.
type Renderer interface {
	Draw(img *gocv.Mat, r detector.Result)
}

// Style describes how a point or a line is drawn.
type Style struct {
	Color     color.RGBA
	Thickness int
	Radius    int
}

// GroupStyle holds the point and connection styles of one landmark group.
type GroupStyle struct {
	Landmark   Style
	Connection Style
}

// Styles holds a GroupStyle per landmark group.
type Styles struct {
	Pose      GroupStyle
	Face      GroupStyle
	LeftHand  GroupStyle
	RightHand GroupStyle
}

// DefaultStyles returns the stock colour scheme.
func DefaultStyles() Styles {
	return Styles{
		Face: GroupStyle{
			Landmark:   Style{Color: color.RGBA{R: 10, G: 110, B: 80, A: 255}, Thickness: 1, Radius: 1},
			Connection: Style{Color: color.RGBA{R: 121, G: 110, B: 80, A: 255}, Thickness: 1, Radius: 1},
		},
		Pose: GroupStyle{
			Landmark:   Style{Color: color.RGBA{R: 10, G: 22, B: 80, A: 255}, Thickness: 1, Radius: 4},
			Connection: Style{Color: color.RGBA{R: 121, G: 44, B: 80, A: 255}, Thickness: 1, Radius: 2},
		},
		LeftHand: GroupStyle{
			Landmark:   Style{Color: color.RGBA{R: 76, G: 22, B: 80, A: 255}, Thickness: 2, Radius: 4},
			Connection: Style{Color: color.RGBA{R: 250, G: 44, B: 80, A: 255}, Thickness: 2, Radius: 2},
		},
		RightHand: GroupStyle{
			Landmark:   Style{Color: color.RGBA{R: 66, G: 117, B: 80, A: 255}, Thickness: 2, Radius: 4},
			Connection: Style{Color: color.RGBA{R: 230, G: 66, B: 80, A: 255}, Thickness: 2, Radius: 2},
		},
	}
}

// Overlay is a Renderer backed by GoCV drawing primitives.
type Overlay struct {
	styles Styles
}

// New creates an Overlay with the given styles.
func New(styles Styles) *Overlay {
	return &Overlay{styles: styles}
}

// Draw draws every found group of r onto img. Groups that were not found
// are skipped.
func (o *Overlay) Draw(img *gocv.Mat, r detector.Result) {
	if img == nil || img.Empty() {
		return
	}
	w, h := img.Cols(), img.Rows()

	if face, ok := r.Face.Points(); ok {
		drawGroup(img, pixels(face[:], nil, w, h), detector.FaceConnections, o.styles.Face)
	}

	if pose, ok := r.Pose.Points(); ok {
		points := make([]detector.Landmark, len(pose))
		visibility := make([]float64, len(pose))
		for i, p := range pose {
			points[i] = detector.Landmark{X: p.X, Y: p.Y, Z: p.Z}
			visibility[i] = p.Visibility
		}
		drawGroup(img, pixels(points, visibility, w, h), detector.PoseConnections, o.styles.Pose)
	}

	if hand, ok := r.LeftHand.Points(); ok {
		drawGroup(img, pixels(hand[:], nil, w, h), detector.HandConnections, o.styles.LeftHand)
	}

	if hand, ok := r.RightHand.Points(); ok {
		drawGroup(img, pixels(hand[:], nil, w, h), detector.HandConnections, o.styles.RightHand)
	}
}

// pixel is a landmark mapped to image coordinates. ok is false for points
// outside the image or below the visibility threshold.
type pixel struct {
	pt image.Point
	ok bool
}

func pixels(points []detector.Landmark, visibility []float64, w, h int) []pixel {
	out := make([]pixel, len(points))
	for i, p := range points {
		if visibility != nil && visibility[i] < VisibilityThreshold {
			continue
		}
		pt, ok := toPixel(p.X, p.Y, w, h)
		out[i] = pixel{pt: pt, ok: ok}
	}
	return out
}

// toPixel maps normalized coordinates to pixel coordinates.
func toPixel(x, y float64, w, h int) (image.Point, bool) {
	if !normalized(x) || !normalized(y) {
		return image.Point{}, false
	}
	px := min(max(int(math.Floor(x*float64(w))), 0), w-1)
	py := min(max(int(math.Floor(y*float64(h))), 0), h-1)
	return image.Pt(px, py), true
}

func normalized(v float64) bool {
	const eps = 1e-9
	return v > -eps && v < 1+eps
}

func drawGroup(img *gocv.Mat, points []pixel, edges []detector.Connection, gs GroupStyle) {
	for _, e := range edges {
		a, b := points[e.From], points[e.To]
		if !a.ok || !b.ok {
			continue
		}
		gocv.Line(img, a.pt, b.pt, gs.Connection.Color, gs.Connection.Thickness)
	}

	for _, p := range points {
		if !p.ok {
			continue
		}
		gocv.Circle(img, p.pt, gs.Landmark.Radius, gs.Landmark.Color, gs.Landmark.Thickness)
	}
}
