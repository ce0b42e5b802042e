// Package detector provides holistic landmark detection interfaces and types.
package detector

// Landmark counts per group, following the MediaPipe Holistic model.
// See: https://developers.google.com/mediapipe/solutions/vision/holistic_landmarker
const (
	NumPoseLandmarks = 33
	NumFaceLandmarks = 468
	NumHandLandmarks = 21
)

// Hand landmark indices following MediaPipe convention.
const (
	Wrist     = 0
	ThumbCMC  = 1
	ThumbMCP  = 2
	ThumbIP   = 3
	ThumbTip  = 4
	IndexMCP  = 5
	IndexPIP  = 6
	IndexDIP  = 7
	IndexTip  = 8
	MiddleMCP = 9
	MiddlePIP = 10
	MiddleDIP = 11
	MiddleTip = 12
	RingMCP   = 13
	RingPIP   = 14
	RingDIP   = 15
	RingTip   = 16
	PinkyMCP  = 17
	PinkyPIP  = 18
	PinkyDIP  = 19
	PinkyTip  = 20
)

// Pose landmark indices used by the fixtures and the overlay.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
)

// Landmark is a normalized 3D point. X and Y are in [0,1] relative to the
// image width and height; Z is depth relative to the group's origin.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PoseLandmark is a Landmark with the model's visibility score.
type PoseLandmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type (
	// PoseLandmarks holds the 33 body landmarks in canonical order.
	PoseLandmarks [NumPoseLandmarks]PoseLandmark
	// FaceLandmarks holds the 468 face mesh landmarks in canonical order.
	FaceLandmarks [NumFaceLandmarks]Landmark
	// HandLandmarks holds the 21 hand landmarks in canonical order.
	HandLandmarks [NumHandLandmarks]Landmark
)

// Group is a landmark group that was either found in a frame with its full
// set of points, or not found at all. The zero value is not found.
type Group[T any] struct {
	points T
	found  bool
}

// Found returns a group holding points.
func Found[T any](points T) Group[T] {
	return Group[T]{points: points, found: true}
}

// Points returns the group's points and whether the group was found.
func (g Group[T]) Points() (T, bool) {
	return g.points, g.found
}

// Found reports whether the group was detected.
func (g Group[T]) Found() bool {
	return g.found
}

// Result is the detector's output for a single frame. Each group is
// independent; there is no relationship between results of different frames.
type Result struct {
	Pose      Group[PoseLandmarks]
	Face      Group[FaceLandmarks]
	LeftHand  Group[HandLandmarks]
	RightHand Group[HandLandmarks]
}

// Presence summarizes which groups of a Result were found.
type Presence struct {
	Pose      bool `json:"pose"`
	Face      bool `json:"face"`
	LeftHand  bool `json:"left_hand"`
	RightHand bool `json:"right_hand"`
}

// Presence returns which groups were found.
func (r Result) Presence() Presence {
	return Presence{
		Pose:      r.Pose.Found(),
		Face:      r.Face.Found(),
		LeftHand:  r.LeftHand.Found(),
		RightHand: r.RightHand.Found(),
	}
}
