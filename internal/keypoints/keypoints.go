// Package keypoints flattens holistic detection results into fixed-length
// feature vectors.
package keypoints

import "github.com/ayusman/abhinaya/internal/detector"

// Segment sizes of a Vector.
const (
	PoseSize      = detector.NumPoseLandmarks * 4 // x, y, z, visibility
	FaceSize      = detector.NumFaceLandmarks * 3
	HandSize      = detector.NumHandLandmarks * 3
	LeftHandSize  = HandSize
	RightHandSize = HandSize

	// Size is the length of every Vector.
	Size = PoseSize + FaceSize + LeftHandSize + RightHandSize
)

// Segment offsets of a Vector.
const (
	PoseOffset      = 0
	FaceOffset      = PoseOffset + PoseSize
	LeftHandOffset  = FaceOffset + FaceSize
	RightHandOffset = LeftHandOffset + LeftHandSize
)

// Vector is the flattened landmarks of one frame, laid out as
// [pose][face][left hand][right hand]. Groups that were not found are zeros.
type Vector [Size]float64

// Extract flattens r into a Vector. It is a pure function of r.
func Extract(r detector.Result) Vector {
	var v Vector

	if pose, ok := r.Pose.Points(); ok {
		out := v[PoseOffset:FaceOffset]
		for i, p := range pose {
			out[i*4] = p.X
			out[i*4+1] = p.Y
			out[i*4+2] = p.Z
			out[i*4+3] = p.Visibility
		}
	}

	if face, ok := r.Face.Points(); ok {
		putXYZ(v[FaceOffset:LeftHandOffset], face[:])
	}

	if hand, ok := r.LeftHand.Points(); ok {
		putXYZ(v[LeftHandOffset:RightHandOffset], hand[:])
	}

	if hand, ok := r.RightHand.Points(); ok {
		putXYZ(v[RightHandOffset:], hand[:])
	}

	return v
}

func putXYZ(dst []float64, points []detector.Landmark) {
	for i, p := range points {
		dst[i*3] = p.X
		dst[i*3+1] = p.Y
		dst[i*3+2] = p.Z
	}
}

// Pose returns the pose segment of v.
func (v *Vector) Pose() []float64 { return v[PoseOffset:FaceOffset] }

// Face returns the face segment of v.
func (v *Vector) Face() []float64 { return v[FaceOffset:LeftHandOffset] }

// LeftHand returns the left hand segment of v.
func (v *Vector) LeftHand() []float64 { return v[LeftHandOffset:RightHandOffset] }

// RightHand returns the right hand segment of v.
func (v *Vector) RightHand() []float64 { return v[RightHandOffset:] }

// Slice returns v as a slice sharing its storage.
func (v *Vector) Slice() []float64 { return v[:] }
