package detector

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	result Result
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetResult sets the result that will be returned by Detect.
func (m *MockDetector) SetResult(result Result) {
	m.result = result
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured result or error.
func (m *MockDetector) Detect(frame Frame) (Result, error) {
	m.calls++
	if m.err != nil {
		return Result{}, m.err
	}
	return m.result, nil
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// UniformPose returns a pose group whose 33 points all equal p.
func UniformPose(p PoseLandmark) PoseLandmarks {
	var pose PoseLandmarks
	for i := range pose {
		pose[i] = p
	}
	return pose
}

// StandingPoseLandmarks returns a preset pose of a person standing upright
// facing the camera with arms relaxed.
func StandingPoseLandmarks() PoseLandmarks {
	var pose PoseLandmarks

	// Head points cluster around the nose
	for i := Nose; i <= 10; i++ {
		pose[i] = PoseLandmark{X: 0.48 + float64(i%3)*0.02, Y: 0.18 + float64(i%2)*0.02, Z: -0.3, Visibility: 0.99}
	}

	pose[LeftShoulder] = PoseLandmark{X: 0.60, Y: 0.35, Z: -0.1, Visibility: 0.99}
	pose[RightShoulder] = PoseLandmark{X: 0.40, Y: 0.35, Z: -0.1, Visibility: 0.99}
	pose[13] = PoseLandmark{X: 0.65, Y: 0.50, Z: -0.05, Visibility: 0.95}
	pose[14] = PoseLandmark{X: 0.35, Y: 0.50, Z: -0.05, Visibility: 0.95}
	pose[LeftWrist] = PoseLandmark{X: 0.66, Y: 0.64, Z: -0.08, Visibility: 0.90}
	pose[RightWrist] = PoseLandmark{X: 0.34, Y: 0.64, Z: -0.08, Visibility: 0.90}

	// Fingers hang just below the wrists
	for i := 17; i <= 22; i++ {
		x := 0.67
		if i%2 == 0 {
			x = 0.33
		}
		pose[i] = PoseLandmark{X: x, Y: 0.67, Z: -0.09, Visibility: 0.85}
	}

	pose[LeftHip] = PoseLandmark{X: 0.56, Y: 0.70, Z: 0.0, Visibility: 0.80}
	pose[RightHip] = PoseLandmark{X: 0.44, Y: 0.70, Z: 0.0, Visibility: 0.80}

	// Legs are mostly out of frame
	for i := 25; i < NumPoseLandmarks; i++ {
		x := 0.56
		if i%2 == 0 {
			x = 0.44
		}
		pose[i] = PoseLandmark{X: x, Y: 0.85 + float64(i-25)*0.02, Z: 0.05, Visibility: 0.2}
	}

	return pose
}

// NeutralFaceLandmarks returns a preset face mesh laid out on a small grid
// around the centre of the upper image.
func NeutralFaceLandmarks() FaceLandmarks {
	var face FaceLandmarks
	for i := range face {
		row, col := i/26, i%26
		face[i] = Landmark{
			X: 0.40 + float64(col)*0.008,
			Y: 0.10 + float64(row)*0.008,
			Z: -0.01 * float64(i%5),
		}
	}
	return face
}

// OpenPalmLandmarks returns a preset hand with all fingers extended upward.
func OpenPalmLandmarks() HandLandmarks {
	var hand HandLandmarks

	hand[Wrist] = Landmark{X: 0.5, Y: 0.8, Z: 0.0}

	hand[ThumbCMC] = Landmark{X: 0.55, Y: 0.75, Z: 0.02}
	hand[ThumbMCP] = Landmark{X: 0.62, Y: 0.70, Z: 0.03}
	hand[ThumbIP] = Landmark{X: 0.68, Y: 0.65, Z: 0.03}
	hand[ThumbTip] = Landmark{X: 0.73, Y: 0.60, Z: 0.03}

	hand[IndexMCP] = Landmark{X: 0.55, Y: 0.68, Z: 0.0}
	hand[IndexPIP] = Landmark{X: 0.57, Y: 0.55, Z: 0.0}
	hand[IndexDIP] = Landmark{X: 0.58, Y: 0.45, Z: 0.0}
	hand[IndexTip] = Landmark{X: 0.58, Y: 0.35, Z: 0.0}

	hand[MiddleMCP] = Landmark{X: 0.50, Y: 0.66, Z: 0.0}
	hand[MiddlePIP] = Landmark{X: 0.50, Y: 0.52, Z: 0.0}
	hand[MiddleDIP] = Landmark{X: 0.50, Y: 0.40, Z: 0.0}
	hand[MiddleTip] = Landmark{X: 0.50, Y: 0.28, Z: 0.0}

	hand[RingMCP] = Landmark{X: 0.45, Y: 0.68, Z: 0.0}
	hand[RingPIP] = Landmark{X: 0.43, Y: 0.55, Z: 0.0}
	hand[RingDIP] = Landmark{X: 0.42, Y: 0.45, Z: 0.0}
	hand[RingTip] = Landmark{X: 0.42, Y: 0.35, Z: 0.0}

	hand[PinkyMCP] = Landmark{X: 0.40, Y: 0.70, Z: 0.0}
	hand[PinkyPIP] = Landmark{X: 0.37, Y: 0.60, Z: 0.0}
	hand[PinkyDIP] = Landmark{X: 0.35, Y: 0.50, Z: 0.0}
	hand[PinkyTip] = Landmark{X: 0.34, Y: 0.42, Z: 0.0}

	return hand
}

// FullResult returns a Result with every group found, using the presets above.
func FullResult() Result {
	return Result{
		Pose:      Found(StandingPoseLandmarks()),
		Face:      Found(NeutralFaceLandmarks()),
		LeftHand:  Found(OpenPalmLandmarks()),
		RightHand: Found(OpenPalmLandmarks()),
	}
}
