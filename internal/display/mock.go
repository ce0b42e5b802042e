package display

import "gocv.io/x/gocv"

// MockDisplay records shown frames and replays scripted key presses.
type MockDisplay struct {
	keys   []int
	shown  int
	sizes  [][2]int
	closed bool
}

// NewMockDisplay creates a MockDisplay that returns keys from successive
// WaitKey calls, then -1.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys}
}

// Show records the frame size.
func (m *MockDisplay) Show(img gocv.Mat) {
	m.shown++
	m.sizes = append(m.sizes, [2]int{img.Cols(), img.Rows()})
}

// WaitKey returns the next scripted key.
func (m *MockDisplay) WaitKey(delay int) int {
	if len(m.keys) == 0 {
		return -1
	}
	k := m.keys[0]
	m.keys = m.keys[1:]
	return k
}

// Close marks the display closed.
func (m *MockDisplay) Close() error {
	m.closed = true
	return nil
}

// Shown returns how many frames were shown.
func (m *MockDisplay) Shown() int { return m.shown }

// Sizes returns the width and height of every shown frame.
func (m *MockDisplay) Sizes() [][2]int { return m.sizes }

// Closed reports whether Close was called.
func (m *MockDisplay) Closed() bool { return m.closed }
