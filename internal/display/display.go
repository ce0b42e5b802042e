// Package display shows annotated frames in a desktop window and polls the
// keyboard for the quit key.
package display

import (
	"sync"

	"gocv.io/x/gocv"
)

// DefaultTitle is the title of the preview window.
const DefaultTitle = "OpenCV Feed"

// QuitKey is the key that ends a capture session.
const QuitKey = 'q'

// Display defines the interface for frame output implementations.
type Display interface {
	// Show presents img. It does not take ownership of img.
	Show(img gocv.Mat)
	// WaitKey waits up to delay milliseconds for a key press and returns
	// its code, or -1 if no key was pressed.
	WaitKey(delay int) int
	Close() error
}

// IsQuit reports whether a WaitKey result is the quit key.
func IsQuit(key int) bool {
	return key >= 0 && key&0xFF == QuitKey
}

// Window is a Display backed by a HighGUI window. The window is created
// lazily on the first Show so that constructing a Window never touches the
// GUI backend.
type Window struct {
	title  string
	window *gocv.Window
	mu     sync.Mutex
}

// NewWindow creates a new Window with the given title.
func NewWindow(title string) *Window {
	return &Window{title: title}
}

// Show displays img in the window.
func (w *Window) Show(img gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		w.window = gocv.NewWindow(w.title)
	}
	w.window.IMShow(img)
}

// WaitKey polls the keyboard. It returns -1 if the window was never shown.
func (w *Window) WaitKey(delay int) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return -1
	}
	return w.window.WaitKey(delay)
}

// Close destroys the window.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}
