// Package app drives the capture loop: read a frame, detect landmarks, draw
// them, flatten them into a feature vector, show the result and poll the
// keyboard until the user quits or the camera goes away.
package app

import (
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/display"
	"github.com/ayusman/abhinaya/internal/keypoints"
	"github.com/ayusman/abhinaya/internal/overlay"
	"github.com/ayusman/abhinaya/internal/store"
)

// KeyPollDelay is how long each iteration waits for a key press, in milliseconds.
const KeyPollDelay = 1

// Publisher receives every processed frame. Implementations must not block
// and must not retain frame after returning.
type Publisher interface {
	Publish(frame gocv.Mat, res detector.Result, vec *keypoints.Vector)
}

// Config holds configuration options for the application.
type Config struct {
	// CameraID is recorded with each session.
	CameraID int
	// Store records session counts. Nil disables the ledger.
	Store *store.Store
	// Publisher, if set, receives each annotated frame and its vector.
	Publisher Publisher
	Logger    *zap.SugaredLogger
}

// DefaultConfig returns a Config with no store, no publisher and a no-op logger.
func DefaultConfig() Config {
	return Config{
		CameraID: capture.DefaultConfig().DeviceID,
		Logger:   zap.NewNop().Sugar(),
	}
}

// App owns the capture resources for one session.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	renderer overlay.Renderer
	display  display.Display
	logger   *zap.SugaredLogger
}

// New creates an App. The App takes ownership of camera, d and disp and
// releases them when Run returns.
func New(config Config, camera capture.Camera, d detector.Detector, r overlay.Renderer, disp display.Display) *App {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &App{
		config:   config,
		camera:   camera,
		detector: d,
		renderer: r,
		display:  disp,
		logger:   logger,
	}
}

// Summary describes a finished session.
type Summary struct {
	SessionID  string
	Counts     store.Counts
	ExitReason store.ExitReason
	// Last is the feature vector of the last processed frame, or zeros if
	// no frame was processed.
	Last keypoints.Vector
}

func (s *Summary) record(res detector.Result, vec keypoints.Vector) {
	s.Counts.Frames++
	p := res.Presence()
	if p.Pose {
		s.Counts.PoseFrames++
	}
	if p.Face {
		s.Counts.FaceFrames++
	}
	if p.LeftHand {
		s.Counts.LeftHandFrames++
	}
	if p.RightHand {
		s.Counts.RightHandFrames++
	}
	s.Last = vec
}
