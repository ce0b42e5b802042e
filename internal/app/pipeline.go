package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/display"
	"github.com/ayusman/abhinaya/internal/keypoints"
	"github.com/ayusman/abhinaya/internal/store"
)

// Run opens the camera and processes frames until the quit key is pressed,
// the camera stops reporting itself open, ctx is cancelled, or a read or
// detection error occurs. Errors are not retried.
//
// The camera, display and detector are released on every return path, and
// release errors are combined into the returned error.
func (a *App) Run(ctx context.Context) (summary Summary, err error) {
	if err := a.camera.Open(); err != nil {
		return summary, multierr.Append(fmt.Errorf("open camera: %w", err), a.release())
	}

	summary.SessionID = uuid.NewString()
	a.beginSession(summary.SessionID)
	a.logger.Infow("capture session started", "session", summary.SessionID, "camera", a.config.CameraID)

	defer func() {
		err = multierr.Append(err, a.release())
		a.finishSession(summary, err)
	}()

	summary.ExitReason, err = a.loop(ctx, &summary)
	return summary, err
}

func (a *App) loop(ctx context.Context, summary *Summary) (store.ExitReason, error) {
	for a.camera.IsOpen() {
		select {
		case <-ctx.Done():
			return store.ExitInterrupted, nil
		default:
		}

		quit, err := a.step(summary)
		if err != nil {
			return store.ExitError, err
		}
		if quit {
			return store.ExitQuitKey, nil
		}
	}
	return store.ExitCameraClosed, nil
}

// step processes one frame and reports whether the quit key was pressed.
func (a *App) step(summary *Summary) (bool, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return false, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	image, res, err := detector.Process(a.detector, *frame)
	defer image.Close()
	if err != nil {
		return false, err
	}

	a.renderer.Draw(&image, res)
	vec := keypoints.Extract(res)

	a.display.Show(image)
	quit := display.IsQuit(a.display.WaitKey(KeyPollDelay))

	if a.config.Publisher != nil {
		a.config.Publisher.Publish(image, res, &vec)
	}

	summary.record(res, vec)
	return quit, nil
}

func (a *App) release() error {
	return multierr.Combine(
		a.camera.Close(),
		a.display.Close(),
		a.detector.Close(),
	)
}

func (a *App) beginSession(id string) {
	if a.config.Store == nil {
		return
	}
	err := a.config.Store.Sessions().Create(&store.Session{ID: id, CameraID: a.config.CameraID})
	if err != nil {
		a.logger.Warnw("failed to record session start", "session", id, "error", err)
	}
}

func (a *App) finishSession(summary Summary, runErr error) {
	c := summary.Counts
	a.logger.Infow("capture session finished",
		"session", summary.SessionID,
		"reason", summary.ExitReason,
		"frames", c.Frames,
		"pose_frames", c.PoseFrames,
		"face_frames", c.FaceFrames,
		"left_hand_frames", c.LeftHandFrames,
		"right_hand_frames", c.RightHandFrames,
	)

	if a.config.Store == nil {
		return
	}

	var errMsg string
	if runErr != nil {
		errMsg = runErr.Error()
	}
	if err := a.config.Store.Sessions().Finish(summary.SessionID, c, summary.ExitReason, errMsg); err != nil {
		a.logger.Warnw("failed to record session end", "session", summary.SessionID, "error", err)
	}
}
