package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ExitReason records why a capture session ended.
type ExitReason string

const (
	// ExitQuitKey means the user pressed the quit key.
	ExitQuitKey ExitReason = "quit_key"
	// ExitCameraClosed means the camera stopped reporting itself open.
	ExitCameraClosed ExitReason = "camera_closed"
	// ExitInterrupted means the process was asked to stop.
	ExitInterrupted ExitReason = "interrupted"
	// ExitError means a capture or detection error ended the session.
	ExitError ExitReason = "error"
)

// Counts holds per-session frame tallies.
type Counts struct {
	Frames          int `json:"frames"`
	PoseFrames      int `json:"pose_frames"`
	FaceFrames      int `json:"face_frames"`
	LeftHandFrames  int `json:"left_hand_frames"`
	RightHandFrames int `json:"right_hand_frames"`
}

// Session represents a capture session stored in the database.
type Session struct {
	ID         string
	CameraID   int
	StartedAt  time.Time
	EndedAt    *time.Time
	Counts     Counts
	ExitReason ExitReason
	Error      string
}

// SessionRepository provides operations for capture sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new, unfinished session. StartedAt is set to now if zero.
func (r *SessionRepository) Create(s *Session) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, camera_id, started_at) VALUES (?, ?, ?)`,
		s.ID, s.CameraID, s.StartedAt,
	)
	return err
}

// Finish records the end of a session with its final counts.
func (r *SessionRepository) Finish(id string, counts Counts, reason ExitReason, errMsg string) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ?, pose_frames = ?, face_frames = ?,
		 left_hand_frames = ?, right_hand_frames = ?, exit_reason = ?, error = ?
		 WHERE id = ?`,
		time.Now(), counts.Frames, counts.PoseFrames, counts.FaceFrames,
		counts.LeftHandFrames, counts.RightHandFrames, string(reason), errMsg, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

const sessionColumns = `id, camera_id, started_at, ended_at, frames, pose_frames, face_frames,
	left_hand_frames, right_hand_frames, exit_reason, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	s := &Session{}
	var endedAt sql.NullTime
	var reason string

	err := row.Scan(&s.ID, &s.CameraID, &s.StartedAt, &endedAt,
		&s.Counts.Frames, &s.Counts.PoseFrames, &s.Counts.FaceFrames,
		&s.Counts.LeftHandFrames, &s.Counts.RightHandFrames, &reason, &s.Error)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		t := endedAt.Time
		s.EndedAt = &t
	}
	s.ExitReason = ExitReason(reason)
	return s, nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes a session by its ID.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
