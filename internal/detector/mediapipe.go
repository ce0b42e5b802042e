package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
)

const serviceScript = "holistic_service.py"

// MediaPipeDetector implements Detector using a Python MediaPipe Holistic subprocess.
//
// Each request is a 4-byte big-endian payload length followed by the payload:
// 4-byte big-endian width, 4-byte big-endian height, then width*height*3
// packed RGB bytes. The service answers with one JSON line per frame.
type MediaPipeDetector struct {
	config     Config
	scriptPath string
	newCmd     func(name string, args ...string) *exec.Cmd
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	mu         sync.Mutex
	started    bool
}

// NewMediaPipeDetector creates a new MediaPipe detector.
// The Python process is started lazily on first detection.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	scriptPath := findServiceScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("%s not found", serviceScript)
	}

	return &MediaPipeDetector{
		config:     config,
		scriptPath: scriptPath,
		newCmd:     exec.Command,
	}, nil
}

// Detect sends a frame to the service and returns the decoded landmarks.
func (d *MediaPipeDetector) Detect(frame Frame) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return Result{}, err
	}

	if err := writeFrame(d.stdin, frame); err != nil {
		return Result{}, err
	}

	return readResult(d.stdout)
}

// Close shuts down the Python process.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = d.newCmd(pythonPath, append([]string{d.scriptPath}, serviceArgs(d.config)...)...)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Model loading messages and tracebacks go straight to our stderr
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start holistic service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true

	return nil
}

// serviceArgs returns the command-line flags passed to the service script.
func serviceArgs(c Config) []string {
	return []string{
		"--min-detection-confidence", strconv.FormatFloat(c.MinDetectionConfidence, 'f', -1, 64),
		"--min-tracking-confidence", strconv.FormatFloat(c.MinTrackingConfidence, 'f', -1, 64),
		"--model-complexity", strconv.Itoa(c.ModelComplexity),
	}
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

// writeFrame writes one length-prefixed RGB frame.
func writeFrame(w io.Writer, frame Frame) error {
	if frame.Empty() {
		return errors.New("write frame: frame is empty")
	}

	pixels := frame.Bytes()
	header := make([]byte, 12)
	binary.BigEndian.PutUint32(header[0:4], uint32(8+len(pixels)))
	binary.BigEndian.PutUint32(header[4:8], uint32(frame.Width()))
	binary.BigEndian.PutUint32(header[8:12], uint32(frame.Height()))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(pixels); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return nil
}

// readResult reads and decodes one JSON response line.
func readResult(r *bufio.Reader) (Result, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	var response jsonResponse
	if err := json.Unmarshal(line, &response); err != nil {
		return Result{}, fmt.Errorf("parse response: %w", err)
	}
	if response.Error != "" {
		return Result{}, fmt.Errorf("holistic service: %s", response.Error)
	}

	return response.toResult()
}

func findServiceScript() string {
	// Get executable directory
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		filepath.Join("scripts", serviceScript),
		filepath.Join("..", "scripts", serviceScript),
		filepath.Join("..", "..", "scripts", serviceScript),
		filepath.Join(execDir, "scripts", serviceScript),
		filepath.Join(os.Getenv("HOME"), ".abhinaya", "scripts", serviceScript),
	}

	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment.
// It checks for venv/bin/python relative to the project directory.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".abhinaya/venv/bin/python"),
	}

	return firstExisting(candidates)
}

func firstExisting(candidates []string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonResponse is the JSON structure emitted by the Python service.
// A null or missing group means the group was not detected.
type jsonResponse struct {
	Pose      []PoseLandmark `json:"pose"`
	Face      []Landmark     `json:"face"`
	LeftHand  []Landmark     `json:"left_hand"`
	RightHand []Landmark     `json:"right_hand"`
	Error     string         `json:"error,omitempty"`
}

func (r jsonResponse) toResult() (Result, error) {
	var result Result

	if r.Pose != nil {
		var pose PoseLandmarks
		if len(r.Pose) != len(pose) {
			return Result{}, fmt.Errorf("pose: got %d landmarks, want %d", len(r.Pose), len(pose))
		}
		copy(pose[:], r.Pose)
		result.Pose = Found(pose)
	}

	if r.Face != nil {
		var face FaceLandmarks
		if len(r.Face) != len(face) {
			return Result{}, fmt.Errorf("face: got %d landmarks, want %d", len(r.Face), len(face))
		}
		copy(face[:], r.Face)
		result.Face = Found(face)
	}

	hands := []struct {
		name   string
		points []Landmark
		dst    *Group[HandLandmarks]
	}{
		{"left hand", r.LeftHand, &result.LeftHand},
		{"right hand", r.RightHand, &result.RightHand},
	}
	for _, h := range hands {
		if h.points == nil {
			continue
		}
		var hand HandLandmarks
		if len(h.points) != len(hand) {
			return Result{}, fmt.Errorf("%s: got %d landmarks, want %d", h.name, len(h.points), len(hand))
		}
		copy(hand[:], h.points)
		*h.dst = Found(hand)
	}

	return result, nil
}
