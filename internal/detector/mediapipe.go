package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"gocv.io/x/gocv"
)

// MediaPipeDetector implements Detector using a Python MediaPipe subprocess.
// Frames are sent as length-prefixed JPEG over stdin; the service replies
// with one JSON line per frame.
//
// The process lives for the duration of one video job: it is started by
// NewMediaPipeDetector and shut down by Close. Detect is not safe for
// concurrent use; the processor stage is its only caller.
type MediaPipeDetector struct {
	config Config
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// NewMediaPipeDetector starts the MediaPipe service and sends it the
// detection thresholds. The FRAMER_MEDIAPIPE_SCRIPT environment variable
// overrides the service script location.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	scriptPath := findServiceScript()
	if scriptPath == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}

	python := findPython()
	cmd := exec.Command(python, scriptPath)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mediapipe service: %w", err)
	}

	d := &MediaPipeDetector{
		config: config,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}

	if err := d.writeConfig(); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

// writeConfig sends the thresholds as a single JSON line before any frame.
func (d *MediaPipeDetector) writeConfig() error {
	header, err := json.Marshal(map[string]any{
		"max_hands":               d.config.MaxHands,
		"min_detection_confidence": d.config.MinConfidence,
		"min_tracking_confidence":  d.config.MinTrackingConf,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := d.stdin.Write(append(header, '\n')); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Detect sends one frame to the service and parses the landmark reply.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// 4-byte big-endian length prefix, then the JPEG payload.
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := d.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := d.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []jsonHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	result := make([]HandLandmarks, len(response.Hands))
	for i, h := range response.Hands {
		result[i] = h.toHandLandmarks()
	}
	return result, nil
}

// Close stops the service process. Closing stdin signals the service to
// exit; Wait reaps it.
func (d *MediaPipeDetector) Close() error {
	if d.cmd == nil {
		return nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}
	err := d.cmd.Wait()
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil
	return err
}

func findServiceScript() string {
	if p := os.Getenv("FRAMER_MEDIAPIPE_SCRIPT"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	execDir := ""
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/mediapipe_service.py",
		"../scripts/mediapipe_service.py",
		filepath.Join(execDir, "scripts/mediapipe_service.py"),
		filepath.Join(os.Getenv("HOME"), ".framerbot/scripts/mediapipe_service.py"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// findPython prefers a project virtualenv interpreter over the system one.
func findPython() string {
	execDir := ""
	if execPath, err := os.Executable(); err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".framerbot/venv/bin/python"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return "python3"
}

// jsonHand is the per-hand JSON structure produced by the Python service.
type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h jsonHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		lm.Points[i] = Point3D{X: h.Points[i].X, Y: h.Points[i].Y, Z: h.Points[i].Z}
	}
	return lm
}
