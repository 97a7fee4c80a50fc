package video

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/redjex/Framer-Bot/internal/config"
)

// ErrEncoderFailed marks a non-zero encoder exit, surfaced as job failure.
var ErrEncoderFailed = errors.New("encoder failed")

// FrameSink consumes the raw pixel stream produced by the pipeline.
type FrameSink interface {
	// Write appends raw frame bytes to the encoder input.
	Write(p []byte) error

	// Close finishes the stream and waits for the encoder to exit.
	Close() error
}

// FFmpegEncoder muxes the raw BGR24 stream on its stdin with the audio
// track of the original input file. Output is truncated to the shorter of
// the two streams.
type FFmpegEncoder struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// StartFFmpeg launches the encoder process for one job.
func StartFFmpeg(cfg config.Video, width, height int, fps float64, inputPath, outputPath string) (*FFmpegEncoder, error) {
	args := []string{
		"-y",
		"-f", "rawvideo", "-vcodec", "rawvideo",
		"-pix_fmt", "bgr24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-i", inputPath,
		"-map", "0:v:0", "-map", "1:a:0",
		"-vcodec", "libx264", "-preset", cfg.FFmpegPreset, "-crf", strconv.Itoa(cfg.FFmpegCRF),
		"-pix_fmt", "yuv420p", "-acodec", "copy", "-shortest",
		outputPath,
	}

	cmd := exec.Command(cfg.FFmpegPath, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create encoder stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}

	return &FFmpegEncoder{cmd: cmd, stdin: stdin}, nil
}

// Write implements FrameSink.
func (e *FFmpegEncoder) Write(p []byte) error {
	if _, err := e.stdin.Write(p); err != nil {
		return fmt.Errorf("write to encoder: %w", err)
	}
	return nil
}

// Close implements FrameSink: closes stdin so the encoder sees end of
// stream, then waits for it. A non-zero exit becomes ErrEncoderFailed.
func (e *FFmpegEncoder) Close() error {
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoderFailed, err)
	}
	return nil
}

// MockSink is a test FrameSink that records everything written to it.
type MockSink struct {
	Data     []byte
	Writes   int
	writeErr error
	closed   bool
}

// NewMockSink creates an empty MockSink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// SetWriteError makes subsequent Write calls fail.
func (m *MockSink) SetWriteError(err error) {
	m.writeErr = err
}

func (m *MockSink) Write(p []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.Data = append(m.Data, p...)
	m.Writes++
	return nil
}

func (m *MockSink) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSink) Closed() bool {
	return m.closed
}
