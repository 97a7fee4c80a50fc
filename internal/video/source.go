// Package video runs the three-stage frame pipeline that turns an input
// video into a gesture-annotated output muxed with the original audio.
package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrEndOfStream is returned by Source.ReadFrame when no more frames can
// be decoded. Decode failures are folded into it: the pipeline treats any
// read error as stream end rather than retrying.
var ErrEndOfStream = errors.New("end of stream")

// Source decodes frames from an input video sequentially.
type Source interface {
	// ReadFrame decodes the next frame. The caller owns the returned Mat.
	ReadFrame() (gocv.Mat, error)

	// FPS returns the container frame rate.
	FPS() float64

	// Size returns the frame width and height.
	Size() (int, int)

	// Close releases the decoder.
	Close() error
}

// fileSource decodes a video file through OpenCV.
type fileSource struct {
	cap    *gocv.VideoCapture
	fps    float64
	width  int
	height int
}

// OpenFileSource opens a video file for sequential decoding. defaultFPS is
// used when the container does not report a frame rate.
func OpenFileSource(path string, defaultFPS float64) (Source, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = defaultFPS
	}

	return &fileSource{
		cap:    cap,
		fps:    fps,
		width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

func (s *fileSource) ReadFrame() (gocv.Mat, error) {
	mat := gocv.NewMat()
	if ok := s.cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return gocv.Mat{}, ErrEndOfStream
	}
	return mat, nil
}

func (s *fileSource) FPS() float64 {
	return s.fps
}

func (s *fileSource) Size() (int, int) {
	return s.width, s.height
}

func (s *fileSource) Close() error {
	return s.cap.Close()
}
