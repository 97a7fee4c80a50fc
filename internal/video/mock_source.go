package video

import "gocv.io/x/gocv"

// MockSource is a test Source that synthesizes a fixed number of frames.
// The first byte of every frame is stamped with the frame's sequence
// number so tests can verify ordering end to end.
type MockSource struct {
	width     int
	height    int
	fps       float64
	total     int
	produced  int
	readErrAt int // inject a decode failure at this frame index; <0 disables
}

// NewMockSource creates a MockSource producing total frames of the given
// geometry.
func NewMockSource(width, height, total int, fps float64) *MockSource {
	return &MockSource{
		width:     width,
		height:    height,
		fps:       fps,
		total:     total,
		readErrAt: -1,
	}
}

// FailAt makes ReadFrame return an error at frame index i.
func (m *MockSource) FailAt(i int) {
	m.readErrAt = i
}

func (m *MockSource) ReadFrame() (gocv.Mat, error) {
	if m.produced >= m.total || m.produced == m.readErrAt {
		return gocv.Mat{}, ErrEndOfStream
	}

	mat := gocv.NewMatWithSize(m.height, m.width, gocv.MatTypeCV8UC3)
	mat.SetUCharAt(0, 0, uint8(m.produced%256))
	m.produced++
	return mat, nil
}

func (m *MockSource) FPS() float64 {
	return m.fps
}

func (m *MockSource) Size() (int, int) {
	return m.width, m.height
}

func (m *MockSource) Close() error {
	return nil
}
