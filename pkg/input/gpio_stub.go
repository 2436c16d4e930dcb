//go:build !linux || !arm

package input

// stubReader stands in for the GPIO hardware on non-Pi builds so the
// service can run and be tested on a desktop. Both lines always read
// low.
type stubReader struct{}

// NewReader returns the stub reader; the pin and invert arguments are
// accepted for interface parity with the Pi build and ignored.
func NewReader(_, _ int, _ bool) (Reader, error) {
	return stubReader{}, nil
}

func (stubReader) Read() (bool, bool, error) { return false, false, nil }

func (stubReader) Close() error { return nil }
