package contracts

import "errors"

var (
	// ErrStreamClosed is returned by InputStream.Pending after Close or device loss.
	ErrStreamClosed = errors.New("midi input stream closed")
	// ErrUnsupportedPlatform is returned by capabilities that have no implementation on this OS.
	ErrUnsupportedPlatform = errors.New("not supported on this platform")
)
