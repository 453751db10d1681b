package testutil

import (
	"bytes"

	"github.com/rs/zerolog"
)

// NewBufferLogger returns a JSON logger backed by a buffer and the buffer for assertions.
func NewBufferLogger() (*zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	return &logger, &buf
}
