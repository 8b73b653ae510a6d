package logs

import (
	"io"
	"os"
)

// Writer receives terminal log output. Assembly goes to stdout, so logs default to stderr.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
