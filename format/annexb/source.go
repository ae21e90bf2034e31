package annexb

import (
	"errors"
	"io"
	"syscall"
)

const maxEmptyReads = 100

// readOnce reads into p. Interrupted calls are retried and empty reads are tolerated up to
// maxEmptyReads, so the result is either n > 0 with a nil error or n == 0 with an error.
func readOnce(r io.Reader, p []byte) (int, error) {
	for empty := 0; empty < maxEmptyReads; {
		n, err := r.Read(p)
		if n > 0 {
			return n, nil
		}
		switch {
		case err == nil:
			empty++
		case errors.Is(err, syscall.EINTR):
		default:
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}
