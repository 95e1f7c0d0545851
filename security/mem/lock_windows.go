//go:build windows

package mem

import "github.com/tessera-sh/tessera-core/tesseraerr"

// Lock is a no-op on Windows: mlock has no portable equivalent there.
func Lock() *tesseraerr.Error {
	return tesseraerr.ErrGeneralFailure
}
