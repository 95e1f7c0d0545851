//go:build !windows

package mem

import (
	"syscall"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// Lock attempts to lock all current and future process memory to prevent
// swapping to disk, so key material never touches a swap device. Uses
// syscall.Mlockall with MCL_CURRENT | MCL_FUTURE to cover both existing and
// future pages.
//
// Requires CAP_IPC_LOCK or a sufficient RLIMIT_MEMLOCK on Linux.
func Lock() *tesseraerr.Error {
	if err := syscall.Mlockall(
		syscall.MCL_CURRENT | syscall.MCL_FUTURE); err != nil {
		return tesseraerr.ErrGeneralFailure.Wrap(err)
	}
	return nil
}
