package tesseraerr

import "sync"

var (
	registry   = make(map[ErrorCode]*Error)
	registryMu sync.RWMutex
)

// register creates a new Error, adds it to the package registry, and
// returns it. Called only from sentinel.go var declarations.
func register(code, msg string) *Error {
	err := New(ErrorCode(code), msg, nil)
	registryMu.Lock()
	registry[err.Code] = err
	registryMu.Unlock()
	return err
}

// FromCode maps an ErrorCode back to its sentinel Error, falling back to
// ErrGeneralFailure for unrecognized codes.
func FromCode(code ErrorCode) *Error {
	registryMu.RLock()
	err, ok := registry[code]
	registryMu.RUnlock()
	if ok {
		return err
	}
	return ErrGeneralFailure
}
