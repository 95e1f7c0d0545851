// Package tesseraerr defines the structured error type and sentinel error
// values shared by every Tessera core package. Callers compare errors with
// errors.Is against the sentinels in sentinel.go; they never match on
// Error() strings.
package tesseraerr
