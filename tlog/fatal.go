package tlog

import (
	"os"
	"strings"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

// stackTracesOnFatalEnvVar, when set to "true", makes FatalErr panic instead
// of exiting, so a development run surfaces a stack trace.
const stackTracesOnFatalEnvVar = "TESSERA_STACK_TRACES_ON_FATAL"

func stackTracesOnFatal() bool {
	s := strings.ToLower(strings.TrimSpace(os.Getenv(stackTracesOnFatalEnvVar)))
	return s == "true"
}

// FatalErr logs err at Error level with its code and wrapped cause, then
// terminates the process. Reserved for startup/bootstrap failures where
// continuing would leave the process in an unrecoverable state; request-scoped
// failures must be returned to the caller instead.
func FatalErr(msg string, err *tesseraerr.Error) {
	Log().Error(msg, "code", err.Code, "error", err.Error())
	if stackTracesOnFatal() {
		panic(err.Error())
	}
	os.Exit(1)
}

// WarnErr logs err at Warn level with its code and wrapped cause and
// returns, for degraded-but-continuable paths (anchor sink unreachable,
// a single content set failing integrity under a tolerant tier).
func WarnErr(msg string, err *tesseraerr.Error) {
	Log().Warn(msg, "code", err.Code, "error", err.Error())
}

// InfoState logs a single structured line for a document state transition.
func InfoState(documentID, from, to string) {
	Log().Info("document state transition", "document_id", documentID, "from", from, "to", to)
}
