// Package validate provides format checks for the identifiers the core
// accepts from its collaborators, grounded on the teacher's ValidateName
// shape: a length bound plus a character-class regex, returning a
// structured error rather than panicking or silently truncating.
package validate

import (
	"regexp"

	"github.com/tessera-sh/tessera-core/tesseraerr"
)

const maxIdentifierLength = 250

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// ContentSetIdentifier validates the format of a content-set identifier
// such as "CS-PUBLIC" or "CS-CONFIDENTIAL".
func ContentSetIdentifier(id string) *tesseraerr.Error {
	return identifier(id)
}

// DocumentID validates the format of a document identifier.
func DocumentID(id string) *tesseraerr.Error {
	return identifier(id)
}

func identifier(id string) *tesseraerr.Error {
	if len(id) == 0 || len(id) > maxIdentifierLength {
		return tesseraerr.ErrDataInvalidInput
	}
	if !identifierPattern.MatchString(id) {
		return tesseraerr.ErrDataInvalidInput
	}
	return nil
}

// MarkerWidth validates that width falls within §4.7's [3,10] range.
func MarkerWidth(width int) *tesseraerr.Error {
	if width < 3 || width > 10 {
		return tesseraerr.ErrDataInvalidInput
	}
	return nil
}

// ShamirParameters validates that (m, n) satisfy §4.1's constraints:
// m >= 2, n >= m, n <= 254.
func ShamirParameters(m, n int) *tesseraerr.Error {
	if m < 2 || n < m || n > 254 {
		return tesseraerr.ErrInvalidShamirParameters
	}
	return nil
}
