// Package document defines the document lifecycle state machine the core
// governs the subset of: approved, deconstructing, active, destroying,
// destroyed. Earlier intake/markup/review states belong to the markup
// engine collaborator and pass through this package only as the value the
// core finds a document in.
package document

import "time"

// Status is one value of the full intake-through-destruction state machine.
// The core only transitions among the five values listed in
// allowedTransitions (state.go).
type Status string

const (
	StatusIntake          Status = "intake"
	StatusIntakeFlagged   Status = "intake_flagged"
	StatusIntakeCleared   Status = "intake_cleared"
	StatusMarkup          Status = "markup"
	StatusMarkupSubmitted Status = "markup_submitted"
	StatusReview          Status = "review"
	StatusReviewEscalated Status = "review_escalated"
	StatusApproved        Status = "approved"
	StatusDeconstructing  Status = "deconstructing"
	StatusActive          Status = "active"
	StatusDestroying      Status = "destroying"
	StatusDestroyed       Status = "destroyed"
)

// Document is the core's view of one document row: identity, tenant scope,
// and lifecycle status. Content lives in BaseDocument and
// EncryptedContentSet rows referenced by DocumentID.
type Document struct {
	DocumentID     string
	OrganizationID string
	Status         Status
	LegalHold      bool
	RetentionUntil time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
