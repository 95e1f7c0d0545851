package tesseraerr

// General

var ErrGeneralFailure = register("gen_general_failure", "general failure")
var ErrNilContext = register("gen_nil_context", "nil context")

// Precondition / lifecycle (§4.5, §4.9, §7)

var ErrPreconditionViolation = register("precondition_violation", "precondition violation")
var ErrEmptyAssignmentSet = register("empty_assignment_set", "assignment set is empty")
var ErrInvalidStateTransition = register("invalid_state_transition", "invalid document state transition")

// Authorization (§4.6, §4.7, §7)

var ErrAuthorizationDenied = register("authorization_denied", "authorization denied")

// Integrity (§4.2, §4.7, §7)

var ErrBaseDocumentTampered = register("base_document_tampered", "base document hash mismatch")
var ErrCiphertextIntegrityFailure = register("ciphertext_integrity_failure", "ciphertext hash mismatch")
var ErrAeadAuthenticationFailure = register("aead_authentication_failure", "AEAD authentication failed")
var ErrPlaintextIntegrityFailure = register("plaintext_integrity_failure", "plaintext hash mismatch")

// Crypto primitives (§4.1, §4.2, §7)

var ErrInvalidKeyLength = register("invalid_key_length", "invalid key length")
var ErrRngFailure = register("rng_failure", "random number generator failure")

// Shamir (§4.1, §7)

var ErrInsufficientShares = register("insufficient_shares", "insufficient shares to reconstruct secret")
var ErrDuplicateShareIndices = register("duplicate_share_indices", "duplicate share indices")
var ErrInconsistentShareLength = register("inconsistent_share_length", "inconsistent share length")
var ErrInvalidShamirParameters = register("invalid_shamir_parameters", "invalid Shamir M/N parameters")
var ErrEmptySecret = register("empty_secret", "secret must be non-empty")

// HSM (§4.3, §7)

var ErrHSMUnavailable = register("hsm_unavailable", "HSM unavailable")
var ErrHSMKeyNotFound = register("hsm_key_not_found", "HSM key handle not found")

// Anchor sink (§4.5, §6, §7)

var ErrAnchorUnreachable = register("anchor_unreachable", "anchor sink unreachable")

// Storage / persistence (§6)

var ErrEntityNotFound = register("entity_not_found", "entity not found")
var ErrEntityExists = register("entity_exists", "entity already exists")
var ErrDocumentLocked = register("document_locked", "document is locked by a concurrent operation")

// Data processing

var ErrDataInvalidInput = register("data_invalid_input", "invalid input")
var ErrDataMarshalFailure = register("data_marshal_failure", "failed to marshal data")
var ErrDataUnmarshalFailure = register("data_unmarshal_failure", "failed to unmarshal data")

// Destruction (§4.8)

var ErrLegalHold = register("legal_hold", "document is under legal hold")
var ErrRetentionNotMet = register("retention_not_met", "retention period has not elapsed")
var ErrDestructionNotAuthorized = register("destruction_not_authorized", "destruction requires explicit regulatory clearance")
