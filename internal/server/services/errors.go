package services

// ValidationError reports structurally invalid or missing input. It is raised
// before any storage access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that the referenced record does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictReason tells apart the two invariants a write can break.
type ConflictReason string

const (
	ConflictDuplicate  ConflictReason = "duplicate"
	ConflictDependents ConflictReason = "dependents"
)

// ConflictError reports that a write would violate username uniqueness or
// the note ownership guard.
type ConflictError struct {
	Message string
	Reason  ConflictReason
}

func (e *ConflictError) Error() string { return e.Message }

func validation(msg string) error { return &ValidationError{Message: msg} }
func notFound(msg string) error   { return &NotFoundError{Message: msg} }

func duplicate(msg string) error {
	return &ConflictError{Message: msg, Reason: ConflictDuplicate}
}

func dependents(msg string) error {
	return &ConflictError{Message: msg, Reason: ConflictDependents}
}
