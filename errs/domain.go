package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain validation and state-machine errors. These are recoverable at the
// API boundary: validation errors go back to the submitter as field/form
// messages, ownership failures surface as not-found so resource existence
// never leaks.
var (
	ErrMinPositions         = errors.New("a project must have at least one position")
	ErrDuplicateSkill       = errors.New("skills must be unique")
	ErrDuplicateApplication = errors.New("application already submitted")
	ErrInvalidStatus        = errors.New("invalid application status")
)

// NewMinPositionsError reports an attempt to save a project with no
// surviving positions.
func NewMinPositionsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrMinPositions,
		Field:      "positions",
	}
}

// NewDuplicateSkillError reports duplicate skill names in one submission.
func NewDuplicateSkillError(name string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrDuplicateSkill,
		Details:    fmt.Sprintf("Skill '%s' is listed more than once", name),
		Field:      "skills",
	}
}

// NewDuplicateApplicationError reports a second application for the same
// (applicant, position) pair. Rejected applications count: rejection is
// terminal for the pair.
func NewDuplicateApplicationError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateApplication,
	}
}

// NewInvalidStatusError reports a transition the application state machine
// does not allow.
func NewInvalidStatusError(details string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidStatus,
		Details:    details,
		Field:      "status",
	}
}

// NewOwnershipError hides a resource the actor does not own behind a 404.
func NewOwnershipError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func IsMinPositionsError(err error) bool {
	return errors.Is(err, ErrMinPositions)
}

func IsDuplicateSkillError(err error) bool {
	return errors.Is(err, ErrDuplicateSkill)
}

func IsDuplicateApplicationError(err error) bool {
	return errors.Is(err, ErrDuplicateApplication)
}

func IsInvalidStatusError(err error) bool {
	return errors.Is(err, ErrInvalidStatus)
}
