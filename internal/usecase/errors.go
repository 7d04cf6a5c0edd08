package usecase

import "clinic-management-api/internal/authz"

// ForbiddenError carries the policy denial reason to the delivery layer.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

func forbidden(d authz.Decision) error {
	return &ForbiddenError{Reason: d.Reason}
}
