package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
	ErrConfiguration      = errors.New("platform configuration missing")
	ErrProviderSubmission = errors.New("provider submission failed")
	ErrProviderProtocol   = errors.New("provider response malformed")
	ErrProviderFailed     = errors.New("provider reported job failure")
	ErrTimedOut           = errors.New("generation timed out")
	ErrSettlement         = errors.New("settlement failed")
)

// InsufficientCreditError is returned by the pre-flight balance check. It is
// advisory only: no funds are reserved and no job is created.
type InsufficientCreditError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient credit: required %d, available %d", e.Required, e.Available)
}

// IsInsufficientCredit unwraps err into an InsufficientCreditError when possible.
func IsInsufficientCredit(err error) (*InsufficientCreditError, bool) {
	var ice *InsufficientCreditError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}
