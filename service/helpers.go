package service

import (
	"fmt"

	"github.com/steven0413/BiblioteEmail/internal/validator"
)

// background launches a background goroutine and recovers from panics
// inside the goroutine. It accepts an arbitrary function as a parameter
// and executes the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}

// validationMessage flattens a validation error map into a single
// user-facing message, reporting fields in a stable order.
func validationMessage(v *validator.Validator) string {
	for _, field := range []string{"from", "subject", "body"} {
		if msg, ok := v.Errors[field]; ok {
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	return ErrFailedValidation.Error()
}
