package service

import "errors"

var (
	ErrFailedValidation  = errors.New("failed validation")
	ErrIntentUnresolved  = errors.New("intent unresolved")
	ErrOracleUnavailable = errors.New("oracle unavailable")
)
