package utils

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrReportNotFound       = errors.New("report not found")
	ErrManufacturerRequired = errors.New("manufacturer is required")
	ErrEmptyMessage         = errors.New("message must not be empty")
	ErrInvalidReason        = errors.New("reason must be one of the allowed values")
	ErrEmptyDetails         = errors.New("details must not be empty")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrNotThreadParty       = errors.New("not a participant of this feedback thread")
	ErrReportClosed         = errors.New("report already resolved or dismissed")

	ErrDatabaseError = errors.New("database error")
)
