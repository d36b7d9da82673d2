package service

import "errors"

var (
	// ErrCompanyNotFound is returned when a refresh references an unknown company.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrPersistenceFailure is returned when the batch of data points could not be stored.
	ErrPersistenceFailure = errors.New("persistence failure")
	// ErrRefreshThrottled is returned when a refresh for the company is running or cooling down.
	ErrRefreshThrottled = errors.New("refresh throttled")
)
