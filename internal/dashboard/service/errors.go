package service

import "errors"

// ErrNoCompanyForUser is returned when the authenticated user owns no company.
var ErrNoCompanyForUser = errors.New("no company associated with user")
