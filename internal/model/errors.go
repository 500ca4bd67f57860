package model

import "errors"

var (
	// Credential related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Brand related errors
	ErrNoBrands             = errors.New("no brands configured")
	ErrBrandNotFound        = errors.New("brand not found")
	ErrGraphQLNotConfigured = errors.New("GraphQL URL is not configured for this brand")

	// Audit related errors
	ErrAuditDisabled = errors.New("audit log is not enabled")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
