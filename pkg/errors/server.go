// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// ApiConnection represents a transport-level failure reaching the catalog:
// network errors, timeouts, and 5xx responses that survived retries.
type ApiConnection struct {
	base
}

// Error returns the error message for ApiConnection.
func (a ApiConnection) Error() string {
	return a.error()
}

// NewApiConnection creates a new ApiConnection error with the provided message.
func NewApiConnection(message string, err ...error) ApiConnection {
	return ApiConnection{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Unexpected represents an unexpected error in the application.
type Unexpected struct {
	base
}

// Error returns the error message for Unexpected.
func (u Unexpected) Error() string {
	return u.error()
}

// NewUnexpected creates a new Unexpected error with the provided message.
func NewUnexpected(message string, err ...error) Unexpected {
	return Unexpected{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
