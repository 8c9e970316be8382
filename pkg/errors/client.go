// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// NotFound indicates that a name or ID could not be resolved even after a
// forced registry refresh.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (n NotFound) Error() string {
	return n.error()
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// InvalidRequest indicates the caller asked for an unsatisfiable combination
// of options, such as bulk pagination together with a pinned custom sort.
type InvalidRequest struct {
	base
}

// Error returns the error message for InvalidRequest.
func (i InvalidRequest) Error() string {
	return i.error()
}

// NewInvalidRequest creates a new InvalidRequest error with the provided message.
func NewInvalidRequest(message string, err ...error) InvalidRequest {
	return InvalidRequest{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Conflict indicates the server rejected a mutation because it collides with
// existing state, such as creating a tag whose name is already taken.
type Conflict struct {
	base
}

// Error returns the error message for Conflict.
func (c Conflict) Error() string {
	return c.error()
}

// NewConflict creates a new Conflict error with the provided message.
func NewConflict(message string, err ...error) Conflict {
	return Conflict{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// RateLimit indicates the server throttled the request. The transport layer
// retries these; once surfaced here, the retry budget is exhausted.
type RateLimit struct {
	base
}

// Error returns the error message for RateLimit.
func (r RateLimit) Error() string {
	return r.error()
}

// NewRateLimit creates a new RateLimit error with the provided message.
func NewRateLimit(message string, err ...error) RateLimit {
	return RateLimit{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
