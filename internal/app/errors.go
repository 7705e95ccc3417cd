package app

import (
	"errors"
	"fmt"
)

// ErrNoCommits is returned when an analysis run fetched zero commits.
var ErrNoCommits = errors.New("no commits found")

// InvalidRequestError is special error type returned when any request params are invalid
type InvalidRequestError string

// Error implements error interface
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequestError checks if given error is caused by invalid request
func IsInvalidRequestError(err error) bool {
	var e InvalidRequestError
	return errors.As(err, &e)
}

// TooManyRequestsError is returned when outgoing calls are rate limited.
type TooManyRequestsError string

// Error implements error interface
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequestsError checks if given error is caused by rate limiting.
func IsTooManyRequestsError(err error) bool {
	var e TooManyRequestsError
	return errors.As(err, &e)
}

// AuthError is returned when the token was rejected by the api.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "authentication failed"
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthError checks if given error is caused by rejected token.
func IsAuthError(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

// ProjectListError is returned when group projects couldn't be listed.
type ProjectListError struct {
	Group string
	Err   error
}

func (e *ProjectListError) Error() string {
	return fmt.Sprintf("Error fetching projects: %v", e.Err)
}

func (e *ProjectListError) Unwrap() error {
	return e.Err
}

// IsProjectListError checks if given error is caused by failed project listing.
func IsProjectListError(err error) bool {
	var e *ProjectListError
	return errors.As(err, &e)
}

// ProjectCommitsError describes a failed commits fetch for a single project.
// It's not fatal for the analysis, it's reported as a warning.
type ProjectCommitsError struct {
	Project string
	Err     error
}

func (e ProjectCommitsError) Error() string {
	return fmt.Sprintf("Error fetching commits for project %s: %v", e.Project, e.Err)
}

func (e ProjectCommitsError) Unwrap() error {
	return e.Err
}
