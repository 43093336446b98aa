// Package dataserver is the HTTP data service: it scans bucket directories of
// strategy CSV files, computes per-strategy metrics and aggregate statistics,
// and serves the snapshot, sync-status, and time-series endpoints consumed by
// the dashboard.
package dataserver

import "fmt"

// ErrorCode classifies service failures for HTTP mapping.
type ErrorCode string

const (
	CodeValidation  ErrorCode = "validation"
	CodeNotFound    ErrorCode = "not_found"
	CodeLoadFailure ErrorCode = "load_failure"
)

// CodedError carries a machine-readable code alongside the message. The API
// layer maps codes onto HTTP statuses.
type CodedError struct {
	Code    ErrorCode
	Message string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
