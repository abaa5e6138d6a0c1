package httputil

import "errors"

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequestBody = "invalid_request_body"
	CodeInvalidInput       = "invalid_input"
	CodeUnauthenticated    = "unauthenticated"
	CodeInvalidToken       = "invalid_token"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeTooManyRequests    = "too_many_requests"
	CodeInternalError      = "internal_error"
	CodeUnavailable        = "unavailable"
)

// MaxBodyBytes caps decoded request bodies
const MaxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")
