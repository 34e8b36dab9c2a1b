package domain

import "errors"

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrMisconfigured       = errors.New("service misconfigured")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUpstreamFailure     = errors.New("upstream generation failure")
	ErrUnparseableResponse = errors.New("unparseable model response")
	ErrNoImageProduced     = errors.New("no image produced")
)
