package resx

import "errors"

var (
	ErrMalformedResx  = errors.New("malformed RESX document")
	ErrFailedReadFile = errors.New("failed to read RESX file")
)
