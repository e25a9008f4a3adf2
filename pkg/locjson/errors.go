package locjson

import "errors"

var (
	ErrFailedToParseJSON = errors.New("failed to parse JSON loc file")
	ErrInvalidLocFile    = errors.New("loc file does not match schema")
	ErrInvalidSchema     = errors.New("invalid loc file schema")
)
