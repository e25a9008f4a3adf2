package locparser

import "errors"

var (
	ErrParsingCancelled = errors.New("loc file parsing cancelled")
	ErrFailedReadFile   = errors.New("failed to read loc file")
	ErrEmptyFilePath    = errors.New("loc file path is empty")
)
