package locfile

import "errors"

var ErrUnknownNewlineKind = errors.New("unknown newline normalization mode")
