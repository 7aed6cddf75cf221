package mrr

import (
	"errors"
	"fmt"
)

var (
	ErrIO                = errors.New("mrr: could not read file")
	ErrSignatureMismatch = errors.New("mrr: format signature not found")
	ErrUnexpectedEOF     = errors.New("mrr: unexpected end of data")
	ErrLengthOverflow    = errors.New("mrr: sequence length overflows")
	ErrInvalidUTF8       = errors.New("mrr: part name is not valid UTF-8")
	ErrUnknownJointType  = errors.New("mrr: unknown joint type")
)

// IOError reports a failure to read an input file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("mrr: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// DecodeError locates a structural failure: the grammar field being read
// and the buffer offset where that read started.
type DecodeError struct {
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", e.Err, e.Field, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UserMessage maps an import failure to the short text shown to a user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIO):
		return "could not open file"
	case errors.Is(err, ErrSignatureMismatch):
		return "not a valid assembly file"
	case errors.Is(err, ErrUnexpectedEOF):
		return "corrupt or incomplete file"
	case errors.Is(err, ErrLengthOverflow), errors.Is(err, ErrInvalidUTF8):
		return "corrupt file"
	case errors.Is(err, ErrUnknownJointType):
		return "unsupported or corrupt file"
	}
	return "could not import file"
}

// Kind returns a stable short name for the error kind, for manifests and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrSignatureMismatch):
		return "signature"
	case errors.Is(err, ErrUnexpectedEOF):
		return "eof"
	case errors.Is(err, ErrLengthOverflow):
		return "length_overflow"
	case errors.Is(err, ErrInvalidUTF8):
		return "utf8"
	case errors.Is(err, ErrUnknownJointType):
		return "joint_type"
	}
	return "other"
}
