package packrle

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type basePackRLEError string

const rootError = basePackRLEError("")

// ErrSourceRead is returned when the byte source fails to produce a byte. It
// aborts the compression call it occurred in.
var ErrSourceRead = rootError.WithMessage("Source read failed")

// ErrMalformedBlock is returned when a block declares a count or length of 0 or
// greater than [MaxBlockSize].
var ErrMalformedBlock = rootError.WithMessage("Malformed block")

// ErrUnknownBlockTag is returned by the wire codec for a tag byte other than
// the run and literal tags.
var ErrUnknownBlockTag = rootError.WithMessage("Unknown block tag")

var ErrSinkWrite = rootError.WithMessage("Sink write failed")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")

func (e basePackRLEError) Error() string {
	return string(e)
}

func (e basePackRLEError) RootCause() CodecError {
	return e
}

func (e basePackRLEError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e basePackRLEError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
