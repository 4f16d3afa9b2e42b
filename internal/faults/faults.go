package faults

import (
	"errors"
	"fmt"
)

// ClientInput marks a request the caller got wrong: malformed identifier,
// bad stage reference, empty question. The message is safe to return as-is.
type ClientInput struct {
	Msg string
}

func (e *ClientInput) Error() string { return e.Msg }

func ClientInputf(format string, args ...any) error {
	return &ClientInput{Msg: fmt.Sprintf(format, args...)}
}

func IsClientInput(err error) bool {
	var ci *ClientInput
	return errors.As(err, &ci)
}

// Upstream wraps a failed call to an external service (stage gateway, vector
// DB, embedding, completion). The caller gets the operation name, the raw
// error stays in the logs.
type Upstream struct {
	Op  string
	Err error
}

func (e *Upstream) Error() string { return e.Op + " failed" }
func (e *Upstream) Unwrap() error { return e.Err }

func Upstreamf(op string, err error) error {
	return &Upstream{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var up *Upstream
	return errors.As(err, &up)
}

// ErrNoReadableText is returned when a document produced zero chunks.
var ErrNoReadableText = errors.New("no readable text could be extracted from the document")
