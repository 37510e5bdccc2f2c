package danger

import (
	"errors"
	"fmt"

	"mvdan.cc/sh/v3/syntax"
)

// ErrInputTooLong indicates the command line exceeds the analyzer's input limit.
var ErrInputTooLong = errors.New("command line too long")

// ErrNestingTooDeep indicates the syntax tree nests deeper than the analyzer's limit.
var ErrNestingTooDeep = errors.New("command line nested too deeply")

// ParseError reports a command line that is not valid shell syntax.
// No atoms are produced for a line that fails to parse.
type ParseError struct {
	Line   uint
	Column uint
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse command line: %s", e.Msg)
	}
	return fmt.Sprintf("parse command line: %d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError converts a parser failure into a ParseError.
func newParseError(err error) *ParseError {
	var perr syntax.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Pos.Line(), Column: perr.Pos.Col(), Msg: perr.Text, Err: err}
	}
	var lerr syntax.LangError
	if errors.As(err, &lerr) {
		return &ParseError{
			Line:   lerr.Pos.Line(),
			Column: lerr.Pos.Col(),
			Msg:    fmt.Sprintf("%s is not supported", lerr.Feature),
			Err:    err,
		}
	}
	return &ParseError{Msg: err.Error(), Err: err}
}
