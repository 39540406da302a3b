/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package discovery

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the fatal halves of the walker's error taxonomy.
// ModuleNotFound is deliberately absent: it is not an error, only a
// warn-level log line, and never reaches a caller as a returned error.
type Kind int

const (
	KindConfigParse Kind = iota
	KindFileParse
	KindIO
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindConfigParse:
		return "config parse error"
	case KindFileParse:
		return "file parse error"
	case KindIO:
		return "io error"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown error"
	}
}

// Error is the walker's fatal error type. Every non-warning condition in
// §7 surfaces as one of these; callers discriminate with errors.As and
// Kind(), and unwrap with errors.Unwrap to reach the
// underlying filesystem or parse failure.
type Error struct {
	kind    Kind
	subject string
	cause   error
}

func newError(kind Kind, subject string, cause error) *Error {
	return &Error{kind: kind, subject: subject, cause: cause}
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.subject, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.kind, e.subject)
}

func (e *Error) Unwrap() error { return e.cause }

// errInterrupted is returned verbatim (fixed subject, no cause) whenever
// the walker observes a cancelled context between file iterations.
var errInterrupted = newError(KindInterrupted, "walk cancelled", nil)

// errUnparsable is the cause wrapped into a FileParseError when the
// grammar parser produces an ERROR node rather than failing outright.
var errUnparsable = errors.New("source file contains a syntax error")

func configParseError(text string, cause error) error {
	return newError(KindConfigParse, text, errors.WithStack(cause))
}

func configParseErrorFor(text string) error {
	return configParseError(text, errors.New("could not parse expression"))
}

func fileParseError(path string, cause error) error {
	return newError(KindFileParse, path, errors.WithStack(cause))
}

func ioError(path string, cause error) error {
	return newError(KindIO, path, errors.WithStack(cause))
}
