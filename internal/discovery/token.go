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

import "strings"

// Delimiter is the bracket kind wrapping a Group's contents.
type Delimiter int

const (
	// None wraps nothing: the group's tokens are emitted inline. Used to
	// splice a previously-tokenized fragment (e.g. a user-supplied error
	// expression) into a larger sequence without adding brackets.
	None Delimiter = iota
	Paren
	Bracket
	Brace
)

func (d Delimiter) open() string {
	switch d {
	case Paren:
		return "("
	case Bracket:
		return "["
	case Brace:
		return "{"
	default:
		return ""
	}
}

func (d Delimiter) close() string {
	switch d {
	case Paren:
		return ")"
	case Bracket:
		return "]"
	case Brace:
		return "}"
	default:
		return ""
	}
}

// TokenKind distinguishes the leaf tokens of a Tok sequence.
type TokenKind int

const (
	Ident TokenKind = iota
	Literal
	Punct
)

// Tok is one element of a synthesized token sequence: either a leaf
// (Ident, Literal or Punct) or a delimited Group of further Toks. This is
// the module's own token-tree representation, used both to synthesize
// replacement expressions (C3) and to render anything — identifiers,
// return types, error expressions — back to source text (C1).
type Tok struct {
	Kind TokenKind
	Text string

	// Delim and Inner are set when this Tok is a delimited group; Kind is
	// unused in that case.
	Delim Delimiter
	Inner []Tok
	group bool
}

func ident(s string) Tok   { return Tok{Kind: Ident, Text: s} }
func literal(s string) Tok { return Tok{Kind: Literal, Text: s} }
func punct(s string) Tok   { return Tok{Kind: Punct, Text: s} }

func group(d Delimiter, inner []Tok) Tok {
	return Tok{Delim: d, Inner: inner, group: true}
}

func (t Tok) isGroup() bool { return t.group }

// Seq is a flat sequence of Toks, typically the top-level contents of a
// None-delimited group; it is what replacements() in synth.go returns for
// every candidate replacement expression.
type Seq []Tok

// PrettyPrint renders a token sequence as idiomatic source text.
//
// Rules: after a punctuation token, insert a single space iff the running
// buffer ends with "->", or the punctuation is ',' or ';', and more tokens
// follow. After an ident or literal, insert a single space before the next
// token unless that token is a punctuation in {, ; < > : . ! } or is a
// delimited group. Delimited groups emit their open bracket, their
// contents rendered recursively, then their close bracket; a None group
// has no brackets at all. The output never ends with a trailing space.
func PrettyPrint(toks []Tok) string {
	var b strings.Builder
	writePretty(&b, toks)

	return b.String()
}

func writePretty(b *strings.Builder, toks []Tok) {
	for i, t := range toks {
		hasNext := i+1 < len(toks)
		if t.isGroup() {
			b.WriteString(t.Delim.open())
			writePretty(b, t.Inner)
			b.WriteString(t.Delim.close())

			continue
		}

		b.WriteString(t.Text)
		if !hasNext {
			continue
		}
		next := toks[i+1]

		switch t.Kind {
		case Punct:
			s := b.String()
			if strings.HasSuffix(s, "->") || t.Text == "," || t.Text == ";" {
				b.WriteByte(' ')
			}
		case Ident, Literal:
			if next.isGroup() {
				continue
			}
			if next.Kind == Punct && isTightPunct(next.Text) {
				continue
			}
			b.WriteByte(' ')
		}
	}
}

func isTightPunct(s string) bool {
	switch s {
	case ",", ";", "<", ">", ":", ".", "!", "::":
		return true
	default:
		return false
	}
}
