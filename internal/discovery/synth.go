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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mutadisco/mutadisco/internal/discovery/syntax"
)

// replacements is the Replacement Synthesizer (C3): given a return-type
// node (nil for an implicit unit return) and the pre-parsed error
// expressions, it produces the ordered list of candidate replacement
// token sequences described by the dispatch table. Duplicates are not
// removed; callers that need uniqueness apply it themselves.
func replacements(typeNode *sitter.Node, source []byte, errorExprs []Seq) []Seq {
	if typeNode == nil {
		return []Seq{unit()}
	}

	return synth(classify(typeNode, source), source, errorExprs)
}

func synth(c classified, source []byte, errorExprs []Seq) []Seq {
	switch c.shape {
	case shapePrimitive:
		return synthPrimitive(c.text)
	case shapeNonZeroInteger:
		return synthNonZero(c.text)
	case shapeUnitTuple:
		return []Seq{unit()}
	case shapeNever:
		return nil
	case shapeArray:
		return synthArray(c.node, source, errorExprs)
	case shapeReference:
		return synthReference(c, source, errorExprs)
	case shapeResult:
		return synthResult(c, source, errorExprs)
	case shapeOption:
		return synthOption(c, source, errorExprs)
	case shapeVec:
		return synthVec(c, source, errorExprs)
	case shapeKnownSingleArgContainer:
		return synthKnownSingleArgContainer(c, source, errorExprs)
	case shapeKnownCollection:
		return synthKnownCollection(c, source, errorExprs)
	case shapeHTTPResponse:
		return []Seq{{
			ident("HttpResponse"), punct("::"), ident("Ok"), call(nil),
			punct("."), ident("finish"), call(nil),
		}}
	case shapeGenericOneArg:
		return synthGenericOneArg(c, source, errorExprs)
	default:
		return []Seq{defaultDefault()}
	}
}

// call wraps args (the concatenation of zero or more token sequences) in
// a parenthesised group, i.e. the `(...)` of a function call. Passing no
// args renders `()`.
func call(args ...Seq) Tok {
	var inner Seq
	for _, a := range args {
		inner = append(inner, a...)
	}

	return group(Paren, inner)
}

// bracketed wraps a token sequence in a bracketed group, i.e. the `[...]`
// of an array or slice literal.
func bracketed(inner Seq) Tok {
	return group(Bracket, inner)
}

func unit() Tok { return call() }

func path(segments ...string) Seq {
	var out Seq
	for i, s := range segments {
		if i > 0 {
			out = append(out, punct("::"))
		}
		out = append(out, ident(s))
	}

	return out
}

func defaultDefault() Seq {
	return append(path("Default", "default"), call())
}

func synthPrimitive(text string) []Seq {
	switch text {
	case "bool":
		return []Seq{{ident("true")}, {ident("false")}}
	case "String":
		return []Seq{
			append(path("String", "new"), call()),
			{literal(`"xyzzy"`), punct("."), ident("into"), call()},
		}
	case "str":
		return []Seq{{literal(`""`)}, {literal(`"xyzzy"`)}}
	case "f32", "f64":
		return []Seq{{literal("0.0")}, {literal("1.0")}, {punct("-"), literal("1.0")}}
	default:
		if isUnsignedPrimitive(text) {
			return []Seq{{literal("0")}, {literal("1")}}
		}
		if isSignedPrimitive(text) {
			return []Seq{{literal("0")}, {literal("1")}, {punct("-"), literal("1")}}
		}

		return []Seq{defaultDefault()}
	}
}

func isUnsignedPrimitive(s string) bool {
	switch s {
	case "u8", "u16", "u32", "u64", "u128", "usize":
		return true
	default:
		return false
	}
}

func isSignedPrimitive(s string) bool {
	switch s {
	case "i8", "i16", "i32", "i64", "i128", "isize":
		return true
	default:
		return false
	}
}

func synthNonZero(text string) []Seq {
	name := lastSegment(text)
	if strings.HasPrefix(name, "NonZeroU") {
		return []Seq{{literal("1")}}
	}

	return []Seq{{literal("1")}, {punct("-"), literal("1")}}
}

func synthArray(n *sitter.Node, source []byte, errorExprs []Seq) []Seq {
	children := syntax.NamedChildren(n)
	if len(children) < 2 {
		return []Seq{defaultDefault()}
	}
	elemType, length := children[0], children[1]
	lengthText := syntax.Content(length, source)

	var out []Seq
	for _, r := range synth(classify(elemType, source), source, errorExprs) {
		inner := append(append(Seq{}, r...), punct(";"), ident(lengthText))
		out = append(out, Seq{bracketed(inner)})
	}

	return out
}

func synthReference(c classified, source []byte, errorExprs []Seq) []Seq {
	if len(c.args) != 1 {
		return []Seq{defaultDefault()}
	}
	referent := classify(c.args[0], source)

	// &str is spec'd as the bare-string-literal replacements, not as a
	// reference wrapping a str replacement.
	if referent.shape == shapePrimitive && referent.text == "str" {
		return synthPrimitive("str")
	}

	isMut := referenceIsMut(c.node, source)

	var out []Seq
	for _, r := range synth(referent, source, errorExprs) {
		if isMut {
			out = append(out, append(path("Box", "leak"),
				call(append(path("Box", "new"), call(r)))))

			continue
		}
		out = append(out, Seq{punct("&"), group(None, r)})
	}

	return out
}

// referenceIsMut reports whether a `reference_type` node is `&mut T`:
// tree-sitter has no boolean field for it, so the node's direct children
// are checked for the `mut` specifier that follows `&` or a lifetime.
func referenceIsMut(n *sitter.Node, source []byte) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "mutable_specifier" || syntax.Content(c, source) == "mut" {
			return true
		}
	}

	return false
}

func synthResult(c classified, source []byte, errorExprs []Seq) []Seq {
	var out []Seq
	if len(c.args) >= 1 {
		for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
			out = append(out, append(Seq{ident("Ok")}, call(r)))
		}
	} else {
		out = append(out, append(Seq{ident("Ok")}, call(defaultDefault())))
	}
	for _, e := range errorExprs {
		out = append(out, append(Seq{ident("Err")}, call(e)))
	}

	return out
}

func synthOption(c classified, source []byte, errorExprs []Seq) []Seq {
	out := []Seq{{ident("None")}}
	if len(c.args) == 1 {
		for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
			out = append(out, append(Seq{ident("Some")}, call(r)))
		}
	}

	return out
}

func synthVec(c classified, source []byte, errorExprs []Seq) []Seq {
	out := []Seq{{ident("vec"), punct("!"), bracketed(nil)}}
	if len(c.args) == 1 {
		for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
			out = append(out, Seq{ident("vec"), punct("!"), bracketed(r)})
		}
	}

	return out
}

func synthKnownSingleArgContainer(c classified, source []byte, errorExprs []Seq) []Seq {
	name := c.baseName
	if len(c.args) != 1 {
		return []Seq{defaultDefault()}
	}

	var out []Seq
	for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
		out = append(out, append(path(name, "new"), call(r)))
	}

	return out
}

func synthKnownCollection(c classified, source []byte, errorExprs []Seq) []Seq {
	name := c.baseName
	out := []Seq{append(path(name, "new"), call())}
	if len(c.args) == 1 {
		for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
			out = append(out, append(path(name, "from_iter"), call(Seq{bracketed(r)})))
		}
	}

	return out
}

func synthGenericOneArg(c classified, source []byte, errorExprs []Seq) []Seq {
	name := c.baseName
	out := []Seq{append(path(name, "new"), call())}
	if len(c.args) != 1 {
		return out
	}
	for _, r := range synth(classify(c.args[0], source), source, errorExprs) {
		out = append(out,
			append(path(name, "from_iter"), call(Seq{bracketed(r)})),
			append(path(name, "new"), call(r)),
			append(path(name, "from"), call(r)),
		)
	}

	return out
}
