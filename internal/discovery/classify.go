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
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mutadisco/mutadisco/internal/discovery/syntax"
)

// typeShape is the C2 Type-Classifier's output: which branch of the
// replacement synthesizer a return-type node falls into, independent of
// however many nested levels of generics, references or arrays it took
// to get there.
type typeShape int

const (
	shapeOther typeShape = iota
	shapePrimitive
	shapeNonZeroInteger
	shapeResult
	shapeOption
	shapeVec
	shapeKnownSingleArgContainer
	shapeKnownCollection
	shapeHTTPResponse
	shapeGenericOneArg
	shapeReference
	shapeArray
	shapeUnitTuple
	shapeNever
)

var primitiveNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true, "bool": true, "char": true, "str": true,
}

var nonZeroNames = map[string]bool{
	"NonZeroI8": true, "NonZeroI16": true, "NonZeroI32": true, "NonZeroI64": true, "NonZeroI128": true, "NonZeroIsize": true,
	"NonZeroU8": true, "NonZeroU16": true, "NonZeroU32": true, "NonZeroU64": true, "NonZeroU128": true, "NonZeroUsize": true,
}

// knownSingleArgContainers are generic wrapper types, besides Option and
// Result, whose single type argument is what the synthesizer should
// recurse on to build a same-shape replacement (Box::new(R(T)), etc).
// Cow is deliberately absent: it falls through to the generic-one-arg
// fallback, since its lifetime argument is ignored by the arg-count check.
var knownSingleArgContainers = map[string]bool{
	"Box": true, "Cell": true, "RefCell": true, "Arc": true, "Rc": true, "Mutex": true,
}

// knownCollections get an empty-collection replacement regardless of
// their element type. Vec is classified separately (shapeVec) even
// though its replacements share the same shape, since the dispatch
// table gives it its own row (vec![] / vec![r]).
var knownCollections = map[string]bool{
	"BinaryHeap": true, "BTreeSet": true, "HashSet": true, "LinkedList": true, "VecDeque": true,
}

// classified pairs a shape with the data each synthesizer branch needs:
// the node's own text, and its relevant type-argument subtrees.
type classified struct {
	shape typeShape
	node  *sitter.Node
	text  string
	// baseName is the bare container name for a generic_type node (e.g.
	// "Box" for "Box<usize>", "Arc" for "alloc::sync::Arc<String>"),
	// stripped of both its module-path qualifier and its `<...>` type
	// argument list. Empty for non-generic shapes, which have no
	// container name to speak of.
	baseName string
	// args holds the type-argument nodes of a generic type, in source
	// order (e.g. the two arguments of Result<T, E>).
	args []*sitter.Node
}

// classify inspects a return-type node and determines which replacement
// strategy applies. It never errors: an unrecognised shape degrades to
// shapeOther, whose replacement is a type-directed catch-all.
func classify(n *sitter.Node, source []byte) classified {
	text := syntax.Content(n, source)
	switch n.Type() {
	case "unit_type":
		return classified{shape: shapeUnitTuple, node: n, text: text}
	case "never_type":
		return classified{shape: shapeNever, node: n, text: text}
	case "reference_type":
		return classified{shape: shapeReference, node: n, text: text, args: referentArgs(n)}
	case "array_type":
		return classified{shape: shapeArray, node: n, text: text}
	case "primitive_type":
		if primitiveNames[text] {
			return classified{shape: shapePrimitive, node: n, text: text}
		}

		return classified{shape: shapeOther, node: n, text: text}
	case "type_identifier", "scoped_type_identifier":
		name := lastSegment(text)
		switch {
		case nonZeroNames[name]:
			return classified{shape: shapeNonZeroInteger, node: n, text: text}
		case name == "String" || name == "str":
			return classified{shape: shapePrimitive, node: n, text: text}
		case name == "Result":
			// Bare `Result` (a type alias, or the error-carrying half
			// omitted) still matches; there is simply no type argument
			// to recurse on.
			return classified{shape: shapeResult, node: n, text: text}
		case name == "HttpResponse":
			return classified{shape: shapeHTTPResponse, node: n, text: text}
		default:
			return classified{shape: shapeOther, node: n, text: text}
		}
	case "generic_type":
		return classifyGeneric(n, source, text)
	case "tuple_type":
		if int(n.NamedChildCount()) == 0 {
			return classified{shape: shapeUnitTuple, node: n, text: text}
		}

		return classified{shape: shapeOther, node: n, text: text}
	default:
		return classified{shape: shapeOther, node: n, text: text}
	}
}

// classifyGeneric handles `generic_type` nodes: a base path (first named
// child) followed by a `type_arguments` node holding the comma-separated
// argument list.
func classifyGeneric(n *sitter.Node, source []byte, text string) classified {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return classified{shape: shapeOther, node: n, text: text}
	}

	base := children[0]
	baseName := lastSegment(syntax.Content(base, source))

	var argNodes *sitter.Node
	for _, c := range children[1:] {
		if c.Type() == "type_arguments" {
			argNodes = c

			break
		}
	}
	args := typeArguments(argNodes)

	switch {
	case baseName == "Result":
		return classified{shape: shapeResult, node: n, text: text, baseName: baseName, args: args}
	case baseName == "Option" && len(args) == 1:
		return classified{shape: shapeOption, node: n, text: text, baseName: baseName, args: args}
	case baseName == "Vec" && len(args) == 1:
		return classified{shape: shapeVec, node: n, text: text, baseName: baseName, args: args}
	case knownCollections[baseName]:
		return classified{shape: shapeKnownCollection, node: n, text: text, baseName: baseName, args: args}
	case knownSingleArgContainers[baseName] && len(args) == 1:
		return classified{shape: shapeKnownSingleArgContainer, node: n, text: text, baseName: baseName, args: args}
	case baseName == "Response" || baseName == "HttpResponse":
		return classified{shape: shapeHTTPResponse, node: n, text: text, baseName: baseName, args: args}
	case len(args) == 1:
		return classified{shape: shapeGenericOneArg, node: n, text: text, baseName: baseName, args: args}
	default:
		return classified{shape: shapeOther, node: n, text: text, baseName: baseName, args: args}
	}
}

// typeArguments extracts the named type nodes from a `type_arguments`
// node, skipping lifetimes and const-generic arguments, neither of which
// a same-shape replacement needs.
func typeArguments(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	var out []*sitter.Node
	for _, c := range syntax.NamedChildren(n) {
		switch c.Type() {
		case "lifetime", "block_comment", "line_comment":
			continue
		default:
			out = append(out, c)
		}
	}

	return out
}

// referentArgs returns the single pointee type of a `reference_type`
// node, skipping the optional lifetime and `mut` specifier before it.
func referentArgs(n *sitter.Node) []*sitter.Node {
	children := syntax.NamedChildren(n)
	for _, c := range children {
		if c.Type() == "lifetime" || c.Type() == "mutable_specifier" {
			continue
		}

		return []*sitter.Node{c}
	}

	return nil
}

// lastSegment returns the final `::`-separated segment of a path, the
// unit the classifier matches container/collection names against
// regardless of how the type was imported or qualified.
func lastSegment(path string) string {
	idx := -1
	for i := 0; i+1 < len(path); i++ {
		if path[i] == ':' && path[i+1] == ':' {
			idx = i + 2
			i++
		}
	}
	if idx == -1 {
		return path
	}

	return path[idx:]
}
