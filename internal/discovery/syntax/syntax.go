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

// Package syntax is the discovery core's only dependency on a concrete
// grammar: it wraps github.com/smacker/go-tree-sitter, parses one file's
// bytes into a concrete syntax tree, and exposes a small node-navigation
// surface that the rest of discovery consults (classification, visiting,
// leaf-token extraction for the pretty-printer). Knowledge of the target
// language's grammar node names is localized here, the same way knowledge
// of the `syn` crate's API was localized to visit.rs in the tool this
// package's behaviour is modeled on.
package syntax

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Tree is a parsed file: the concrete syntax tree plus the source bytes
// every Node.Content call needs to resolve text.
type Tree struct {
	root   *sitter.Node
	Source []byte
}

// Parse parses source text into a Tree. It never returns an error for
// malformed input on its own; tree-sitter produces a best-effort tree with
// ERROR nodes instead, which HasError surfaces for callers that want to
// treat unparsable files as a FileParseError.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}

	return &Tree{root: tree.RootNode(), Source: source}, nil
}

// Root returns the file's top-level node (a `source_file`).
func (t *Tree) Root() *sitter.Node { return t.root }

// HasError reports whether the parse produced any ERROR node, which
// tree-sitter inserts in place of the largest salvageable subtree around a
// syntax error instead of failing outright.
func (t *Tree) HasError() bool {
	return containsError(t.root)
}

func containsError(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	if n.IsError() || n.HasError() {
		return true
	}

	return false
}

// Content returns a node's source text.
func Content(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}

	return n.Content(source)
}

// NamedChildren returns a node's named children (skipping anonymous
// tokens like punctuation and keywords, which tree-sitter still exposes
// but which are almost never useful for structural navigation).
func NamedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, n.NamedChild(i))
	}

	return out
}

// Leaves collects every leaf node (no children) under n, in source order.
// String and char literals count as single leaves, so their quotes and
// contents stay together as one token.
// It is how a node's text is turned into a flat token stream for
// PrettyPrint: the concrete syntax tree's structure only matters for
// bracket matching, which is reconstructed from the leaves' own text by
// the caller rather than from the tree shape, so that the same tokenizer
// works for both well-formed type expressions and the raw fragments used
// to embed user-supplied error expressions.
func Leaves(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if int(n.ChildCount()) == 0 || isAtomicLiteral(n.Type()) {
			out = append(out, n)

			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(n)

	return out
}

func isAtomicLiteral(typ string) bool {
	switch typ {
	case "string_literal", "raw_string_literal", "char_literal":
		return true
	default:
		return false
	}
}
