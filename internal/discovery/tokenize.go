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
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mutadisco/mutadisco/internal/discovery/syntax"
)

// parseErrorExpr parses one error-value expression, as configured via
// the error_values option, into a Tok sequence the synthesizer can
// splice into `Err(...)` mutants. It is parsed by wrapping it as a
// statement in a throwaway function body, which lets the shared grammar
// parser accept any valid expression without a separate expression-only
// entry point.
func parseErrorExpr(expr string) (Seq, error) {
	tree, err := syntax.Parse(context.Background(), []byte("fn __mutadisco_error_expr__() { "+expr+"; }"))
	if err != nil {
		return nil, err
	}
	if tree.HasError() {
		return nil, configParseErrorFor(expr)
	}

	stmt := findExpressionStatement(tree.Root())
	if stmt == nil {
		return nil, configParseErrorFor(expr)
	}

	return leavesToSeq(stmt, tree.Source), nil
}

func findExpressionStatement(n *sitter.Node) *sitter.Node {
	if n.Type() == "expression_statement" {
		children := syntax.NamedChildren(n)
		if len(children) == 0 {
			return nil
		}

		return children[0]
	}
	for _, c := range syntax.NamedChildren(n) {
		if found := findExpressionStatement(c); found != nil {
			return found
		}
	}

	return nil
}

// leavesToSeq turns a parsed expression node into a flat Tok sequence
// that PrettyPrint can render, by flattening its leaf tokens and
// reconstructing delimited groups from bracket-matched leaf text. This
// lets a single tokenizer serve both sides of C3: the dispatch table
// builds replacement Toks directly with group()/ident()/punct(), while
// a user-supplied error expression string is parsed once up front (the
// Tree Walker's job, per the error_values option) and folded into the
// same token model here, so the pretty-printer never needs to know
// which side produced a given Tok.
func leavesToSeq(n *sitter.Node, source []byte) Seq {
	if n == nil {
		return nil
	}

	leaves := syntax.Leaves(n)
	seq, _ := groupLeaves(leaves, source, 0, "")

	return seq
}

// groupLeaves consumes leaves starting at i, stopping when it sees the
// close-bracket text matching `closing` (the empty string at the top
// level, which only ends at end of input). It returns the built
// sequence and the index just past the consumed close bracket.
func groupLeaves(leaves []*sitter.Node, source []byte, i int, closing string) (Seq, int) {
	var out Seq
	for i < len(leaves) {
		leaf := leaves[i]
		text := syntax.Content(leaf, source)

		if closing != "" && text == closing {
			return out, i + 1
		}

		if d, ok := delimiterFor(text); ok {
			inner, next := groupLeaves(leaves, source, i+1, closeBracketText(d))
			out = append(out, group(d, inner))
			i = next

			continue
		}

		out = append(out, classifyLeaf(leaf, text))
		i++
	}

	return out, i
}

func delimiterFor(open string) (Delimiter, bool) {
	switch open {
	case "(":
		return Paren, true
	case "[":
		return Bracket, true
	case "{":
		return Brace, true
	default:
		return None, false
	}
}

func closeBracketText(d Delimiter) string {
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

func classifyLeaf(leaf *sitter.Node, text string) Tok {
	switch leaf.Type() {
	case "string_literal", "raw_string_literal", "char_literal", "integer_literal", "float_literal":
		return literal(text)
	case "identifier", "type_identifier", "field_identifier", "primitive_type":
		return ident(text)
	default:
		if len(text) > 0 && isIdentStart(text[0]) {
			return ident(text)
		}

		return punct(text)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
