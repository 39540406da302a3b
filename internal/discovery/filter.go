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

// skipFunction is the Attribute & Signature Filter (C4) applied to a
// function (top-level or impl-method): unsafe qualifier, a skip
// attribute, or an empty body all suppress the function's mutants
// without suppressing a descent into its nested modules and impl blocks;
// functions nested directly in its body are not visited. The impl-method
// "identifier is new" rule is layered on top by the visitor, which is
// the only place that knows whether a function is an impl-method.
func skipFunction(fn *sitter.Node, source []byte) bool {
	return isUnsafeFunction(fn, source) || hasSkipAttribute(fn, source) || isEmptyBody(fn, source)
}

// skipItem applies only the attribute-based half of C4, for items
// (impl blocks, modules) that have no signature or body of their own.
func skipItem(n *sitter.Node, source []byte) bool {
	return hasSkipAttribute(n, source)
}

// isUnsafeFunction scans the leaf tokens of the function_item's children
// up to its name, since tree-sitter exposes `unsafe` as a keyword token
// (possibly grouped with other modifiers such as `const`) rather than a
// boolean field.
func isUnsafeFunction(fn *sitter.Node, source []byte) bool {
	name := fn.ChildByFieldName("name")
	for i := 0; i < int(fn.ChildCount()); i++ {
		c := fn.Child(i)
		if name != nil && c == name {
			break
		}
		for _, leaf := range syntax.Leaves(c) {
			if syntax.Content(leaf, source) == "unsafe" {
				return true
			}
		}
	}

	return false
}

func isEmptyBody(fn *sitter.Node, source []byte) bool {
	body := fn.ChildByFieldName("body")
	if body == nil {
		// A function with no body at all (a trait method signature) has
		// nothing to mutate either.
		return true
	}

	return int(body.NamedChildCount()) == 0
}

// hasSkipAttribute scans the item's preceding attribute_item siblings
// (tree-sitter attaches attributes as separate sibling nodes, not as a
// field of the item they decorate) for any of the four skip forms.
func hasSkipAttribute(n *sitter.Node, source []byte) bool {
	for _, attr := range precedingAttributes(n) {
		if isSkipAttribute(attr, source) {
			return true
		}
	}

	return false
}

func precedingAttributes(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for sib := n.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
		switch sib.Type() {
		case "attribute_item":
			out = append([]*sitter.Node{sib}, out...)
		case "line_comment", "block_comment":
			continue
		default:
			return out
		}
	}

	return out
}

// isSkipAttribute recognises `#[cfg(test)]`, `#[test]`, `#[mutants::skip]`
// and `#[cfg_attr(…, mutants::skip)]`. Anything else — including
// malformed meta this parser still manages to produce a tree for — is
// "not recognised", per the spec's fail-open policy.
func isSkipAttribute(attrItem *sitter.Node, source []byte) bool {
	attr := firstNamedChildOfType(attrItem, "attribute")
	if attr == nil {
		return false
	}

	attrPath := attr.ChildByFieldName("path")
	if attrPath == nil {
		return false
	}
	pathText := syntax.Content(attrPath, source)

	switch pathText {
	case "test":
		return true
	case "mutants::skip":
		return true
	case "cfg":
		return attributeArgumentsContainIdent(attr, source, "test")
	case "cfg_attr":
		return attributeArgumentsContainPath(attr, source, "mutants", "skip")
	default:
		return false
	}
}

func firstNamedChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range syntax.NamedChildren(n) {
		if c.Type() == typ {
			return c
		}
	}

	return nil
}

// attributeArgumentsContainIdent reports whether any leaf token inside
// the attribute's arguments token tree is the identifier `want`, at any
// nesting depth — deliberately loose, so `cfg(any(test, other))` and
// `cfg(all(test, other))` are caught too.
func attributeArgumentsContainIdent(attr *sitter.Node, source []byte, want string) bool {
	args := attr.ChildByFieldName("arguments")
	if args == nil {
		return false
	}
	for _, leaf := range syntax.Leaves(args) {
		if syntax.Content(leaf, source) == want {
			return true
		}
	}

	return false
}

// attributeArgumentsContainPath reports whether the arguments token
// tree contains the consecutive leaf sequence `segments` joined by `::`,
// e.g. ("mutants", "skip") matches a `mutants::skip` appearing anywhere
// inside `cfg_attr(...)`'s argument list.
func attributeArgumentsContainPath(attr *sitter.Node, source []byte, segments ...string) bool {
	args := attr.ChildByFieldName("arguments")
	if args == nil {
		return false
	}

	var texts []string
	for _, leaf := range syntax.Leaves(args) {
		texts = append(texts, syntax.Content(leaf, source))
	}

	want := make([]string, 0, len(segments)*2-1)
	for i, s := range segments {
		if i > 0 {
			want = append(want, "::")
		}
		want = append(want, s)
	}

	for i := 0; i+len(want) <= len(texts); i++ {
		if matchesAt(texts, i, want) {
			return true
		}
	}

	return false
}

func matchesAt(texts []string, i int, want []string) bool {
	for j, w := range want {
		if texts[i+j] != w {
			return false
		}
	}

	return true
}

// implTargetsTrait reports whether an impl block (`impl Trait for Type`)
// names a trait whose last path segment is traitName.
func implTargetsTrait(implNode *sitter.Node, source []byte, traitName string) bool {
	trait := implNode.ChildByFieldName("trait")
	if trait == nil {
		return false
	}

	return lastSegment(syntax.Content(trait, source)) == traitName
}
