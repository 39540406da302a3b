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

// visitor is the Discovery Visitor (C6): it walks one parsed file,
// carrying a namespace stack that is pushed on every item entry and
// popped on exit, delegating return-type synthesis to C3 and skip
// decisions to C4.
type visitor struct {
	file       *SourceFile
	source     []byte
	errorExprs []Seq

	namespace []string
	mutants   []Mutant
	modules   []string
}

func newVisitor(file *SourceFile, source []byte, errorExprs []Seq) *visitor {
	return &visitor{file: file, source: source, errorExprs: errorExprs}
}

// visit walks the file's root node and returns the mutants found and
// the external module names encountered (`mod name;` with no inline
// body), in source order.
func (v *visitor) visit(root *sitter.Node) ([]Mutant, []string) {
	v.walkItems(root, false)

	return v.mutants, v.modules
}

func (v *visitor) walkItems(n *sitter.Node, implContext bool) {
	for _, c := range syntax.NamedChildren(n) {
		v.visitItem(c, implContext)
	}
}

func (v *visitor) visitItem(n *sitter.Node, implContext bool) {
	switch n.Type() {
	case "function_item":
		v.visitFunction(n, implContext)
	case "impl_item":
		v.visitImpl(n)
	case "mod_item":
		v.visitMod(n)
	default:
		// Not a container called out by name in the visit rules, but it
		// may still nest a function, impl or module (a function-local
		// module, for instance); keep looking.
		v.walkItems(n, implContext)
	}
}

func (v *visitor) visitFunction(n *sitter.Node, isImplMethod bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := syntax.Content(nameNode, v.source)

	if (isImplMethod && name == "new") || skipFunction(n, v.source) {
		v.recurseSkippedFunction(n, name)

		return
	}

	v.namespace = append(v.namespace, name)
	v.emitFunctionMutants(n)

	if body := n.ChildByFieldName("body"); body != nil {
		v.walkItems(body, false)
	}

	v.namespace = v.namespace[:len(v.namespace)-1]
}

// recurseSkippedFunction implements the carve-out in the skip rule: a
// skipped function produces no mutants of its own and its body is not
// recursed into for nested functions, but a nested module or impl block
// still needs discovering, since losing it would silently drop a
// `mod` reference or a nested type's mutants from the walk entirely.
func (v *visitor) recurseSkippedFunction(n *sitter.Node, name string) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	v.namespace = append(v.namespace, name)
	v.walkContainersOnly(body)
	v.namespace = v.namespace[:len(v.namespace)-1]
}

// walkContainersOnly recurses looking for mod_item and impl_item nodes,
// visiting them normally, but never descends into a function_item: a
// function nested inside a skipped function is not itself visited.
func (v *visitor) walkContainersOnly(n *sitter.Node) {
	for _, c := range syntax.NamedChildren(n) {
		switch c.Type() {
		case "mod_item":
			v.visitMod(c)
		case "impl_item":
			v.visitImpl(c)
		case "function_item":
			continue
		default:
			v.walkContainersOnly(c)
		}
	}
}

func (v *visitor) emitFunctionMutants(n *sitter.Node) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}

	returnType := n.ChildByFieldName("return_type")
	returnTypeText := ""
	if returnType != nil {
		returnTypeText = PrettyPrint(leavesToSeq(returnType, v.source))
	}

	span := Span{
		Start: pointToPosition(body.StartPoint(), body.StartByte()),
		End:   pointToPosition(body.EndPoint(), body.EndByte()),
	}
	functionName := strings.Join(v.namespace, "::")

	for _, r := range replacements(returnType, v.source, v.errorExprs) {
		v.mutants = append(v.mutants, Mutant{
			SourceFile:      v.file,
			FunctionName:    functionName,
			ReturnTypeText:  returnTypeText,
			ReplacementText: PrettyPrint(r),
			Span:            span,
			Genre:           FnValue,
		})
	}
}

func (v *visitor) visitImpl(n *sitter.Node) {
	if skipItem(n, v.source) {
		return
	}
	if implTargetsTrait(n, v.source, "Default") {
		return
	}

	v.namespace = append(v.namespace, implNamespaceEntry(n, v.source))

	if body := n.ChildByFieldName("body"); body != nil {
		v.walkItems(body, true)
	}

	v.namespace = v.namespace[:len(v.namespace)-1]
}

func (v *visitor) visitMod(n *sitter.Node) {
	if skipItem(n, v.source) {
		return
	}

	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := unescapeRawIdent(syntax.Content(nameNode, v.source))

	body := n.ChildByFieldName("body")
	if body == nil {
		v.modules = append(v.modules, name)
	}

	v.namespace = append(v.namespace, name)
	if body != nil {
		v.walkItems(body, false)
	}
	v.namespace = v.namespace[:len(v.namespace)-1]
}

// implNamespaceEntry renders an impl block's namespace-stack entry: its
// self type alone, or `<impl TraitName for SelfType>` when the block
// implements a trait.
func implNamespaceEntry(n *sitter.Node, source []byte) string {
	selfType := n.ChildByFieldName("type")
	selfText := PrettyPrint(leavesToSeq(selfType, source))

	trait := n.ChildByFieldName("trait")
	if trait == nil {
		return selfText
	}

	traitName := lastSegment(syntax.Content(trait, source))

	return "<impl " + traitName + " for " + selfText + ">"
}

func unescapeRawIdent(s string) string {
	return strings.TrimPrefix(s, "r#")
}

func pointToPosition(p sitter.Point, byteOffset uint32) Position {
	return Position{
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
		Byte:   int(byteOffset),
	}
}
