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
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mutadisco/mutadisco/internal/discovery/syntax"
)

// returnTypeNode parses a single function and returns its return-type
// node (nil for an implicit-unit signature) and the source bytes it was
// parsed from, the only two things replacements() needs.
func returnTypeNode(t *testing.T, returnTypeText string) (*sitter.Node, []byte) {
	t.Helper()

	var src string
	if returnTypeText == "" {
		src = "fn f() {}"
	} else {
		src = "fn f() -> " + returnTypeText + " {}"
	}

	tree, err := syntax.Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tree.HasError() {
		t.Fatalf("parse produced an error tree for %q", src)
	}

	fn := findFunctionItem(tree.Root())
	if fn == nil {
		t.Fatalf("no function_item found in %q", src)
	}

	return fn.ChildByFieldName("return_type"), tree.Source
}

func findFunctionItem(n *sitter.Node) *sitter.Node {
	if n.Type() == "function_item" {
		return n
	}
	for _, c := range syntax.NamedChildren(n) {
		if found := findFunctionItem(c); found != nil {
			return found
		}
	}

	return nil
}

func renderAll(seqs []Seq) []string {
	out := make([]string, len(seqs))
	for i, s := range seqs {
		out[i] = PrettyPrint(s)
	}

	return out
}

func tokenizeErrorExpr(t *testing.T, expr string) Seq {
	t.Helper()

	seq, err := parseErrorExpr(expr)
	if err != nil {
		t.Fatalf("parse error expr: %v", err)
	}

	return seq
}

func TestReplacementsDispatchTable(t *testing.T) {
	testCases := []struct {
		name       string
		returnType string
		errorExprs []string
		want       []string
	}{
		{name: "unsigned", returnType: "u16", want: []string{"0", "1"}},
		{name: "signed", returnType: "isize", want: []string{"0", "1", "-1"}},
		{name: "non-zero signed", returnType: "std::num::NonZeroIsize", want: []string{"1", "-1"}},
		{name: "non-zero unsigned", returnType: "NonZeroU32", want: []string{"1"}},
		{name: "implicit unit", returnType: "", want: []string{"()"}},
		{name: "explicit unit", returnType: "()", want: []string{"()"}},
		{name: "result unit", returnType: "Result<(), Error>", want: []string{"Ok(())"}},
		{name: "result no args", returnType: "Result<()>", want: []string{"Ok(())"}},
		{name: "option", returnType: "Option<usize>", want: []string{"None", "Some(0)", "Some(1)"}},
		{name: "box usize", returnType: "Box<usize>", want: []string{"Box::new(0)", "Box::new(1)"}},
		{name: "box other", returnType: "Box<MyObject>", want: []string{"Box::new(Default::default())"}},
		{name: "vec string", returnType: "std::vec::Vec<String>", want: []string{
			"vec![]", `vec![String::new()]`, `vec!["xyzzy".into()]`,
		}},
		{name: "float", returnType: "f32", want: []string{"0.0", "1.0", "-1.0"}},
		{name: "shared reference", returnType: "&bool", want: []string{"&true", "&false"}},
		{name: "array", returnType: "[u8; 256]", want: []string{"[0; 256]", "[1; 256]"}},
		{name: "arc string", returnType: "alloc::sync::Arc<String>", want: []string{
			"Arc::new(String::new())", `Arc::new("xyzzy".into())`,
		}},
		{name: "btreeset string", returnType: "std::collections::BTreeSet<String>", want: []string{
			"BTreeSet::new()", `BTreeSet::from_iter([String::new()])`, `BTreeSet::from_iter(["xyzzy".into()])`,
		}},
		{
			name: "nested result",
			returnType: "Result<Result<bool>>", errorExprs: []string{`anyhow!("mutated")`},
			want: []string{"Ok(Ok(true))", "Ok(Ok(false))", `Ok(Err(anyhow!("mutated")))`, `Err(anyhow!("mutated"))`},
		},
		{
			name: "cow str", returnType: "Cow<'static, str>",
			want: []string{
				"Cow::new()",
				`Cow::from_iter([""])`, `Cow::new("")`, `Cow::from("")`,
				`Cow::from_iter(["xyzzy"])`, `Cow::new("xyzzy")`, `Cow::from("xyzzy")`,
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			typeNode, source := returnTypeNode(t, tc.returnType)

			var errExprs []Seq
			for _, e := range tc.errorExprs {
				errExprs = append(errExprs, tokenizeErrorExpr(t, e))
			}

			got := renderAll(replacements(typeNode, source, errExprs))
			if len(got) != len(tc.want) {
				t.Fatalf("got %d replacements %v, want %d %v", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("replacement[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestReplacementsNeverType(t *testing.T) {
	typeNode, source := returnTypeNode(t, "!")
	got := replacements(typeNode, source, nil)
	if len(got) != 0 {
		t.Errorf("never type should synthesize zero replacements, got %v", renderAll(got))
	}
}
