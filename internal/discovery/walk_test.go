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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/mutadisco/mutadisco/internal/configuration"
	"github.com/mutadisco/mutadisco/internal/exclusion"
)

type stubTool struct {
	entries []*SourceFile
}

func (s stubTool) TopSourceFiles(_ string) ([]*SourceFile, error) {
	return s.entries, nil
}

// writeArchive materializes a txtar source tree under root, one real file
// per archive entry, so a whole multi-file fixture fits in a single literal.
func writeArchive(t *testing.T, root, archive string) {
	t.Helper()

	a := txtar.Parse([]byte(archive))
	for _, f := range a.Files {
		full := filepath.Join(root, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, f.Data, 0o644))
	}
}

const moduleFixture = `
-- src/lib.rs --
mod foo;

fn top_level() -> u16 {
	0
}
-- src/foo.rs --
fn inner() -> bool {
	true
}
`

func fixtureSource(t *testing.T, archive, name string) string {
	t.Helper()

	a := txtar.Parse([]byte(archive))
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("no %q entry in archive", name)

	return ""
}

func TestWalkDiscoversModulesAndMutants(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, root, moduleFixture)

	libSrc := fixtureSource(t, moduleFixture, "src/lib.rs")
	entry := NewSourceFile("src/lib.rs", "fixture", libSrc)
	tool := stubTool{entries: []*SourceFile{entry}}

	got, err := Walk(context.Background(), tool, root, Options{})
	require.NoError(t, err)

	assert.Len(t, got.Files, 2)

	wantFunctions := map[string]bool{"top_level": false, "inner": false}
	for _, m := range got.Mutants {
		if _, ok := wantFunctions[m.FunctionName]; ok {
			wantFunctions[m.FunctionName] = true
		}
	}
	for fn, found := range wantFunctions {
		assert.Truef(t, found, "expected a mutant for function %q, found none among %v", fn, got.Mutants)
	}
}

func TestWalkExcludeGlobsetStillDiscoversModules(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, root, moduleFixture)

	libSrc := fixtureSource(t, moduleFixture, "src/lib.rs")
	entry := NewSourceFile("src/lib.rs", "fixture", libSrc)
	tool := stubTool{entries: []*SourceFile{entry}}

	got, err := Walk(context.Background(), tool, root, Options{
		ExcludeGlobset: stringGlobset(t, "src/lib.rs"),
	})
	require.NoError(t, err)

	for _, f := range got.Files {
		assert.NotEqual(t, "src/lib.rs", f.TreeRelativePath, "src/lib.rs should have been excluded from files")
	}

	var sawInner bool
	for _, m := range got.Mutants {
		if m.FunctionName == "inner" {
			sawInner = true
		}
		assert.NotEqual(t, "top_level", m.FunctionName, "excluded file should not contribute mutants")
	}
	assert.True(t, sawInner, "module discovered beneath an excluded file should still be visited")
}

func stringGlobset(t *testing.T, patterns ...string) exclusion.Globset {
	t.Helper()

	key := "tvsa.walk.globset." + t.Name()
	args := make([]any, len(patterns))
	for i, p := range patterns {
		args[i] = p
	}
	configuration.Set(key, args)

	set, err := exclusion.NewGlobset(key)
	if err != nil {
		t.Fatalf("NewGlobset: %v", err)
	}

	return set
}

const singleFileFixture = `
-- src/lib.rs --
fn f() -> u16 { 0 }
`

func TestWalkInterrupted(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, root, singleFileFixture)

	libSrc := fixtureSource(t, singleFileFixture, "src/lib.rs")
	entry := NewSourceFile("src/lib.rs", "fixture", libSrc)
	tool := stubTool{entries: []*SourceFile{entry}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, tool, root, Options{})
	require.Error(t, err)

	var de *Error
	require.True(t, asDiscoveryError(err, &de))
	assert.Equal(t, KindInterrupted, de.Kind())
}

func asDiscoveryError(err error, target **Error) bool {
	de, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = de

	return true
}
