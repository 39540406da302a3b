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

package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, relativePath, content string) {
	t.Helper()

	full := filepath.Join(root, relativePath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestOpenWithManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "project.toml", `
[[bin]]
name = "mutadisco"
path = "src/main.rs"

[lib]
path = "src/lib.rs"
`)
	writeFile(t, root, "src/main.rs", "fn main() {}")
	writeFile(t, root, "src/lib.rs", "pub fn lib_fn() -> u8 { 1 }")

	p, err := Open(filepath.Join(root, "src"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Root != root {
		t.Fatalf("Root = %q, want %q", p.Root, root)
	}
	if p.Manifest == nil {
		t.Fatal("expected a loaded manifest")
	}

	files, err := p.TopSourceFiles(p.Root)
	if err != nil {
		t.Fatalf("TopSourceFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 entry files, got %d: %v", len(files), files)
	}

	byPath := map[string]string{}
	for _, f := range files {
		byPath[f.TreeRelativePath] = f.PackageIdentifier
	}
	if byPath["src/main.rs"] != "mutadisco" {
		t.Errorf("src/main.rs package identifier = %q, want %q", byPath["src/main.rs"], "mutadisco")
	}
	if byPath["src/lib.rs"] != "lib" {
		t.Errorf("src/lib.rs package identifier = %q, want %q", byPath["src/lib.rs"], "lib")
	}
}

func TestOpenWithoutManifestFallsBackToConvention(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", "fn main() {}")

	p, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Manifest != nil {
		t.Fatal("expected no manifest to be found")
	}

	files, err := p.TopSourceFiles(p.Root)
	if err != nil {
		t.Fatalf("TopSourceFiles: %v", err)
	}
	if len(files) != 1 || files[0].TreeRelativePath != "src/main.rs" {
		t.Fatalf("expected just src/main.rs (src/lib.rs absent), got %v", files)
	}
}
