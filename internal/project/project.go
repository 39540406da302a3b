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

// Package project locates a project root the way the target toolchain
// would (walking up for its manifest) and turns the manifest's declared
// build targets into the entry file set the discovery core starts its
// walk from. It is the one concrete implementation of discovery.Tool
// this module ships; everything else in internal/discovery is
// build-tool agnostic.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/mutadisco/mutadisco/internal/discovery"
)

// Manifest is the project.toml shape: one or more binary targets, plus
// an optional library target, each naming the source file that is its
// compilation entry point.
type Manifest struct {
	Bin []BinTarget `toml:"bin"`
	Lib *LibTarget  `toml:"lib"`
}

// BinTarget is one `[[bin]]` table: a named executable and the source
// file its compilation starts from.
type BinTarget struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// LibTarget is the `[lib]` table: the source file the crate's public
// surface starts from.
type LibTarget struct {
	Path string `toml:"path"`
}

const manifestName = "project.toml"

// conventionalBin and conventionalLib are the fallback entry points
// used when no manifest is present, or when it declares no targets of
// that kind: the layout a project gets for free by following the
// naming convention alone.
const (
	conventionalBin = "src/main.rs"
	conventionalLib = "src/lib.rs"
)

// Project represents the current execution context: the manifest (if
// any) and the root directory it was found in, or that discovery
// defaulted to when no manifest exists.
type Project struct {
	Root     string
	Manifest *Manifest
}

// Open locates the project root starting from path (a file or
// directory inside the tree) and loads its manifest, if one exists. A
// missing manifest is not an error: Open returns a Project with a nil
// Manifest, and TopSourceFiles falls back to the conventional layout.
func Open(path string) (*Project, error) {
	if path == "" {
		return nil, fmt.Errorf("path is not set")
	}

	root := findProjectRoot(path)
	if root == "" {
		root = path
	}

	manifest, err := readManifest(root)
	if err != nil {
		return nil, err
	}

	return &Project{Root: root, Manifest: manifest}, nil
}

func findProjectRoot(path string) string {
	// Inspired by how Go itself finds the module root: walk up looking
	// for the manifest file, stopping at the filesystem root.
	path = filepath.Clean(path)
	for {
		if fi, err := os.Stat(filepath.Join(path, manifestName)); err == nil && !fi.IsDir() {
			return path
		}
		d := filepath.Dir(path)
		if d == path {
			break
		}
		path = d
	}

	return ""
}

func readManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, manifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestName, err)
	}

	return &m, nil
}

// TopSourceFiles implements discovery.Tool: it reads the files named by
// the manifest's [[bin]]/[lib] targets, falling back to the
// conventional src/main.rs and src/lib.rs pair when no manifest was
// found or it names no targets of a given kind.
func (p *Project) TopSourceFiles(root string) ([]*discovery.SourceFile, error) {
	targets := p.entryTargets()

	var out []*discovery.SourceFile
	for _, target := range targets {
		full := filepath.Join(root, target.path)
		code, err := os.ReadFile(full)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return nil, err
		}

		out = append(out, discovery.NewSourceFile(target.path, target.packageIdentifier, string(code)))
	}

	return out, nil
}

type entryTarget struct {
	path              string
	packageIdentifier string
}

func (p *Project) entryTargets() []entryTarget {
	if p.Manifest == nil {
		return []entryTarget{
			{path: conventionalBin, packageIdentifier: "bin"},
			{path: conventionalLib, packageIdentifier: "lib"},
		}
	}

	var out []entryTarget
	if len(p.Manifest.Bin) == 0 {
		out = append(out, entryTarget{path: conventionalBin, packageIdentifier: "bin"})
	}
	for _, bin := range p.Manifest.Bin {
		out = append(out, entryTarget{path: bin.Path, packageIdentifier: bin.Name})
	}
	if p.Manifest.Lib != nil {
		out = append(out, entryTarget{path: p.Manifest.Lib.Path, packageIdentifier: "lib"})
	} else {
		out = append(out, entryTarget{path: conventionalLib, packageIdentifier: "lib"})
	}

	return out
}
