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
	"fmt"
	"path/filepath"
)

// Genre discriminates a Mutant's kind. This package only ever produces
// FnValue mutants; the tag exists so that downstream consumers (and a
// future expression-level mutator) can distinguish them without a type
// switch on the zero value.
type Genre int

const (
	// FnValue is a function-body replacement: the whole body is
	// overwritten with a single expression of the declared return type.
	FnValue Genre = iota
)

func (g Genre) String() string {
	switch g {
	case FnValue:
		return "FnValue"
	default:
		return "unknown"
	}
}

// SourceFile is an immutable record of one parsed source file. It is
// shared by identity across every Mutant generated from it: the walker
// constructs exactly one SourceFile per visited path and never mutates it
// afterwards.
type SourceFile struct {
	// TreeRelativePath is the file's path relative to the project root,
	// using forward slashes regardless of host OS.
	TreeRelativePath string
	// PackageIdentifier is the build-tool adapter's notion of which
	// compilation unit this file belongs to (inherited by files
	// discovered via `mod` from their parent).
	PackageIdentifier string
	// Code is the file's full source text, as parsed.
	Code string
}

// NewSourceFile builds a SourceFile, normalising the path separator.
func NewSourceFile(treeRelativePath, packageIdentifier, code string) *SourceFile {
	return &SourceFile{
		TreeRelativePath:  filepath.ToSlash(treeRelativePath),
		PackageIdentifier: packageIdentifier,
		Code:              code,
	}
}

// Span identifies the byte region of a function body that a Mutant's
// ReplacementText overwrites: the inclusive region inside the outermost
// braces, including the braces themselves.
type Span struct {
	Start Position
	End   Position
}

// Position is a 1-based line/column pair, the unit cargo-mutants style
// tools report to users and test runners alike.
type Position struct {
	Line   int
	Column int
	Byte   int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Mutant is a single candidate mutation: a concrete replacement for one
// function's return value, expected to change observable behaviour.
//
// A Mutant is immutable once constructed; FunctionName is the dotted
// namespace path built by the Discovery Visitor's namespace stack.
type Mutant struct {
	SourceFile *SourceFile

	FunctionName    string
	ReturnTypeText  string
	ReplacementText string

	Span  Span
	Genre Genre
}

// Identifier renders the stable, human-readable string matched by the
// examine/exclude name filters:
//
//	<file_path>:<line>:<function_name>:<return_type> -> <replacement>
func (m Mutant) Identifier() string {
	return fmt.Sprintf("%s:%d:%s:%s -> %s",
		m.SourceFile.TreeRelativePath,
		m.Span.Start.Line,
		m.FunctionName,
		m.ReturnTypeText,
		m.ReplacementText,
	)
}

func (m Mutant) String() string {
	return m.Identifier()
}

// Discovered is the walker's output: every mutant found, and every file
// that was visited and survived the include/exclude filters. Files are
// listed even when they produced zero mutants.
type Discovered struct {
	Mutants []Mutant
	Files   []*SourceFile
}
