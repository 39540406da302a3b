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

import "github.com/mutadisco/mutadisco/internal/exclusion"

// Tool is the build-tool adapter the walker consumes. It enumerates a
// project's entry source files; the walker requires no other
// capability from it. internal/project implements this for the
// manifest-driven project layout; tests supply a stub.
type Tool interface {
	TopSourceFiles(root string) ([]*SourceFile, error)
}

// Options configures a Walk. Globsets and name rules are pre-compiled
// by the caller (the cmd layer, from configuration), since the core
// itself never reads configuration.
type Options struct {
	// ErrorValues are source-text expressions parsed once up front into
	// the Err(...) mutants of Result-shaped return types.
	ErrorValues []string

	ExamineGlobset exclusion.Globset
	ExcludeGlobset exclusion.Globset
	ExamineNames   exclusion.NameRules
	ExcludeNames   exclusion.NameRules
}
