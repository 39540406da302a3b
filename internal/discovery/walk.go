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
	"path"

	"github.com/mutadisco/mutadisco/internal/discovery/syntax"
	"github.com/mutadisco/mutadisco/internal/exclusion"
	"github.com/mutadisco/mutadisco/internal/log"
)

// Walk is the Tree Walker (C7): it drives a breadth-first queue over
// files starting from tool's entry set, running the Discovery Visitor
// on each and following its module references via the Module-File
// Resolver, until the queue drains or ctx is cancelled.
//
// Module discovery happens before the include/exclude filters are
// applied (I5): a file filtered out of the result still contributes any
// `mod` references it declares.
func Walk(ctx context.Context, tool Tool, root string, opts Options) (*Discovered, error) {
	errorExprs, err := parseErrorExprs(opts.ErrorValues)
	if err != nil {
		return nil, err
	}

	entries, err := tool.TopSourceFiles(root)
	if err != nil {
		return nil, ioError(root, err)
	}

	fs := osModuleFile{root: root}

	queue := make([]*SourceFile, len(entries))
	copy(queue, entries)

	var result Discovered
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errInterrupted
		}

		file := queue[0]
		queue = queue[1:]

		source := []byte(file.Code)
		tree, err := syntax.Parse(ctx, source)
		if err != nil {
			return nil, fileParseError(file.TreeRelativePath, err)
		}
		if tree.HasError() {
			return nil, fileParseError(file.TreeRelativePath, errUnparsable)
		}

		v := newVisitor(file, tree.Source, errorExprs)
		mutants, moduleNames := v.visit(tree.Root())

		for _, name := range moduleNames {
			childPath, ok := resolveModule(fs, file.TreeRelativePath, name)
			if !ok {
				continue
			}
			code, err := os.ReadFile(path.Join(root, childPath))
			if err != nil {
				return nil, ioError(childPath, err)
			}
			queue = append(queue, NewSourceFile(childPath, file.PackageIdentifier, string(code)))
		}

		if opts.ExcludeGlobset.Matches(file.TreeRelativePath) {
			continue
		}
		if len(opts.ExamineGlobset) > 0 && !opts.ExamineGlobset.Matches(file.TreeRelativePath) {
			continue
		}

		mutants = filterByName(mutants, opts.ExamineNames, opts.ExcludeNames)

		result.Mutants = append(result.Mutants, mutants...)
		result.Files = append(result.Files, file)
	}

	return &result, nil
}

func filterByName(mutants []Mutant, examine, exclude exclusion.NameRules) []Mutant {
	if len(examine) == 0 && len(exclude) == 0 {
		return mutants
	}

	var out []Mutant
	for _, m := range mutants {
		id := m.Identifier()
		if len(examine) > 0 && !examine.Matches(id) {
			continue
		}
		if exclude.Matches(id) {
			continue
		}
		out = append(out, m)
	}

	return out
}

func parseErrorExprs(exprs []string) ([]Seq, error) {
	var out []Seq
	for _, e := range exprs {
		seq, err := parseErrorExpr(e)
		if err != nil {
			log.Errorf("could not parse error expression %q", e)

			return nil, err
		}
		out = append(out, seq)
	}

	return out, nil
}
