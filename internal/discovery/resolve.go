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
	"os"
	"path"
	"strings"

	"github.com/mutadisco/mutadisco/internal/log"
)

// moduleFile is the subset of a project's filesystem the Module-File
// Resolver (C5) needs: an existence probe rooted at the project root.
// Walk satisfies this with the real filesystem; tests substitute a
// fake to avoid touching disk.
type moduleFile interface {
	isRegularFile(relativePath string) bool
}

type osModuleFile struct {
	root string
}

func (o osModuleFile) isRegularFile(relativePath string) bool {
	info, err := os.Stat(path.Join(o.root, relativePath))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// resolveModule maps a `mod name;` reference from parentPath to a
// tree-relative child path, by probing `D/<name>.rs` then
// `D/<name>/mod.rs`, where D is parent's own directory for one of the
// three layout-root file names and parent-minus-extension otherwise.
// It returns ("", false) if neither candidate exists, having already
// logged both probed paths at warn level.
func resolveModule(fs moduleFile, parentPath, name string) (string, bool) {
	dir := searchDirectory(parentPath)

	candidates := []string{
		path.Join(dir, name+".rs"),
		path.Join(dir, name, "mod.rs"),
	}

	for _, c := range candidates {
		if fs.isRegularFile(c) {
			return c, true
		}
	}

	log.Warnf("referent of mod %q not found; probed %s and %s", name, candidates[0], candidates[1])

	return "", false
}

// isLayoutRoot reports whether base is one of the three file names whose
// directory is always the search directory for their own `mod`
// declarations, regardless of the file's own name.
func isLayoutRoot(base string) bool {
	switch base {
	case "mod.rs", "lib.rs", "main.rs":
		return true
	default:
		return false
	}
}

func searchDirectory(parentPath string) string {
	dir, base := path.Split(parentPath)
	dir = strings.TrimSuffix(dir, "/")

	if isLayoutRoot(base) {
		if dir == "" {
			return "."
		}

		return dir
	}

	stripped := strings.TrimSuffix(base, path.Ext(base))
	if dir == "" {
		return stripped
	}

	return path.Join(dir, stripped)
}
