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

// Package exclusion provides the examine/exclude filters the Tree
// Walker applies after module discovery: a glob-based Globset matched
// against a file's tree-relative path, and a regex-based NameRules
// matched against a mutant's stringified identifier.
package exclusion

import (
	"regexp"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// NameRules represents a collection of regex patterns matched against a
// mutant's stringified identifier.
type NameRules []*regexp.Regexp

// NewNameRules compiles the regex patterns stored under key.
func NewNameRules(key string) (NameRules, error) {
	var rules NameRules

	values := viper.GetStringSlice(key)
	for i, s := range values {
		r, err := regexp.Compile(s)
		if err != nil {
			return nil, errors.Wrapf(err, "error in %s param value #%d", key, i)
		}

		rules = append(rules, r)
	}

	return rules, nil
}

// Matches returns true if name matches any of the rules. An empty rule
// set matches nothing, so an absent filter is a no-op.
func (r NameRules) Matches(name string) bool {
	for _, rule := range r {
		if rule.MatchString(name) {
			return true
		}
	}

	return false
}

// Globset represents a collection of path globs, any one of which
// constitutes a match.
type Globset []glob.Glob

// NewGlobset compiles the glob patterns stored under key.
func NewGlobset(key string) (Globset, error) {
	var set Globset

	values := viper.GetStringSlice(key)
	for i, s := range values {
		g, err := glob.Compile(s, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "error in %s param value #%d", key, i)
		}

		set = append(set, g)
	}

	return set, nil
}

// Matches returns true if path matches any glob in the set.
func (g Globset) Matches(path string) bool {
	for _, pattern := range g {
		if pattern.Match(path) {
			return true
		}
	}

	return false
}
