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

package report

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/mutadisco/mutadisco/internal/configuration"
	"github.com/mutadisco/mutadisco/internal/discovery"
	"github.com/mutadisco/mutadisco/internal/log"
)

// MutantLogger prints discovered mutants, one per line, optionally
// rendered through a user-supplied text/template instead of the
// built-in identifier format.
type MutantLogger struct {
	tmpl *template.Template
}

// NewLogger builds a MutantLogger from the discover.template setting.
// A malformed template degrades to the built-in identifier format: a
// reporting flag should never abort an otherwise-successful discovery.
func NewLogger() MutantLogger {
	text := configuration.Get[string](configuration.DiscoverTemplateKey)
	if text == "" {
		return MutantLogger{}
	}

	tmpl, err := template.New("mutant").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		log.Errorf("invalid --template, falling back to the default format: %s\n", err)

		return MutantLogger{}
	}

	return MutantLogger{tmpl: tmpl}
}

// Mutant logs one discovered mutant, via the user template if one is
// configured, otherwise via the built-in identifier format.
func (l MutantLogger) Mutant(m discovery.Mutant) {
	if l.tmpl == nil {
		Mutant(m)

		return
	}

	var out strings.Builder
	if err := l.tmpl.Execute(&out, m); err != nil {
		log.Errorf("template execution failed, falling back to the default format: %s\n", err)
		Mutant(m)

		return
	}

	log.Infof("%s\n", out.String())
}
