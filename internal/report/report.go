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

// Package report formats and outputs discovery results: one line per
// mutant, a terminal summary box, and an optional machine-readable file.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/hako/durafmt"

	"github.com/mutadisco/mutadisco/internal/configuration"
	"github.com/mutadisco/mutadisco/internal/discovery"
	"github.com/mutadisco/mutadisco/internal/log"
	"github.com/mutadisco/mutadisco/internal/report/internal"
)

var (
	fgGreen   = color.New(color.FgGreen).SprintFunc()
	fgHiBlack = color.New(color.FgHiBlack).SprintFunc()
)

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("10")).
	Padding(0, 1)

// Results bundles a discovery run's output with the project root it was
// run against and how long the walk took, the inputs a report needs that
// discovery.Discovered itself has no business knowing.
type Results struct {
	ProjectRoot string
	Discovered  *discovery.Discovered
	Elapsed     time.Duration
}

// Do generates the full report for a discovery run: one logged line per
// surviving mutant, a summary box, and the optional --output file.
func Do(results Results) error {
	mutants := results.Discovered.Mutants
	if len(mutants) == 0 {
		log.Infoln("\nNo mutants found.")

		return nil
	}

	logger := NewLogger()
	for _, m := range mutants {
		logger.Mutant(m)
	}

	printSummary(results)

	return fileReport(results)
}

func printSummary(results Results) {
	elapsed := durafmt.Parse(results.Elapsed).LimitFirstN(2)
	body := lipgloss.JoinVertical(lipgloss.Left,
		"Discovery completed in "+elapsed.String(),
		fmt.Sprintf("Files visited: %s", fgHiBlack(len(results.Discovered.Files))),
		fmt.Sprintf("Mutants found: %s", fgGreen(len(results.Discovered.Mutants))),
	)
	log.Infoln("")
	log.Infoln(summaryStyle.Render(body))
}

func fileReport(results Results) error {
	output := configuration.Get[string](configuration.DiscoverOutputKey)
	if output == "" {
		return nil
	}

	byFile := make(map[string][]internal.Mutation)
	for _, m := range results.Discovered.Mutants {
		byFile[m.SourceFile.TreeRelativePath] = append(byFile[m.SourceFile.TreeRelativePath], internal.Mutation{
			FunctionName: m.FunctionName,
			ReturnType:   m.ReturnTypeText,
			Replacement:  m.ReplacementText,
			Line:         m.Span.Start.Line,
			Column:       m.Span.Start.Column,
			Identifier:   m.Identifier(),
		})
	}

	files := make([]internal.OutputFile, 0, len(byFile))
	for name, mutations := range byFile {
		files = append(files, internal.OutputFile{Filename: name, Mutations: mutations})
	}

	result := internal.OutputResult{
		ProjectRoot: results.ProjectRoot,
		Files:       files,
		MutantTotal: len(results.Discovered.Mutants),
		ElapsedTime: results.Elapsed.Seconds(),
	}

	jsonResult, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		log.Errorf("impossible to write file: %s\n", err)

		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if _, err := f.Write(jsonResult); err != nil {
		log.Errorf("impossible to write file: %s\n", err)

		return err
	}

	return nil
}

// Mutant logs a single discovered mutant using its identifier, per §6:
// <file_path>:<line>:<function_name>:<return_type> -> <replacement>.
func Mutant(m discovery.Mutant) {
	log.Infof("%s\n", m.Identifier())
}
