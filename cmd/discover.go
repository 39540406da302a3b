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

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mutadisco/mutadisco/cmd/internal/flags"
	"github.com/mutadisco/mutadisco/internal/configuration"
	"github.com/mutadisco/mutadisco/internal/discovery"
	"github.com/mutadisco/mutadisco/internal/exclusion"
	"github.com/mutadisco/mutadisco/internal/log"
	"github.com/mutadisco/mutadisco/internal/project"
	"github.com/mutadisco/mutadisco/internal/report"
)

type discoverCmd struct {
	cmd *cobra.Command
}

const (
	commandName = "discover"

	paramErrorValues  = "error-values"
	paramExamine      = "examine"
	paramExclude      = "exclude"
	paramExamineRegex = "examine-regex"
	paramExcludeRegex = "exclude-regex"
	paramListFiles    = "list-files"
	paramList         = "list"
	paramOutput       = "output"
	paramTemplate     = "template"
)

func newDiscoverCmd(ctx context.Context) (*discoverCmd, error) {
	cmd := &cobra.Command{
		Use:     fmt.Sprintf("%s [path]", commandName),
		Aliases: []string{"find", "d"},
		Args:    cobra.MaximumNArgs(1),
		Short:   "Discover mutation candidates",
		Long:    longExplainer(),
		RunE:    runDiscover(ctx),
	}

	if err := setFlagsOnCmd(cmd); err != nil {
		return nil, err
	}

	return &discoverCmd{cmd: cmd}, nil
}

func longExplainer() string {
	return heredoc.Doc(`
		Walks a project's source tree and reports every mutation candidate it finds:
		a function whose return value can be replaced with a plausible-but-wrong
		expression.

		discover only finds candidates, it does not apply them to disk or run any
		tests; pipe its --output file to a separate test-running tool to actually
		perform mutation testing.

		Use --examine/--exclude to filter by file path glob, and --examine-regex/
		--exclude-regex to filter by the resulting mutant identifier.
	`)
}

func runDiscover(ctx context.Context) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log.Infoln("Discovering...")
		path, _ := os.Getwd()
		if len(args) > 0 {
			path = args[0]
		}

		proj, err := project.Open(path)
		if err != nil {
			return fmt.Errorf("not in a recognisable project: %w", err)
		}

		opts, err := buildOptions()
		if err != nil {
			return err
		}

		wg := &sync.WaitGroup{}
		wg.Add(1)
		var discovered *discovery.Discovered
		start := time.Now()
		go runWithCancel(ctx, wg, func(c context.Context) {
			discovered, err = discovery.Walk(c, proj, proj.Root, opts)
		})
		wg.Wait()

		var discErr *discovery.Error
		if errors.As(err, &discErr) && discErr.Kind() == discovery.KindInterrupted {
			return nil
		}
		if err != nil {
			return err
		}

		if configuration.Get[bool](configuration.DiscoverListFilesKey) {
			return listFiles(discovered)
		}
		if configuration.Get[bool](configuration.DiscoverListKey) {
			return listMutants(discovered)
		}

		return report.Do(report.Results{
			ProjectRoot: proj.Root,
			Discovered:  discovered,
			Elapsed:     time.Since(start),
		})
	}
}

// listFiles implements --list-files: print each visited file's path
// instead of the mutant report, mirroring cargo-mutants' --list-files.
func listFiles(discovered *discovery.Discovered) error {
	for _, f := range discovered.Files {
		log.Infof("%s\n", f.TreeRelativePath)
	}

	return nil
}

// listMutants implements --list: print one identifier line per mutant
// with no summary box and no --output file.
func listMutants(discovered *discovery.Discovered) error {
	for _, m := range discovered.Mutants {
		report.Mutant(m)
	}

	return nil
}

func runWithCancel(ctx context.Context, wg *sync.WaitGroup, runner func(c context.Context)) {
	c, cancel := context.WithCancel(ctx)
	go func() {
		<-ctx.Done()
		log.Infof("\nShutting down gracefully...\n")
		cancel()
	}()
	runner(c)
	wg.Done()
}

func buildOptions() (discovery.Options, error) {
	examineGlobs, err := exclusion.NewGlobset(configuration.DiscoverExamineKey)
	if err != nil {
		return discovery.Options{}, err
	}
	excludeGlobs, err := exclusion.NewGlobset(configuration.DiscoverExcludeKey)
	if err != nil {
		return discovery.Options{}, err
	}
	examineNames, err := exclusion.NewNameRules(configuration.DiscoverExamineRegexKey)
	if err != nil {
		return discovery.Options{}, err
	}
	excludeNames, err := exclusion.NewNameRules(configuration.DiscoverExcludeRegexKey)
	if err != nil {
		return discovery.Options{}, err
	}

	return discovery.Options{
		ErrorValues:    configuration.Get[[]string](configuration.DiscoverErrorValuesKey),
		ExamineGlobset: examineGlobs,
		ExcludeGlobset: excludeGlobs,
		ExamineNames:   examineNames,
		ExcludeNames:   excludeNames,
	}, nil
}

func setFlagsOnCmd(cmd *cobra.Command) error {
	cmd.Flags().SortFlags = false
	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		from := []string{".", "_"}
		to := "-"
		for _, sep := range from {
			name = strings.ReplaceAll(name, sep, to)
		}

		return pflag.NormalizedName(name)
	})

	fls := []*flags.Flag{
		{Name: paramErrorValues, CfgKey: configuration.DiscoverErrorValuesKey, DefaultV: []string{}, Usage: "expressions to use for Err(...) mutants, in addition to the defaults"},
		{Name: paramExamine, CfgKey: configuration.DiscoverExamineKey, DefaultV: []string{}, Usage: "only walk files matching these path globs"},
		{Name: paramExclude, CfgKey: configuration.DiscoverExcludeKey, DefaultV: []string{}, Usage: "skip files matching these path globs"},
		{Name: paramExamineRegex, CfgKey: configuration.DiscoverExamineRegexKey, DefaultV: []string{}, Usage: "only keep mutants whose identifier matches one of these regexes"},
		{Name: paramExcludeRegex, CfgKey: configuration.DiscoverExcludeRegexKey, DefaultV: []string{}, Usage: "drop mutants whose identifier matches one of these regexes"},
		{Name: paramListFiles, CfgKey: configuration.DiscoverListFilesKey, DefaultV: false, Usage: "list visited files instead of mutants"},
		{Name: paramList, CfgKey: configuration.DiscoverListKey, Shorthand: "l", DefaultV: false, Usage: "only list mutants, skip the summary"},
		{Name: paramOutput, CfgKey: configuration.DiscoverOutputKey, Shorthand: "o", DefaultV: "", Usage: "write machine-readable results to this file"},
		{Name: paramTemplate, CfgKey: configuration.DiscoverTemplateKey, DefaultV: "", Usage: "a text/template string used to format each reported mutant"},
	}

	for _, f := range fls {
		if err := flags.Set(cmd, f); err != nil {
			return err
		}
	}

	return nil
}
