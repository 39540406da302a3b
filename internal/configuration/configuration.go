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

// Package configuration loads mutadisco's settings from flags, environment
// variables and a ".mutadisco" TOML file, with the former taking precedence
// over the latter, via Viper.
package configuration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// This is the list of the keys available in config files and as flags.
const (
	SilentKey               = "silent"
	DiscoverErrorValuesKey  = "discover.error-values"
	DiscoverExamineKey      = "discover.examine"
	DiscoverExcludeKey      = "discover.exclude"
	DiscoverExamineRegexKey = "discover.examine-regex"
	DiscoverExcludeRegexKey = "discover.exclude-regex"
	DiscoverListFilesKey    = "discover.list-files"
	DiscoverListKey         = "discover.list"
	DiscoverTemplateKey     = "discover.template"
	DiscoverOutputKey       = "discover.output"
)

const (
	cfgName      = ".mutadisco"
	envVarPrefix = "MUTADISCO"

	xdgConfigHomeKey = "XDG_CONFIG_HOME"

	windowsOs = "windows"
)

// Init initializes the viper configuration for mutadisco.
//
// It sets the configuration file name as .mutadisco.toml, adds the passed
// paths as ConfigPaths and enables AutomaticEnv with MUTADISCO as prefix.
// The environment variables take precedence over the configuration file and
// must be set in the format:
//
//	MUTADISCO_<COMMAND NAME>_<FLAG NAME>
func Init(cPaths []string) error {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()
	viper.SetConfigName(cfgName)
	viper.SetConfigType("toml")

	if isSpecificFile(cPaths) {
		viper.SetConfigFile(cPaths[0])
		err := viper.ReadInConfig()
		if err != nil {
			return err
		}
	} else if arePathsNotSet(cPaths) {
		cPaths = defaultConfigPaths()
	}

	for _, p := range cPaths {
		viper.AddConfigPath(p)
	}

	_ = viper.ReadInConfig() // ignoring error if file not present

	return nil
}

func isSpecificFile(cPaths []string) bool {
	return len(cPaths) == 1 && filepath.Ext(cPaths[0]) != ""
}

func arePathsNotSet(cPaths []string) bool {
	return len(cPaths) == 0 || len(cPaths) == 1 && cPaths[0] == ""
}

func defaultConfigPaths() []string {
	result := make([]string, 0, 4)

	// First global config
	if runtime.GOOS != windowsOs {
		result = append(result, "/etc/mutadisco")
	}

	// Then $XDG_CONFIG_HOME
	xchLocation, _ := homedir.Expand("~/.config")
	if x := os.Getenv(xdgConfigHomeKey); x != "" {
		xchLocation = x
	}
	xchLocation = filepath.Join(xchLocation, "mutadisco", "mutadisco")
	result = append(result, xchLocation)

	// Then $HOME
	homeLocation, err := homedir.Expand("~/.mutadisco")
	if err != nil {
		return result
	}
	result = append(result, homeLocation)

	// Then the project root
	if root := findProjectRoot(); root != "" {
		result = append(result, root)
	}

	// Finally the current directory
	result = append(result, ".")

	return result
}

// findProjectRoot is duplicated, in spirit, from internal/gomodule: it can't
// import it here because configuration is initialised before the project
// manifest is located.
func findProjectRoot() string {
	path, _ := os.Getwd()
	for {
		if fi, err := os.Stat(filepath.Join(path, "project.toml")); err == nil && !fi.IsDir() {
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

var mutex sync.RWMutex

// Set offers synchronised access to Viper.
func Set[T any](k string, v T) {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Set(k, v)
}

// Get offers synchronised access to Viper.
func Get[T any](k string) T {
	var r T
	mutex.RLock()
	defer mutex.RUnlock()
	r, _ = viper.Get(k).(T)

	return r
}

// Reset is used mainly for testing purposes, in order to clean up the Viper
// instance.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Reset()
}
