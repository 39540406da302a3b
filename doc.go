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

/*
Mutadisco finds mutation-testing candidates in a statically-typed project: it
walks the source tree and, for every eligible function, proposes a handful of
plausible-but-wrong replacements for its return value.

It only discovers candidates; it does not apply a mutant to disk and it does
not compile or run a test suite. Those steps belong to a separate test-running
tool, which can consume mutadisco's --output file as its input.

Usage

To discover mutants, from the root of a project execute:

	$ mutadisco discover

To restrict the walk to a subset of files:

	$ mutadisco discover --examine "src/**" --exclude "src/generated/**"

To restrict the reported mutants by their identifier:

	$ mutadisco discover --examine-regex "^src/lib.rs"

Mutadisco reports each mutant as one line:

	<file_path>:<line>:<function_name>:<return_type> -> <replacement>

Configuration

Mutadisco uses Viper (https://github.com/spf13/viper) for configuration.
Options can be passed in the following ways, each taking precedence over the
one below:

 - specific command flags
 - environment variables
 - configuration file

Environment variables are set with the following syntax:

	MUTADISCO_<COMMAND NAME>_<FLAG NAME>

in which every dash in the option name must be replaced with an underscore.

Example:

	$ MUTADISCO_DISCOVER_OUTPUT=report.json mutadisco discover

The configuration file is a TOML file named

	.mutadisco.toml

and is looked up in the following folders, in order, the first one found
being used:

 - /etc/mutadisco (except on Windows)
 - $XDG_CONFIG_HOME/mutadisco/mutadisco ($HOME/.config/mutadisco/mutadisco if unset)
 - $HOME/.mutadisco
 - the project root (the nearest folder, from the current one upwards, holding a project.toml)
 - the current folder

A file passed with --config is read instead of searching these folders.
*/
package mutadisco
