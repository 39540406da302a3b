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

// Package discovery walks a project's source tree and finds candidate
// mutants: textual replacements of a function's return value that are
// expected to change observable behaviour.
//
// It does not apply mutants to disk and it does not run tests; both are
// the responsibility of callers. Given a Tool that knows how to enumerate
// a project's entry source files, Walk parses each file, follows its `mod`
// declarations to other files in the tree, and for every eligible function
// synthesizes a handful of "plausibly wrong" replacement expressions from
// its return type.
package discovery
