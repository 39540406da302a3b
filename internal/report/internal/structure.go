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

package internal

// OutputResult is the data structure for the file output format (--output).
type OutputResult struct {
	ProjectRoot string       `json:"project_root"`
	Files       []OutputFile `json:"files"`
	MutantTotal int          `json:"mutant_total"`
	ElapsedTime float64      `json:"elapsed_time"`
}

// OutputFile represents a single visited file in the OutputResult.
type OutputFile struct {
	Filename  string     `json:"file_name"`
	Mutations []Mutation `json:"mutations"`
}

// Mutation represents a single discovered mutant in the OutputResult.
type Mutation struct {
	FunctionName string `json:"function_name"`
	ReturnType   string `json:"return_type"`
	Replacement  string `json:"replacement"`
	Line         int    `json:"line"`
	Column       int    `json:"column"`
	Identifier   string `json:"identifier"`
}
