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
	"testing"
)

func TestDiscover(t *testing.T) {
	c, err := newDiscoverCmd(context.Background())
	if err != nil {
		t.Fatal("newDiscoverCmd should not fail")
	}
	cmd := c.cmd

	if cmd.Name() != "discover" {
		t.Errorf("expected 'discover', got %q", cmd.Name())
	}

	flags := cmd.Flags()

	testCases := []struct {
		name      string
		shorthand string
		flagType  string
		defValue  string
	}{
		{name: "error-values", flagType: "stringSlice", defValue: "[]"},
		{name: "examine", flagType: "stringSlice", defValue: "[]"},
		{name: "exclude", flagType: "stringSlice", defValue: "[]"},
		{name: "examine-regex", flagType: "stringSlice", defValue: "[]"},
		{name: "exclude-regex", flagType: "stringSlice", defValue: "[]"},
		{name: "list-files", flagType: "bool", defValue: "false"},
		{name: "list", shorthand: "l", flagType: "bool", defValue: "false"},
		{name: "output", shorthand: "o", flagType: "string", defValue: ""},
		{name: "template", flagType: "string", defValue: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := flags.Lookup(tc.name)
			if f == nil {
				t.Fatalf("expected flag %q to be registered", tc.name)
			}
			if tc.shorthand != "" && f.Shorthand != tc.shorthand {
				t.Errorf("expected %q to have a shorthand %q, got %q", tc.name, tc.shorthand, f.Shorthand)
			}
			if f.Value.Type() != tc.flagType {
				t.Errorf("expected %q to be type %q, got %q", tc.name, tc.flagType, f.Value.Type())
			}
			if f.DefValue != tc.defValue {
				t.Errorf("expected %q to have default value %q, got %q", tc.name, tc.defValue, f.DefValue)
			}
		})
	}
}
