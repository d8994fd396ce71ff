// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package patch

import "github.com/walteh/patchrc/pkg/text"

// HeaderPath is the web header component carrying the program toggle
const HeaderPath = "apps/web/src/layout/Header.tsx"

// HeaderProgramToggle removes the program switch from the header so only the
// ISET title is rendered. The rules are applied in this order.
func HeaderProgramToggle() Definition {
	return HeaderProgramToggleAt(HeaderPath)
}

// HeaderProgramToggleAt is HeaderProgramToggle aimed at another copy of the header
func HeaderProgramToggleAt(path string) Definition {
	return Definition{
		Name: "header-program-toggle",
		Path: path,
		Rules: []text.ReplacementRule{
			{FromText: ", useProgram", ToText: ""},
			{FromText: "  const { program } = useProgram();\n", ToText: ""},
			{
				FromText: "          {program === \"Jordan\" ? strings.jordan : strings.iset}\n",
				ToText:   "          {strings.iset}\n",
			},
		},
	}
}
