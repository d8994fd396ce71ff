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

// Package report renders the per-rule summary printed after a patch run.
package report

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// Rows builds the table rows for a result, header first
func Rows(res *patch.Result) pterm.TableData {
	data := pterm.TableData{{"#", "Needle", "Replacements", "Status"}}
	for _, rr := range res.Replacement.Rules {
		status := "applied"
		switch {
		case rr.Skipped:
			status = "skipped"
		case rr.Count == 0:
			status = "no match"
		}
		data = append(data, []string{
			strconv.Itoa(rr.Index),
			strconv.Quote(rr.FromText),
			strconv.Itoa(rr.Count),
			status,
		})
	}
	return data
}

// Table renders the summary table for a result
func Table(res *patch.Result) (string, error) {
	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(Rows(res)).Srender()
	if err != nil {
		return "", errors.Errorf("rendering summary table: %w", err)
	}
	return out, nil
}

// Summary is the one-line outcome for a result
func Summary(res *patch.Result) string {
	if !res.Replacement.WasModified {
		return fmt.Sprintf("%s already up to date", res.Path)
	}
	return fmt.Sprintf("patched %s (%d replacements)", res.Path, res.Replacement.ReplacementCount)
}
