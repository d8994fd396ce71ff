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

import (
	"fmt"
	"io/fs"
	"syscall"

	"gitlab.com/tozd/go/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound          = errors.Base("target file not found")
	ErrPermission        = errors.Base("permission denied")
	ErrEncoding          = errors.Base("content is not valid UTF-8 text")
	ErrNoMatch           = errors.Base("required rule matched nothing")
	ErrIO                = errors.Base("i/o failure")
	ErrInvalidDefinition = errors.Base("invalid patch definition")
)

// FileError describes a failed patch step on a path
type FileError struct {
	Op   string // read, decode, replace, write
	Path string
	Kind error // one of the Err* kinds above
	Err  error // underlying cause, may be nil
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newFileError(op, path string, kind, cause error) error {
	return errors.WithStack(&FileError{Op: op, Path: path, Kind: kind, Err: cause})
}

// classify maps a file system error to one of the error kinds
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EROFS):
		return ErrPermission
	default:
		return ErrIO
	}
}

// 🚦 ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotFound):
		return 2
	case errors.Is(err, ErrPermission):
		return 3
	case errors.Is(err, ErrEncoding):
		return 4
	case errors.Is(err, ErrNoMatch):
		return 5
	default:
		return 1
	}
}
