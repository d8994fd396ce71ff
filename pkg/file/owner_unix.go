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

//go:build unix

package file

import (
	"io/fs"
	"os"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// checkWritable fails with a permission error when the current user may not write path.
// A missing path passes; creating it is the caller's problem.
func checkWritable(path string) error {
	err := unix.Access(path, unix.W_OK)
	if err == nil || errors.Is(err, unix.ENOENT) {
		return nil
	}
	return &fs.PathError{Op: "access", Path: path, Err: err}
}

// copyOwner gives tmp the uid and gid of target
func copyOwner(tmp, target string) error {
	var want, got unix.Stat_t
	if err := unix.Stat(target, &want); err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil
		}
		return &fs.PathError{Op: "stat", Path: target, Err: err}
	}
	if err := unix.Stat(tmp, &got); err != nil {
		return &fs.PathError{Op: "stat", Path: tmp, Err: err}
	}
	if want.Uid == got.Uid && want.Gid == got.Gid {
		return nil
	}
	return os.Chown(tmp, int(want.Uid), int(want.Gid))
}
