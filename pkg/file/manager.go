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

package file

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 Manager handles the file system operations a patch needs
type Manager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (fs.FileInfo, error)

	// WriteFileAtomic replaces the whole content of path in a single rename.
	// Either the old content or the new content is visible, never a mix.
	WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) error
}

var _ Manager = (*OSManager)(nil)

// OSManager is the Manager backed by the real file system
type OSManager struct{}

// NewOSManager creates a new OSManager
func NewOSManager() *OSManager {
	return &OSManager{}
}

func (m *OSManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *OSManager) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Errorf("stat file: %w", err)
	}
	return info, nil
}

func (m *OSManager) WriteFileAtomic(ctx context.Context, path string, content []byte, perm fs.FileMode) (err error) {
	logger := zerolog.Ctx(ctx)

	// write through symlinks so the link survives and its target gets the content
	target, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if err = checkWritable(target); err != nil {
		return errors.Errorf("checking destination: %w", err)
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}

	// same directory as the target so the rename never crosses devices
	tmp, err := os.CreateTemp(dir, "."+base+".patchrc-*")
	if err != nil {
		return errors.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err == nil {
			return
		}
		_ = tmp.Close()
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn().Err(rmErr).Str("tmp", tmpPath).Msg("removing temporary file")
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("writing temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("syncing temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temporary file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return errors.Errorf("setting permissions on temporary file: %w", err)
	}
	if ownErr := copyOwner(tmpPath, target); ownErr != nil {
		logger.Debug().Err(ownErr).Str("path", target).Msg("keeping owner of the new file")
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return errors.Errorf("renaming temporary file: %w", err)
	}

	logger.Debug().Str("path", target).Int("bytes", len(content)).Msg("file replaced")
	return nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet is returned as is.
func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		return "", errors.Errorf("resolving symlinks: %w", err)
	}
	return target, nil
}
