package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userrepo"
	"github.com/haguru/sakura/pkg/helper"
)

const (
	FILE_MODE = 0o644
	DIR_MODE  = 0o755
)

// FileUserRepository keeps the collection as a JSON array in a single file.
// Saves write a sibling temp file and rename it over the target, so readers
// see either the old or the new collection.
type FileUserRepository struct {
	path   string
	logger interfaces.Logger
}

func NewFileUserRepository(path string, logger interfaces.Logger) (interfaces.UserRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("users file path cannot be empty")
	}
	return &FileUserRepository{path: path, logger: logger}, nil
}

// Init creates the data directory and an empty collection when the file is absent.
func (r *FileUserRepository) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(r.path), DIR_MODE); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	if _, err := r.Load(ctx); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	return nil
}

func (r *FileUserRepository) Load(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("users file not found, creating empty collection", "func", helper.GetFuncName(), "path", r.path)
		if err := r.Save(ctx, []models.User{}); err != nil {
			return nil, err
		}
		return []models.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}

	return userrepo.DecodeUsers(data)
}

func (r *FileUserRepository) Save(ctx context.Context, users []models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := userrepo.EncodeUsers(users)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	return nil
}

func (r *FileUserRepository) Close(ctx context.Context) error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DIR_MODE); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, FILE_MODE); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
