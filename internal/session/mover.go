package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Mover relocates image files into label folders. The queue is its only
// consumer; it is an interface so tests can inject failures.
type Mover interface {
	// Move relocates src into destDir, creating destDir if absent. It fails
	// with ErrMoveConflict if destDir already contains a file named like src,
	// and returns the final destination path on success.
	Move(src, destDir string) (string, error)

	// MoveTo relocates src to the exact path dest, creating dest's parent if
	// absent. Fails with ErrMoveConflict if dest already exists.
	MoveTo(src, dest string) error
}

// FileMover is the disk-backed Mover used in production.
type FileMover struct {
	// RenameOnConflict resolves destination collisions by appending a
	// numeric suffix instead of failing with ErrMoveConflict.
	RenameOnConflict bool
}

// Move implements Mover. Directory creation and the rename are treated as
// one unit: if the rename fails the caller sees an error and no in-memory
// state may be mutated. An empty directory left behind by a failed rename is
// acceptable residue.
func (m *FileMover) Move(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create label directory %s: %w", destDir, err)
	}

	dest := filepath.Join(destDir, filepath.Base(src))
	if _, err := os.Lstat(dest); err == nil {
		if !m.RenameOnConflict {
			return "", fmt.Errorf("%w: %s", ErrMoveConflict, dest)
		}
		dest = uniqueDestination(destDir, filepath.Base(src))
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat destination %s: %w", dest, err)
	}

	if err := rename(src, dest); err != nil {
		return "", fmt.Errorf("failed to move %s: %w", src, err)
	}
	return dest, nil
}

// MoveTo implements Mover. Used by undo to restore a file to its exact
// original path.
func (m *FileMover) MoveTo(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrMoveConflict, dest)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat destination %s: %w", dest, err)
	}
	if err := rename(src, dest); err != nil {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	return nil
}

// uniqueDestination finds the first name_N.ext not present in destDir.
func uniqueDestination(destDir, name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
	}
}

// rename moves src to dest, falling back to copy+remove when the rename
// crosses a filesystem boundary (EXDEV).
func rename(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if copyErr := copyFile(src, dest); copyErr != nil {
		return copyErr
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dest)
		return err
	}
	return nil
}
