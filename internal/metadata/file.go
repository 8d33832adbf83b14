package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFile emits doc to path. The file is written beside path under a
// temporary name and renamed into place, so readers never see a partial document.
func WriteFile(path string, doc *Document) error {
	return replaceFile(path, func(w io.Writer) error { return Write(w, doc) })
}

// AppendFile emits doc with extra bands appended to path. See Append.
func AppendFile(path string, doc *Document, extra []Band) error {
	return replaceFile(path, func(w io.Writer) error { return Append(w, doc, extra) })
}

func replaceFile(path string, write func(io.Writer) error) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
