package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return os.Chmod(dst, srcInfo.Mode().Perm())
}

// Staged is a verified copy of a file placed next to its final destination so
// it can be modified and then moved into place in one rename.
type Staged struct {
	Path string
	dest string
}

// Stage copies src into a temporary file in the directory of dst.
func Stage(src, dst string) (*Staged, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	path := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	if err := CopyFileVerified(src, path); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("copy %s: %w", src, err)
	}
	return &Staged{Path: path, dest: dst}, nil
}

// Commit moves the staged file over its destination.
func (s *Staged) Commit() error {
	if err := os.Rename(s.Path, s.dest); err != nil {
		return fmt.Errorf("move %s into place: %w", s.dest, err)
	}
	return nil
}

// Discard removes the staged file. It is a no-op after Commit.
func (s *Staged) Discard() {
	_ = os.Remove(s.Path)
}
