package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyAssets copies each file in files, which must live under root, to the
// same relative path under dst. It returns the number of files copied.
func CopyAssets(root string, files []string, dst string) (int, error) {
	copied := 0
	for _, src := range files {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			return copied, fmt.Errorf("relative path of %s: %w", src, err)
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return copied, err
		}
		if err := copyFile(src, target); err != nil {
			return copied, fmt.Errorf("copy %s: %w", src, err)
		}
		copied++
	}
	return copied, nil
}

// copyFile copies a single file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	return dstFile.Close()
}
