package utils

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/afero"
	"github.com/zeebo/blake3"
)

// HashDirsFast fingerprints directory trees from path, size and mtime
// without reading file contents.
func HashDirsFast(fsys afero.Fs, dirs []string) (string, error) {
	h := blake3.New()
	for _, dir := range dirs {
		err := afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if _, err := fmt.Fprintf(h, "%s:%d:%d;", path, info.Size(), info.ModTime().UnixNano()); err != nil {
				return fmt.Errorf("failed to write to hash: %w", err)
			}
			return nil
		})
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashString returns the hex blake3 digest of s
func HashString(s string) string {
	sum := blake3.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
