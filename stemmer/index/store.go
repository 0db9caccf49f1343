package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Kush-Singh-26/stemma/stemmer/models"
	"github.com/Kush-Singh-26/stemma/stemmer/utils"
)

// ErrIndexNotFound is returned by Load when no index has been saved yet
var ErrIndexNotFound = errors.New("search index not found")

// Save writes idx to path as zstd-compressed msgpack. The file is written
// to a temporary name first and renamed into place.
func Save(fsys afero.Fs, path string, idx *models.SearchIndex) error {
	buf := utils.IndexBufferPool.Get()
	defer utils.IndexBufferPool.Put(buf)
	if err := msgpack.NewEncoder(buf).Encode(idx); err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(buf.Bytes(), nil)
	_ = enc.Close()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fsys, tmpPath, compressed, 0644); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath)
		return fmt.Errorf("failed to rename index: %w", err)
	}
	return nil
}

// Load reads an index written by Save
func Load(fsys afero.Fs, path string) (*models.SearchIndex, error) {
	compressed, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress index: %w", err)
	}

	var idx models.SearchIndex
	if err := msgpack.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &idx, nil
}
