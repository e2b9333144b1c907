package index

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// MetaRecord maps one index position back to an article identifier.
// metadata[i] belongs to the vector at position i; the two artifacts are
// written and loaded together and must agree on length.
type MetaRecord struct {
	ID string `json:"id"`
}

const fileMagic = uint32(0x46564931) // "FVI1"

// IndexPath returns the vector artifact path for a prefix.
func IndexPath(prefix string) string { return prefix + "_content.index" }

// MetadataPath returns the metadata artifact path for a prefix.
func MetadataPath(prefix string) string { return prefix + "_metadata.json" }

// Save persists the index and its metadata under the shared prefix.
// Both files are written to temporary names first and published by
// rename, so a concurrent reader sees either the old pair or the new
// pair, never a half-written artifact.
func Save(f *Flat, meta []MetaRecord, prefix string) error {
	if f.Count() != len(meta) {
		return fmt.Errorf("metadata length %d does not match vector count %d", len(meta), f.Count())
	}

	dir := filepath.Dir(prefix)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	tmpIndex := IndexPath(prefix) + ".tmp"
	tmpMeta := MetadataPath(prefix) + ".tmp"

	if err := writeIndexFile(f, tmpIndex); err != nil {
		os.Remove(tmpIndex)
		return err
	}
	if err := writeMetadataFile(meta, tmpMeta); err != nil {
		os.Remove(tmpIndex)
		os.Remove(tmpMeta)
		return err
	}

	if err := os.Rename(tmpIndex, IndexPath(prefix)); err != nil {
		os.Remove(tmpIndex)
		os.Remove(tmpMeta)
		return fmt.Errorf("failed to publish index: %w", err)
	}
	if err := os.Rename(tmpMeta, MetadataPath(prefix)); err != nil {
		os.Remove(tmpMeta)
		return fmt.Errorf("failed to publish metadata: %w", err)
	}
	return nil
}

// Load reads the artifact pair back. It fails if either file is missing,
// the vector file is malformed, or the two disagree on length.
func Load(prefix string) (*Flat, []MetaRecord, error) {
	f, err := readIndexFile(IndexPath(prefix))
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(MetadataPath(prefix))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	var meta []MetaRecord
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if f.Count() != len(meta) {
		return nil, nil, fmt.Errorf("index/metadata mismatch: %d vectors, %d metadata records", f.Count(), len(meta))
	}
	return f, meta, nil
}

func writeIndexFile(f *Flat, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	header := []uint32{fileMagic, uint32(f.dim), uint32(f.Count())}
	for _, h := range header {
		if err := binary.Write(w, binary.LittleEndian, h); err != nil {
			return fmt.Errorf("failed to write index header: %w", err)
		}
	}
	for _, v := range f.data {
		if err := binary.Write(w, binary.LittleEndian, math.Float32bits(v)); err != nil {
			return fmt.Errorf("failed to write index data: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush index file: %w", err)
	}
	return file.Sync()
}

func readIndexFile(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var magic, dim, count uint32
	for _, p := range []*uint32{&magic, &dim, &count} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("failed to read index header: %w", err)
		}
	}
	if magic != fileMagic {
		return nil, fmt.Errorf("not a vector index file: %s", path)
	}
	if dim == 0 {
		return nil, fmt.Errorf("index file has zero dimension: %s", path)
	}

	f := &Flat{dim: int(dim), data: make([]float32, int(dim)*int(count))}
	for i := range f.data {
		var bits uint32
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return nil, fmt.Errorf("index file truncated at vector %d: %w", i/int(dim), err)
		}
		f.data[i] = math.Float32frombits(bits)
	}
	return f, nil
}

func writeMetadataFile(meta []MetaRecord, path string) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
