package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec used for exported trace files.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionLZ4    Compression = "lz4"
	CompressionSnappy Compression = "snappy"
)

// CompressionForPath picks the codec from the file extension:
// ".lz4" → LZ4 frame, ".sz" or ".snappy" → Snappy stream, anything else → plain JSON.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return CompressionLZ4
	case ".sz", ".snappy":
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

// Encode writes doc as indented JSON through the given codec.
func Encode(w io.Writer, doc *Document, c Compression) error {
	var (
		sink   io.Writer = w
		closer io.Closer
	)
	switch c {
	case CompressionNone, "":
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		sink, closer = zw, zw
	case CompressionSnappy:
		zw := snappy.NewBufferedWriter(w)
		sink, closer = zw, zw
	default:
		return fmt.Errorf("unsupported compression %q", c)
	}

	enc := json.NewEncoder(sink)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding trace document: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("flushing %s stream: %w", c, err)
		}
	}
	return nil
}

// Decode reads a document previously written by Encode with the same codec.
func Decode(r io.Reader, c Compression) (*Document, error) {
	var source io.Reader
	switch c {
	case CompressionNone, "":
		source = r
	case CompressionLZ4:
		source = lz4.NewReader(r)
	case CompressionSnappy:
		source = snappy.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}

	var doc Document
	if err := json.NewDecoder(source).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding trace document: %w", err)
	}
	return &doc, nil
}

// WriteFile exports doc to path, compressing according to the extension.
func WriteFile(path string, doc *Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := Encode(file, doc, CompressionForPath(path)); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}
	return nil
}

// ReadFile loads a document written by WriteFile.
func ReadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Decode(file, CompressionForPath(path))
}
