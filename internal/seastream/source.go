// ABOUTME: Chunk source abstraction: yields pre-encoded SEA chunks to stream to clients
// ABOUTME: Replaces the teacher's per-format (MP3/FLAC/HTTP) source chain — SEA streams only SEA-encoded chunks
package seastream

import (
	"fmt"
	"io"
	"os"

	"github.com/seacodec/sea-go/pkg/sea"
)

// ChunkSource serves a sequence of fixed-size SEA chunks, plus the
// container header fields clients need before they can decode them.
type ChunkSource interface {
	Header() sea.Header
	Metadata() string
	// Next returns the next chunk's raw bytes, or io.EOF when the
	// source is exhausted.
	Next() ([]byte, error)
	Close() error
}

// FileChunkSource streams the chunks of an already-encoded .sea file
// straight off disk, without decoding them — the server only ever
// forwards chunk bytes, it never touches the codec.
type FileChunkSource struct {
	f        *os.File
	header   sea.Header
	metadata string
	read     int
}

// NewFileChunkSource opens a .sea file and parses its header and
// metadata, leaving the file positioned at the first chunk.
func NewFileChunkSource(path string) (*FileChunkSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seastream: open %s: %w", path, err)
	}

	fixed := make([]byte, sea.HeaderSize)
	if _, err := io.ReadFull(f, fixed); err != nil {
		f.Close()
		return nil, fmt.Errorf("seastream: read header: %w", err)
	}
	hdr, _, err := sea.ParseHeader(fixed)
	if err != nil {
		f.Close()
		return nil, err
	}

	metaBuf := make([]byte, hdr.MetadataSize)
	if hdr.MetadataSize > 0 {
		if _, err := io.ReadFull(f, metaBuf); err != nil {
			f.Close()
			return nil, fmt.Errorf("seastream: read metadata: %w", err)
		}
	}

	return &FileChunkSource{f: f, header: hdr, metadata: string(metaBuf)}, nil
}

func (s *FileChunkSource) Header() sea.Header { return s.header }
func (s *FileChunkSource) Metadata() string    { return s.metadata }

func (s *FileChunkSource) Next() ([]byte, error) {
	chunk := make([]byte, s.header.ChunkSize)
	if _, err := io.ReadFull(s.f, chunk); err != nil {
		return nil, io.EOF
	}
	s.read++
	return chunk, nil
}

func (s *FileChunkSource) Close() error { return s.f.Close() }

// MemoryChunkSource serves the chunks of an in-memory encoded SEA
// buffer, used by the test-tone generator which encodes on the fly
// rather than reading from disk.
type MemoryChunkSource struct {
	header   sea.Header
	metadata string
	chunks   [][]byte
	pos      int
}

// NewMemoryChunkSource slices an already-encoded SEA buffer into its
// header, metadata, and chunk sequence.
func NewMemoryChunkSource(data []byte) (*MemoryChunkSource, error) {
	hdr, off, err := sea.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	metadata := string(data[off : off+int(hdr.MetadataSize)])
	off += int(hdr.MetadataSize)

	var chunks [][]byte
	for off+int(hdr.ChunkSize) <= len(data) {
		chunks = append(chunks, data[off:off+int(hdr.ChunkSize)])
		off += int(hdr.ChunkSize)
	}

	return &MemoryChunkSource{header: hdr, metadata: metadata, chunks: chunks}, nil
}

func (s *MemoryChunkSource) Header() sea.Header { return s.header }
func (s *MemoryChunkSource) Metadata() string    { return s.metadata }

func (s *MemoryChunkSource) Next() ([]byte, error) {
	if s.pos >= len(s.chunks) {
		return nil, io.EOF
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, nil
}

func (s *MemoryChunkSource) Close() error { return nil }
