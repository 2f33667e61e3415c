// Package file loads match subjects, memory-mapping them via [mmapfile] when
// the platform allows and reading them into memory otherwise.
package file

import (
	"os"

	"go.dw1.io/mmapfile"
)

// Subject is the read-only content of a file.
type Subject struct {
	mm   *mmapfile.MmapFile
	data []byte
}

// Open maps name into memory. If mmap setup fails for any reason (including
// empty files and platform constraints), the file is read with os.ReadFile
// instead.
func Open(name string) (*Subject, error) {
	if mf, err := mmapfile.Open(name); err == nil {
		return &Subject{mm: mf}, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return &Subject{data: data}, nil
}

// Bytes returns the content. A mapped slice is only valid until Close.
func (s *Subject) Bytes() []byte {
	if s.mm != nil {
		return s.mm.Bytes()
	}

	return s.data
}

// Mapped reports whether the content is memory-mapped.
func (s *Subject) Mapped() bool {
	return s.mm != nil
}

// Close unmaps the content.
func (s *Subject) Close() error {
	if s.mm != nil {
		return s.mm.Close()
	}

	s.data = nil

	return nil
}
