// Package nalfile stores every unit of a file-mode pass in its own file.
package nalfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/codec/h265"
	"github.com/ugparu/hevcbs/utils/logger"
)

// DefaultExtension is appended to unit file names when none is configured.
const DefaultExtension = "h265"

type activeFile struct {
	file *os.File
	buf  *bufio.Writer
	name string
	size int
}

type sink struct {
	dest       string
	ext        string
	activeFile *activeFile
	files      int
	name       string
}

// New creates a sink writing units as nal<index>_type<type>.<ext> into dest.
func New(dest, ext string) hevcbs.Sink {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = DefaultExtension
	}
	if dest == "" {
		dest = "."
	}
	return &sink{
		dest: dest,
		ext:  ext,
		name: "NALFILE",
	}
}

// FileName returns the artifact name of a unit.
func FileName(index int, typ uint8, ext string) string {
	return fmt.Sprintf("nal%04d_type%d.%s", index, typ, ext)
}

// createFile creates a file ensuring parent directories exist
func createFile(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err == nil {
		return f, nil
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func (s *sink) Begin(index int, typ uint8) error {
	if s.activeFile != nil {
		if err := s.End(); err != nil {
			return err
		}
	}

	name := FileName(index, typ, s.ext)
	f, err := createFile(filepath.Join(s.dest, name))
	if err != nil {
		return err
	}
	logger.Tracef(s, "Opened %s (%s)", name, h265.TypeName(typ))

	s.activeFile = &activeFile{
		file: f,
		buf:  bufio.NewWriter(f),
		name: name,
	}
	return nil
}

func (s *sink) Write(p []byte) error {
	if s.activeFile == nil {
		return fmt.Errorf("write of %d bytes without an open unit", len(p))
	}
	n, err := s.activeFile.buf.Write(p)
	s.activeFile.size += n
	return err
}

func (s *sink) End() error {
	if s.activeFile == nil {
		return nil
	}
	af := s.activeFile
	s.activeFile = nil

	if err := af.buf.Flush(); err != nil {
		_ = af.file.Close()
		return err
	}
	if err := af.file.Close(); err != nil {
		return err
	}
	s.files++
	logger.Debugf(s, "Wrote %s, %d bytes", af.name, af.size)
	return nil
}

// Close finalizes a unit left open and reports the number of files written.
func (s *sink) Close() error {
	err := s.End()
	logger.Debugf(s, "Closing sink, %d files in %s", s.files, s.dest)
	return err
}

func (s *sink) String() string {
	return s.name
}
