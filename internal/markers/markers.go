// Package markers finds template markers that survived rendering.
package markers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultMarkers are the substrings that indicate an unrendered template.
var DefaultMarkers = []string{"cookiecutter.", "<no value>"}

// skipDirs are never scanned.
var skipDirs = map[string]bool{
	".git": true,
}

const sniffLen = 8 << 10

// Finding is one marker occurrence.
type Finding struct {
	Path   string
	Line   int
	Marker string
}

func (f Finding) String() string {
	if f.Line == 0 {
		return fmt.Sprintf("%s: %q in file name", f.Path, f.Marker)
	}
	return fmt.Sprintf("%s:%d: %q", f.Path, f.Line, f.Marker)
}

// Scanner walks a tree looking for markers in file names and contents.
type Scanner struct {
	Fs      afero.Fs
	Markers []string
}

// NewScanner returns a Scanner over the real file system. With no markers
// DefaultMarkers are used.
func NewScanner(markers ...string) *Scanner {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	return &Scanner{Fs: afero.NewOsFs(), Markers: markers}
}

// Scan returns every finding below root, with paths relative to root.
func (s *Scanner) Scan(root string) ([]Finding, error) {
	var findings []Finding

	err := afero.Walk(s.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() && skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		if rel != "." {
			for _, m := range s.Markers {
				if strings.Contains(info.Name(), m) {
					findings = append(findings, Finding{Path: rel, Marker: m})
				}
			}
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		fileFindings, err := s.scanFile(path, rel)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", rel, err)
		}
		findings = append(findings, fileFindings...)
		return nil
	})
	if err != nil {
		return findings, err
	}

	return findings, nil
}

func (s *Scanner) scanFile(path, rel string) ([]Finding, error) {
	f, err := s.Fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, sniffLen)
	head, err := r.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return nil, nil
	}

	var findings []Finding
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		for _, m := range s.Markers {
			if strings.Contains(text, m) {
				findings = append(findings, Finding{Path: rel, Line: line, Marker: m})
			}
		}
	}
	return findings, sc.Err()
}
