package catalog

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
)

// FileFormat represents the encodings a UCD data file may be stored in
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // Plain UCD text
	FormatGzip               // Gzip compressed UCD text
)

// FormatInfo contains metadata about a data file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "UCD Text",
		Extensions:  []string{".txt"},
	},
	FormatGzip: {
		Format:      FormatGzip,
		Description: "Gzip Compressed UCD Text",
		Extensions:  []string{".gz"},
	},
}

var gzipMagic = []byte{0x1f, 0x8b}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat sniffs the first bytes of name. The extension only has to
// agree with the content; a ".gz" file that is not gzip is rejected.
func DetectFileFormat(fsys fs.FS, name string) (FileFormat, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	head := make([]byte, len(gzipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read %s: %w", name, err)
	}
	isGzip := n == len(gzipMagic) && head[0] == gzipMagic[0] && head[1] == gzipMagic[1]

	ext := strings.ToLower(path.Ext(name))
	switch {
	case isGzip:
		return FormatGzip, nil
	case ext == ".gz":
		return FormatUnknown, fmt.Errorf("file %s has extension .gz but is not gzip data", name)
	case ext == ".txt":
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", name)
}

// findDataFile returns the path of base inside dir, preferring the
// uncompressed file over base+".gz".
func findDataFile(fsys fs.FS, dir, base string) (string, bool) {
	for _, candidate := range []string{base, base + ".gz"} {
		p := path.Join(dir, candidate)
		if info, err := fs.Stat(fsys, p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

type dataReader struct {
	io.Reader
	closers []io.Closer
}

func (r *dataReader) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openDataFile opens name for reading, transparently decompressing gzip data.
func openDataFile(fsys fs.FS, name string) (io.ReadCloser, error) {
	format, err := DetectFileFormat(fsys, name)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	switch format {
	case FormatGzip:
		zr, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
		log.Debugf("Reading %s as %s", name, format)
		return &dataReader{Reader: zr, closers: []io.Closer{f, zr}}, nil
	default:
		log.Debugf("Reading %s as %s", name, format)
		return &dataReader{Reader: f, closers: []io.Closer{f}}, nil
	}
}
