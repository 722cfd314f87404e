package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/pkg/ucd"
)

const (
	unicodeDataFile = "UnicodeData.txt"
	nameAliasesFile = "NameAliases.txt"
	blocksFile      = "Blocks.txt"
)

//go:embed data
var dataFS embed.FS

var (
	embeddedOnce sync.Once
	embedded     *Catalog
	embeddedErr  error
)

// Load returns the catalog built from the embedded character data.
// The data is parsed on the first call only; later calls return the same
// Catalog (or the same error).
func Load() (*Catalog, error) {
	embeddedOnce.Do(func() {
		start := time.Now()
		embedded, embeddedErr = loadFS(dataFS, "data")
		if embeddedErr == nil {
			log.Debugf("Loaded %d embedded characters in %v", embedded.Len(), time.Since(start))
		}
	})
	return embedded, embeddedErr
}

// LoadDir builds a catalog from a UCD directory. UnicodeData.txt (or
// UnicodeData.txt.gz) is required; NameAliases.txt and Blocks.txt are used
// when present.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	start := time.Now()
	cat, err := loadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d characters from %s in %v", cat.Len(), dir, time.Since(start))
	return cat, nil
}

func loadFS(fsys fs.FS, dir string) (*Catalog, error) {
	dataPath, ok := findDataFile(fsys, dir, unicodeDataFile)
	if !ok {
		return nil, corrupt(unicodeDataFile, "file not found", fs.ErrNotExist)
	}

	rc, err := openDataFile(fsys, dataPath)
	if err != nil {
		return nil, corrupt(dataPath, "", err)
	}
	records, err := ucd.ReadUnicodeData(rc)
	rc.Close()
	if err != nil {
		return nil, asCorrupt(err)
	}

	var aliases []ucd.Alias
	if p, ok := findDataFile(fsys, dir, nameAliasesFile); ok {
		rc, err := openDataFile(fsys, p)
		if err != nil {
			return nil, corrupt(p, "", err)
		}
		aliases, err = ucd.ReadNameAliases(rc)
		rc.Close()
		if err != nil {
			return nil, asCorrupt(err)
		}
	} else {
		log.Debugf("No %s in %s, names are used as-is", nameAliasesFile, dir)
	}

	var blocks ucd.Blocks
	if p, ok := findDataFile(fsys, dir, blocksFile); ok {
		rc, err := openDataFile(fsys, p)
		if err != nil {
			return nil, corrupt(p, "", err)
		}
		blocks, err = ucd.ReadBlocks(rc)
		rc.Close()
		if err != nil {
			return nil, asCorrupt(err)
		}
	}

	return assemble(records, aliases, blocks)
}

// asCorrupt turns a ucd parse failure into a DataCorruptError that keeps the line.
func asCorrupt(err error) error {
	var lineErr *ucd.LineError
	if errors.As(err, &lineErr) {
		return &DataCorruptError{Source: lineErr.File, Line: lineErr.Line, Err: lineErr.Err}
	}
	return corrupt("", "", err)
}

// assemble merges UnicodeData records with their name aliases and blocks.
//
// A correction replaces the primary name and keeps the old one as an alias.
// A "<control>" name takes its first control or figment alias as the primary
// name. Records whose name still starts with '<' are dropped.
func assemble(records []ucd.Record, aliases []ucd.Alias, blocks ucd.Blocks) (*Catalog, error) {
	byCP := make(map[rune][]ucd.Alias)
	for _, a := range aliases {
		byCP[a.Codepoint] = append(byCP[a.Codepoint], a)
	}

	entries := make([]Entry, 0, len(records))
	seen := make(map[rune]struct{}, len(records))
	skipped := 0

	for _, rec := range records {
		if _, dup := seen[rec.Codepoint]; dup {
			return nil, corrupt(unicodeDataFile, fmt.Sprintf("duplicate codepoint U+%04X", rec.Codepoint), nil)
		}
		seen[rec.Codepoint] = struct{}{}

		if rec.Name == "" {
			return nil, corrupt(unicodeDataFile, fmt.Sprintf("empty name for U+%04X", rec.Codepoint), nil)
		}

		name, extra := mergeAliases(rec.Name, byCP[rec.Codepoint])
		if strings.HasPrefix(name, "<") {
			skipped++
			continue
		}

		block := ucd.NoBlock
		if len(blocks) > 0 {
			block = blocks.Lookup(rec.Codepoint)
		}

		entries = append(entries, Entry{
			Codepoint: rec.Codepoint,
			Name:      name,
			Aliases:   extra,
			Category:  GeneralCategory(rec.Category),
			Block:     block,
		})
	}

	for cp := range byCP {
		if _, ok := seen[cp]; !ok {
			log.Debugf("Ignoring aliases for U+%04X: not in %s", cp, unicodeDataFile)
		}
	}
	if skipped > 0 {
		log.Debugf("Skipped %d unnamed or range records", skipped)
	}

	return FromEntries(entries)
}

func mergeAliases(name string, aliases []ucd.Alias) (string, []string) {
	var extra []string
	add := func(s string) {
		if s == "" || s == name || strings.HasPrefix(s, "<") {
			return
		}
		for _, existing := range extra {
			if existing == s {
				return
			}
		}
		extra = append(extra, s)
	}

	for _, a := range aliases {
		switch a.Type {
		case ucd.AliasCorrection:
			old := name
			name = a.Value
			add(old)
		case ucd.AliasControl, ucd.AliasFigment:
			if strings.HasPrefix(name, "<") {
				name = a.Value
				continue
			}
			add(a.Value)
		default:
			add(a.Value)
		}
	}

	// a later correction may have promoted a value that was already an alias
	out := extra[:0]
	for _, s := range extra {
		if s != name {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return name, nil
	}
	return name, out
}
