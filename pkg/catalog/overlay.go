package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/bastiangx/unipick/pkg/ucd"
)

// overlayFile is the on-disk shape of a user alias file:
//
//	extends:
//	  - shared.yaml
//	aliases:
//	  U+2603: [snowperson]
//	  "1F600": [smile, happy]
type overlayFile struct {
	Extends []string            `yaml:"extends"`
	Aliases map[string][]string `yaml:"aliases"`
}

// OverlayItem is the set of aliases one file adds to one codepoint.
type OverlayItem struct {
	Codepoint rune
	Aliases   []string
	Source    string
}

// Overlay is a user supplied list of extra aliases. Items from extended files
// come before the items of the file that extends them.
type Overlay struct {
	Items   []OverlayItem
	Sources []string
}

// Len returns the number of aliases in the overlay.
func (o *Overlay) Len() int {
	n := 0
	for _, item := range o.Items {
		n += len(item.Aliases)
	}
	return n
}

// LoadOverlay reads the alias file name and everything it extends. Relative
// names are looked up in searchDirs in order. If name itself cannot be found
// the returned error wraps fs.ErrNotExist; every other failure is a
// *DataCorruptError.
func LoadOverlay(name string, searchDirs []string) (*Overlay, error) {
	file, ok := resolveOverlay(name, "", searchDirs)
	if !ok {
		return nil, fmt.Errorf("alias file %s: %w", name, fs.ErrNotExist)
	}

	o := &Overlay{}
	if err := o.read(file, searchDirs, nil); err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d user aliases from %v", o.Len(), o.Sources)
	return o, nil
}

func (o *Overlay) read(file string, searchDirs []string, stack []string) error {
	for _, parent := range stack {
		if parent == file {
			return &DataCorruptError{
				Source: file,
				Reason: "extends cycle: " + strings.Join(append(stack, file), " -> "),
			}
		}
	}
	stack = append(stack, file)

	data, err := os.ReadFile(file)
	if err != nil {
		return corrupt(file, "", err)
	}

	var of overlayFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return corrupt(file, "invalid YAML", err)
	}

	for _, ext := range of.Extends {
		included, ok := resolveOverlay(ext, filepath.Dir(file), searchDirs)
		if !ok {
			return corrupt(file, fmt.Sprintf("cannot resolve extends entry %q", ext), nil)
		}
		if err := o.read(included, searchDirs, stack); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(of.Aliases))
	for k := range of.Aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]OverlayItem, 0, len(keys))
	for _, k := range keys {
		cp, err := parseOverlayKey(k)
		if err != nil {
			return corrupt(file, fmt.Sprintf("bad codepoint key %q", k), err)
		}
		var names []string
		for _, a := range of.Aliases[k] {
			a = strings.ToUpper(strings.Join(strings.Fields(a), " "))
			if a != "" {
				names = append(names, a)
			}
		}
		if len(names) > 0 {
			items = append(items, OverlayItem{Codepoint: cp, Aliases: names, Source: file})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Codepoint < items[j].Codepoint })

	o.Items = append(o.Items, items...)
	o.Sources = append(o.Sources, file)
	return nil
}

// resolveOverlay finds name: absolute paths are used as-is, relative ones are
// tried next to the including file and then in each search directory.
func resolveOverlay(name, relDir string, searchDirs []string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, isFile(name)
	}

	dirs := make([]string, 0, len(searchDirs)+1)
	if relDir != "" {
		dirs = append(dirs, relDir)
	}
	dirs = append(dirs, searchDirs...)

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func parseOverlayKey(k string) (rune, error) {
	k = strings.TrimSpace(k)
	lower := strings.ToLower(k)
	switch {
	case strings.HasPrefix(lower, "u+"):
		k = k[2:]
	case strings.HasPrefix(lower, "0x"):
		k = k[2:]
	}
	return ucd.ParseCodepoint(k)
}

// WithOverlay returns a new Catalog whose entries carry the overlay aliases
// after their own. The receiver is left untouched. An alias for a codepoint
// the catalog does not hold fails with a *DataCorruptError wrapping
// ErrUnknownCodepoint.
func (c *Catalog) WithOverlay(o *Overlay) (*Catalog, error) {
	if o == nil || len(o.Items) == 0 {
		return c, nil
	}

	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)

	for _, item := range o.Items {
		i, ok := c.byCP[item.Codepoint]
		if !ok {
			return nil, &DataCorruptError{
				Source: item.Source,
				Reason: fmt.Sprintf("alias for U+%04X", item.Codepoint),
				Err:    ErrUnknownCodepoint,
			}
		}

		e := &entries[i]
		aliases := make([]string, len(e.Aliases), len(e.Aliases)+len(item.Aliases))
		copy(aliases, e.Aliases)
		for _, a := range item.Aliases {
			if a != e.Name && !contains(aliases, a) {
				aliases = append(aliases, a)
			}
		}
		e.Aliases = aliases
	}

	return FromEntries(entries)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsMissingOverlay reports whether err only says the alias file does not exist.
func IsMissingOverlay(err error) bool {
	var dce *DataCorruptError
	return errors.Is(err, fs.ErrNotExist) && !errors.As(err, &dce)
}
