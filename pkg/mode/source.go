package mode

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/pkg/catalog"
	"github.com/bastiangx/unipick/pkg/index"
)

// Source describes where the character data comes from.
type Source struct {
	// DataDir holds UnicodeData.txt[.gz] and friends; empty means the embedded tables.
	DataDir string
	// AliasesFile is an optional YAML overlay, resolved in SearchDirs when relative.
	AliasesFile string
	SearchDirs  []string
}

// IndexFunc returns a builder that loads the catalog, applies the alias
// overlay and indexes the result. A missing alias file is not an error.
func (s Source) IndexFunc() IndexFunc {
	return func() (*index.Index, error) {
		start := time.Now()

		var (
			cat *catalog.Catalog
			err error
		)
		if s.DataDir == "" {
			cat, err = catalog.Load()
		} else {
			cat, err = catalog.LoadDir(s.DataDir)
		}
		if err != nil {
			return nil, err
		}

		if s.AliasesFile != "" {
			overlay, err := catalog.LoadOverlay(s.AliasesFile, s.SearchDirs)
			switch {
			case catalog.IsMissingOverlay(err):
				log.Debugf("No alias file %s in %v", s.AliasesFile, s.SearchDirs)
			case err != nil:
				return nil, err
			default:
				if cat, err = cat.WithOverlay(overlay); err != nil {
					return nil, err
				}
			}
		}

		idx, err := index.Build(cat)
		if err != nil {
			return nil, err
		}
		log.Debugf("Indexed %d characters in %v", idx.Len(), time.Since(start))
		return idx, nil
	}
}
