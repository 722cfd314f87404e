package ucd

import (
	"fmt"
	"io"
	"sort"
)

// AliasType classifies a NameAliases.txt entry.
type AliasType int

const (
	AliasCorrection AliasType = iota
	AliasControl
	AliasAlternate
	AliasFigment
	AliasAbbreviation
)

func (t AliasType) String() string {
	switch t {
	case AliasCorrection:
		return "correction"
	case AliasControl:
		return "control"
	case AliasAlternate:
		return "alternate"
	case AliasFigment:
		return "figment"
	case AliasAbbreviation:
		return "abbreviation"
	default:
		return "unknown"
	}
}

// ParseAliasType maps the third NameAliases.txt field to an AliasType.
func ParseAliasType(s string) (AliasType, error) {
	switch s {
	case "correction":
		return AliasCorrection, nil
	case "control":
		return AliasControl, nil
	case "alternate":
		return AliasAlternate, nil
	case "figment":
		return AliasFigment, nil
	case "abbreviation":
		return AliasAbbreviation, nil
	}
	return 0, fmt.Errorf("unknown alias type %q", s)
}

// Alias is one line of NameAliases.txt.
type Alias struct {
	Codepoint rune
	Value     string
	Type      AliasType
}

// ReadNameAliases parses NameAliases.txt. Aliases are sorted by codepoint;
// aliases of the same codepoint keep their file order.
func ReadNameAliases(r io.Reader) ([]Alias, error) {
	var aliases []Alias

	err := scanFields(r, "NameAliases.txt", func(fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("%w: got %d, want 3", ErrFieldCount, len(fields))
		}
		cp, err := ParseCodepoint(fields[0])
		if err != nil {
			return err
		}
		if fields[1] == "" {
			return fmt.Errorf("empty alias for U+%s", FormatCodepoint(cp))
		}
		ty, err := ParseAliasType(fields[2])
		if err != nil {
			return err
		}
		aliases = append(aliases, Alias{Codepoint: cp, Value: fields[1], Type: ty})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(aliases, func(i, j int) bool {
		return aliases[i].Codepoint < aliases[j].Codepoint
	})
	return aliases, nil
}
