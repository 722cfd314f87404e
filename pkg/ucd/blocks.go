package ucd

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// NoBlock is the block name of codepoints outside every listed block.
const NoBlock = "No_Block"

// Block is a named contiguous codepoint range from Blocks.txt.
type Block struct {
	First rune
	Last  rune
	Name  string
}

// Blocks is a sorted, non-overlapping list of blocks.
type Blocks []Block

// ReadBlocks parses Blocks.txt ("0000..007F; Basic Latin").
func ReadBlocks(r io.Reader) (Blocks, error) {
	var blocks Blocks

	err := scanFields(r, "Blocks.txt", func(fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("%w: got %d, want 2", ErrFieldCount, len(fields))
		}
		lo, hi, ok := strings.Cut(fields[0], "..")
		if !ok {
			return fmt.Errorf("malformed range %q", fields[0])
		}
		first, err := ParseCodepoint(lo)
		if err != nil {
			return err
		}
		last, err := ParseCodepoint(hi)
		if err != nil {
			return err
		}
		if last < first {
			return fmt.Errorf("inverted range %q", fields[0])
		}
		if fields[1] == "" {
			return fmt.Errorf("empty block name for %q", fields[0])
		}
		blocks = append(blocks, Block{First: first, Last: last, Name: fields[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].First < blocks[j].First
	})
	for i := 1; i < len(blocks); i++ {
		if blocks[i].First <= blocks[i-1].Last {
			return nil, fmt.Errorf("blocks %q and %q overlap", blocks[i-1].Name, blocks[i].Name)
		}
	}
	return blocks, nil
}

// Lookup returns the name of the block containing cp, or NoBlock.
func (b Blocks) Lookup(cp rune) string {
	i := sort.Search(len(b), func(i int) bool {
		return b[i].Last >= cp
	})
	if i < len(b) && b[i].First <= cp {
		return b[i].Name
	}
	return NoBlock
}
