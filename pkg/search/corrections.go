package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/index"
)

// Correct proposes a query for one that matched nothing. Every token that
// does not occur in any name is swapped for its closest vocabulary token.
// ok is false when nothing could be swapped or the new query still finds
// nothing.
func Correct(idx *index.Index, query string, opts Options) (string, bool) {
	tokens := utils.Tokenize(utils.NormalizeQuery(query, opts.MaxQueryLen))
	if len(tokens) == 0 {
		return "", false
	}

	changed := false
	corrected := make([]string, len(tokens))
	for i, tok := range tokens {
		if len(idx.SubstringTokens(tok)) > 0 {
			corrected[i] = tok
			continue
		}
		best, ok := closestToken(idx.Vocabulary(), tok)
		if !ok {
			return "", false
		}
		corrected[i] = best
		changed = true
	}
	if !changed {
		return "", false
	}

	q := utils.JoinTokens(corrected)
	if len(Rank(idx, q, 1, opts)) == 0 {
		return "", false
	}
	return q, true
}

// closestToken picks the best fuzzy match for tok: highest score, then the
// shorter token, then the lexically smaller one.
func closestToken(vocabulary []string, tok string) (string, bool) {
	matches := fuzzy.FindNoSort(tok, vocabulary)
	if len(matches) == 0 {
		return "", false
	}

	best := matches[0]
	for _, m := range matches[1:] {
		switch {
		case m.Score > best.Score:
			best = m
		case m.Score == best.Score && len(m.Str) < len(best.Str):
			best = m
		case m.Score == best.Score && len(m.Str) == len(best.Str) && strings.Compare(m.Str, best.Str) < 0:
			best = m
		}
	}
	return best.Str, true
}
