package sigindex

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is one ranked result of a fuzzy signal search.
type Match struct {
	Handle    Handle
	Path      string
	Score     int   // fuzzy match score, larger is better
	Positions []int // matched character offsets in Path, for highlighting
}

// Search fuzzy-matches query against every full signal path and returns the
// matches ranked by match quality, then path depth, then declaration order.
// The ranking is deterministic: identical queries over the same hierarchy
// always return the same slice.
//
// An exact segment match ("clk" against "top.clk") always outranks a partial
// one ("clk" against "top.io.clk_en"), with a leaf-name match ranked above a
// mid-path one.
func (h *Hierarchy) Search(query string) []Match {
	if query == "" {
		return nil
	}

	found := fuzzy.Find(query, h.paths)
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{
			Handle:    Handle(m.Index),
			Path:      m.Str,
			Score:     m.Score,
			Positions: m.MatchedIndexes,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		qi, qj := h.matchQuality(out[i], query), h.matchQuality(out[j], query)
		if qi != qj {
			return qi > qj
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		di, dj := pathDepth(out[i].Path), pathDepth(out[j].Path)
		if di != dj {
			return di < dj
		}

		return out[i].Handle < out[j].Handle
	})

	return out
}

// matchQuality buckets matches into tiers: 2 for an exact leaf-name match,
// 1 for an exact match of any other path segment, 0 otherwise.
func (h *Hierarchy) matchQuality(m Match, query string) int {
	sig := h.signals[m.Handle]
	if sig.Name == query {
		return 2
	}
	for _, seg := range strings.Split(m.Path, ".") {
		if seg == query {
			return 1
		}
	}

	return 0
}

func pathDepth(path string) int {
	return strings.Count(path, ".")
}
