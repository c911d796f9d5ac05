package query

import (
	"sort"
	"strings"

	"github.com/gallerai/gallerai/models"
)

// DefaultSimilarLimit bounds similarity results when the caller does not
// ask for a specific count.
const DefaultSimilarLimit = 10

// Features is the comparable shape of an image's metadata: its tag and
// color sets, lowercase-normalized. Duplicates collapse, so repeated
// tags never inflate a score.
type Features struct {
	Tags   map[string]struct{}
	Colors map[string]struct{}
}

func NewFeatures(tags, colors []string) Features {
	return Features{
		Tags:   toSet(tags),
		Colors: toSet(colors),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// Scorer ranks a candidate against a reference. The engine only depends
// on this interface, so the heuristic can be swapped without touching
// the ranking contract.
type Scorer interface {
	Score(ref, candidate Features) int
}

// OverlapScorer counts shared tags and shared colors; tags weigh double.
type OverlapScorer struct{}

func (OverlapScorer) Score(ref, candidate Features) int {
	return 2*intersectionSize(ref.Tags, candidate.Tags) + intersectionSize(ref.Colors, candidate.Colors)
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// FindSimilar ranks items against the reference metadata with the
// default overlap scorer.
func FindSimilar(items []Item, ref *models.ImageMetadata, limit int) []Item {
	return FindSimilarWith(items, ref, limit, OverlapScorer{})
}

// FindSimilarWith drops the reference image itself and every zero-score
// candidate, sorts the rest by descending score (ties keep scan order)
// and returns the top limit items.
func FindSimilarWith(items []Item, ref *models.ImageMetadata, limit int, scorer Scorer) []Item {
	refFeatures := NewFeatures(ref.Tags, ref.Colors)

	type scoredItem struct {
		item  Item
		score int
	}

	var ranked []scoredItem
	for _, it := range items {
		if it.Meta == nil || it.Image.ID == ref.ImageID {
			continue
		}
		score := scorer.Score(refFeatures, NewFeatures(it.Meta.Tags, it.Meta.Colors))
		if score > 0 {
			ranked = append(ranked, scoredItem{item: it, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]Item, 0, len(ranked))
	for _, s := range ranked {
		result = append(result, s.item)
	}

	return result
}
