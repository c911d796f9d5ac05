package query

import (
	"fmt"
	"testing"

	"github.com/gallerai/gallerai/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func item(id uint, description string, tags, colors []string) Item {
	return Item{
		Image: models.Image{Model: gorm.Model{ID: id}, Filename: fmt.Sprintf("img-%d.jpg", id)},
		Meta: &models.ImageMetadata{
			ImageID:     id,
			Description: description,
			Tags:        tags,
			Colors:      colors,
			Status:      models.StatusCompleted,
		},
	}
}

func ids(items []Item) []uint {
	out := make([]uint, 0, len(items))
	for _, it := range items {
		out = append(out, it.Image.ID)
	}
	return out
}

func TestSearchMatchesDescriptionAndTags(t *testing.T) {
	items := []Item{
		item(1, "A fluffy cat on a sofa", []string{"cat", "indoor"}, nil),
		item(2, "A mountain road", []string{"road", "CatSkills"}, nil),
		item(3, "A sunset over water", []string{"sunset"}, nil),
		{Image: models.Image{Model: gorm.Model{ID: 4}}}, // still pending, no metadata
	}

	result := Search(items, "CAT", 1, 10)

	assert.Equal(t, []uint{1, 2}, ids(result.Images))
	assert.Equal(t, 2, result.Total)
	assert.False(t, result.HasMore)
}

func TestSearchPagination(t *testing.T) {
	var items []Item
	for i := uint(1); i <= 25; i++ {
		items = append(items, item(i, "beach day", []string{"beach"}, nil))
	}

	page2 := Search(items, "beach", 2, 10)
	require.Len(t, page2.Images, 10)
	assert.Equal(t, uint(11), page2.Images[0].Image.ID)
	assert.Equal(t, uint(20), page2.Images[9].Image.ID)
	assert.Equal(t, 25, page2.Total)
	assert.True(t, page2.HasMore)

	page3 := Search(items, "beach", 3, 10)
	require.Len(t, page3.Images, 5)
	assert.Equal(t, uint(21), page3.Images[0].Image.ID)
	assert.False(t, page3.HasMore)

	page4 := Search(items, "beach", 4, 10)
	assert.Empty(t, page4.Images)
	assert.Equal(t, 25, page4.Total)
	assert.False(t, page4.HasMore)
}

func TestSearchNoMatches(t *testing.T) {
	items := []Item{item(1, "a dog", []string{"dog"}, nil)}

	result := Search(items, "submarine", 1, 10)

	assert.Empty(t, result.Images)
	assert.Equal(t, 0, result.Total)
	assert.False(t, result.HasMore)
}

func TestFilterByColor(t *testing.T) {
	items := []Item{
		item(1, "", nil, []string{"#c80000", "#ffffff"}),
		item(2, "", nil, []string{"#0000c8"}),
		item(3, "", nil, []string{"#C80000"}),
		{Image: models.Image{Model: gorm.Model{ID: 4}}},
	}

	filtered := FilterByColor(items, "#C80000", 20)
	assert.Equal(t, []uint{1, 3}, ids(filtered))

	limited := FilterByColor(items, "#c80000", 1)
	assert.Equal(t, []uint{1}, ids(limited))
}

func TestOverlapScorer(t *testing.T) {
	ref := NewFeatures([]string{"a", "b", "c"}, []string{"#111", "#222"})
	candidate := NewFeatures([]string{"b", "c", "d"}, []string{"#222"})

	// two shared tags and one shared color
	assert.Equal(t, 5, OverlapScorer{}.Score(ref, candidate))
}

func TestOverlapScorerIgnoresDuplicates(t *testing.T) {
	ref := NewFeatures([]string{"a", "b"}, nil)
	candidate := NewFeatures([]string{"b", "b", "B"}, nil)

	assert.Equal(t, 2, OverlapScorer{}.Score(ref, candidate))
}

func TestFindSimilarRanksAndFilters(t *testing.T) {
	ref := &models.ImageMetadata{
		ImageID: 1,
		Tags:    []string{"a", "b", "c"},
		Colors:  []string{"#111111", "#222222"},
	}

	items := []Item{
		item(1, "reference itself", []string{"a", "b", "c"}, []string{"#111111"}),
		item(2, "strong match", []string{"b", "c", "d"}, []string{"#222222"}),
		item(3, "weak match", []string{"a"}, nil),
		item(4, "no overlap", []string{"x"}, []string{"#333333"}),
	}

	similar := FindSimilar(items, ref, DefaultSimilarLimit)

	// score 5 ahead of score 2; the reference and the zero-score item
	// are excluded entirely.
	assert.Equal(t, []uint{2, 3}, ids(similar))
}

func TestFindSimilarTiesKeepScanOrder(t *testing.T) {
	ref := &models.ImageMetadata{ImageID: 99, Tags: []string{"a"}}

	items := []Item{
		item(5, "", []string{"a"}, nil),
		item(6, "", []string{"a"}, nil),
		item(7, "", []string{"a"}, nil),
	}

	similar := FindSimilar(items, ref, 10)
	assert.Equal(t, []uint{5, 6, 7}, ids(similar))
}

func TestFindSimilarHonorsLimit(t *testing.T) {
	ref := &models.ImageMetadata{ImageID: 99, Tags: []string{"a"}}

	var items []Item
	for i := uint(1); i <= 15; i++ {
		items = append(items, item(i, "", []string{"a"}, nil))
	}

	similar := FindSimilar(items, ref, 10)
	assert.Len(t, similar, 10)
}

func TestFindSimilarNormalizesCase(t *testing.T) {
	ref := &models.ImageMetadata{ImageID: 99, Tags: []string{"Dog"}, Colors: []string{"#AABBCC"}}

	items := []Item{item(1, "", []string{"dog"}, []string{"#aabbcc"})}

	similar := FindSimilar(items, ref, 10)
	require.Len(t, similar, 1)
	assert.Equal(t, uint(1), similar[0].Image.ID)
}
