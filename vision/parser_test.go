package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONEmbeddedInProse(t *testing.T) {
	raw := `Sure! Here is the analysis you asked for:

{"description": "a cat", "tags": ["cat", "pet"]}

Let me know if you need anything else.`

	result := Parse(raw)

	assert.Equal(t, "a cat", result.Description)
	assert.Equal(t, []string{"cat", "pet"}, result.Tags)
}

func TestParseJSONDefaults(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantDesc string
		wantTags []string
	}{
		{
			name:     "missing description",
			raw:      `{"tags": ["sky"]}`,
			wantDesc: "An image",
			wantTags: []string{"sky"},
		},
		{
			name:     "empty description",
			raw:      `{"description": "", "tags": ["sky"]}`,
			wantDesc: "An image",
			wantTags: []string{"sky"},
		},
		{
			name:     "missing tags",
			raw:      `{"description": "a sunset"}`,
			wantDesc: "a sunset",
			wantTags: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.raw)
			assert.Equal(t, tt.wantDesc, result.Description)
			assert.Equal(t, tt.wantTags, result.Tags)
		})
	}
}

func TestParseJSONCapsTags(t *testing.T) {
	raw := `{"description": "busy scene", "tags": ["a","b","c","d","e","f","g","h","i","j","k","l"]}`

	result := Parse(raw)
	assert.Len(t, result.Tags, 10)
	assert.Equal(t, "a", result.Tags[0])
	assert.Equal(t, "j", result.Tags[9])
}

func TestParseHeuristicLines(t *testing.T) {
	raw := `The image shows a pet.
Description: a dog
Tags: dog, animal, brown`

	result := Parse(raw)

	assert.Equal(t, "a dog", result.Description)
	assert.Equal(t, []string{"dog", "animal", "brown"}, result.Tags)
}

func TestParseHeuristicKeywordsAndQuotes(t *testing.T) {
	raw := `Description: "a mountain lake"
Keywords: "lake", "mountain", "nature"`

	result := Parse(raw)

	assert.Equal(t, "a mountain lake", result.Description)
	assert.Equal(t, []string{"lake", "mountain", "nature"}, result.Tags)
}

func TestParseHeuristicDefaults(t *testing.T) {
	result := Parse("the model refused to answer")

	assert.Equal(t, "An interesting image", result.Description)
	assert.Equal(t, []string{"image", "photo"}, result.Tags)
}

func TestParseMalformedJSONFallsBack(t *testing.T) {
	raw := `{this is not valid json}
Description: a bridge at night
Tags: bridge, night, city`

	result := Parse(raw)

	assert.Equal(t, "a bridge at night", result.Description)
	assert.Equal(t, []string{"bridge", "night", "city"}, result.Tags)
}

func TestParseHeuristicCapsTags(t *testing.T) {
	raw := `Tags: t1, t2, t3, t4, t5, t6, t7, t8, t9, t10, t11, t12`

	result := Parse(raw)
	assert.Len(t, result.Tags, 10)
	assert.Equal(t, "t10", result.Tags[9])
}
