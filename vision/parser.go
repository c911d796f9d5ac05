package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultDescription  = "An image"
	fallbackDescription = "An interesting image"
	maxTags             = 10
)

var fallbackTags = []string{"image", "photo"}

// Analysis is the structured result of a vision model response.
type Analysis struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type parseStrategy func(raw string) (Analysis, error)

// Ordered strategies: strict JSON extraction first, then a line-based
// heuristic that never fails. New strategies slot in between.
var strategies = []parseStrategy{parseStructured, parseHeuristic}

// Parse interprets the model's free-form text. The upstream format is
// only loosely structured, so parsing degrades gracefully instead of
// erroring. Tags are capped at 10 entries.
func Parse(raw string) Analysis {
	var result Analysis
	for _, strategy := range strategies {
		parsed, err := strategy(raw)
		if err != nil {
			continue
		}
		result = parsed
		break
	}

	if len(result.Tags) > maxTags {
		result.Tags = result.Tags[:maxTags]
	}

	return result
}

// parseStructured extracts the span between the first '{' and the last
// '}' and decodes it as a {description, tags} object.
func parseStructured(raw string) (Analysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return Analysis{}, errors.New("no JSON object in response")
	}

	var result Analysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal analysis: %w", err)
	}

	if result.Description == "" {
		result.Description = defaultDescription
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}

	return result, nil
}

// parseHeuristic scans line by line for "description" and "tags"/
// "keywords" markers. It always succeeds, falling back to generic
// values when neither marker is present.
func parseHeuristic(raw string) (Analysis, error) {
	result := Analysis{
		Description: fallbackDescription,
		Tags:        append([]string(nil), fallbackTags...),
	}

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "description"):
			result.Description = stripQuotes(afterColon(line))
		case strings.Contains(lower, "tags"), strings.Contains(lower, "keywords"):
			var tags []string
			for _, tag := range strings.Split(afterColon(line), ",") {
				tags = append(tags, stripQuotes(tag))
			}
			result.Tags = tags
		}
	}

	if len(result.Tags) > maxTags {
		result.Tags = result.Tags[:maxTags]
	}

	return result, nil
}

// afterColon returns the text after the first colon, or the whole line
// when there is none.
func afterColon(line string) string {
	if i := strings.Index(line, ":"); i >= 0 {
		return line[i+1:]
	}
	return line
}

func stripQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
