package vision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const analyzerModel = "gemini-2.5-flash"

const analysisPrompt = `Analyze this image and provide:
1. A single descriptive sentence about what you see
2. 5-10 relevant tags/keywords (single words, comma-separated)

Format your response as JSON:
{
  "description": "A single sentence describing the image",
  "tags": ["tag1", "tag2", "tag3", "tag4", "tag5"]
}`

// Analyzer asks the Gemini vision model to describe and tag an image.
// The raw model text is returned as-is; see Parse for interpretation.
type Analyzer struct {
	client *genai.Client
}

func NewAnalyzer(ctx context.Context) (*Analyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Analyzer{client: client}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, data []byte) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(analysisPrompt),
		genai.NewPartFromBytes(data, http.DetectContentType(data)),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := a.client.Models.GenerateContent(ctx, analyzerModel, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", errors.New("empty analyzer response")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	if sb.Len() == 0 {
		return "", errors.New("no text in analyzer response")
	}

	return sb.String(), nil
}
