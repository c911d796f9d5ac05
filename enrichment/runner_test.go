package enrichment

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/gallerai/gallerai/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	raw string
	err error
}

func (a *fakeAnalyzer) Analyze(_ context.Context, _ []byte) (string, error) {
	return a.raw, a.err
}

type fakeStore struct {
	mu   sync.Mutex
	rows []models.ImageMetadata
	err  error
}

func (s *fakeStore) CreateMetadata(meta *models.ImageMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, *meta)
	return nil
}

func (s *fakeStore) all() []models.ImageMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ImageMetadata(nil), s.rows...)
}

func testImage(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRunnerCompletesJob(t *testing.T) {
	store := &fakeStore{}
	analyzer := &fakeAnalyzer{raw: `{"description": "a gray square", "tags": ["gray", "square"]}`}

	runner := NewRunner(store, analyzer, 1, 4)
	runner.Enqueue(Job{ImageID: 7, UserID: 3, Image: testImage(t)})
	runner.Stop()

	rows := store.all()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, uint(7), row.ImageID)
	assert.Equal(t, uint(3), row.UserID)
	assert.Equal(t, models.StatusCompleted, row.Status)
	assert.Equal(t, "a gray square", row.Description)
	assert.Equal(t, []string{"gray", "square"}, row.Tags)
	assert.Equal(t, []string{"#808080", "#ffffff", "#000000"}, row.Colors)
}

func TestRunnerRecordsAnalyzerFailure(t *testing.T) {
	store := &fakeStore{}
	analyzer := &fakeAnalyzer{err: errors.New("quota exceeded")}

	runner := NewRunner(store, analyzer, 1, 4)
	runner.Enqueue(Job{ImageID: 9, UserID: 3, Image: testImage(t)})
	runner.Stop()

	rows := store.all()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, models.StatusFailed, row.Status)
	assert.Equal(t, "AI processing failed", row.Description)
	assert.Empty(t, row.Tags)
	assert.Empty(t, row.Colors)
}

func TestRunnerToleratesMalformedAnalyzerOutput(t *testing.T) {
	store := &fakeStore{}
	analyzer := &fakeAnalyzer{raw: "I cannot produce JSON today"}

	runner := NewRunner(store, analyzer, 1, 4)
	runner.Enqueue(Job{ImageID: 11, UserID: 3, Image: testImage(t)})
	runner.Stop()

	rows := store.all()
	require.Len(t, rows, 1)

	// Unparseable output still completes, with heuristic defaults.
	row := rows[0]
	assert.Equal(t, models.StatusCompleted, row.Status)
	assert.Equal(t, "An interesting image", row.Description)
	assert.Equal(t, []string{"image", "photo"}, row.Tags)
}

func TestRunnerOneRowPerJob(t *testing.T) {
	store := &fakeStore{}
	analyzer := &fakeAnalyzer{raw: `{"description": "d", "tags": ["t"]}`}

	runner := NewRunner(store, analyzer, 3, 8)
	img := testImage(t)
	for i := uint(1); i <= 5; i++ {
		runner.Enqueue(Job{ImageID: i, UserID: 1, Image: img})
	}
	runner.Stop()

	rows := store.all()
	require.Len(t, rows, 5)

	seen := make(map[uint]bool)
	for _, row := range rows {
		assert.False(t, seen[row.ImageID], "image %d written twice", row.ImageID)
		seen[row.ImageID] = true
		assert.Contains(t, []string{models.StatusCompleted, models.StatusFailed}, row.Status)
	}
}

func TestRunnerSurvivesStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	analyzer := &fakeAnalyzer{raw: `{"description": "d", "tags": []}`}

	runner := NewRunner(store, analyzer, 1, 4)
	runner.Enqueue(Job{ImageID: 1, UserID: 1, Image: testImage(t)})
	runner.Stop()

	assert.Empty(t, store.all())
}
