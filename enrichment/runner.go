package enrichment

import (
	"context"
	"log"
	"sync"

	"github.com/gallerai/gallerai/imaging"
	"github.com/gallerai/gallerai/models"
	"github.com/gallerai/gallerai/vision"
)

const failedDescription = "AI processing failed"

// Analyzer produces the raw vision model output for an image.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (string, error)
}

// MetadataStore persists exactly one metadata row per enrichment job.
type MetadataStore interface {
	CreateMetadata(meta *models.ImageMetadata) error
}

// Job is one image to enrich. Jobs carry the original bytes so the
// runner never goes back to blob storage.
type Job struct {
	ImageID uint
	UserID  uint
	Image   []byte
}

// Runner enriches uploaded images on a fixed worker pool, detached from
// the request that queued them. Every job ends in exactly one metadata
// row, completed or failed; no error ever travels back to the uploader
// and nothing is retried.
type Runner struct {
	store    MetadataStore
	analyzer Analyzer
	jobs     chan Job
	wg       sync.WaitGroup
}

func NewRunner(store MetadataStore, analyzer Analyzer, workers, queueSize int) *Runner {
	if workers < 1 {
		workers = 1
	}

	r := &Runner{
		store:    store,
		analyzer: analyzer,
		jobs:     make(chan Job, queueSize),
	}

	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}

	return r
}

// Enqueue hands an image to the pool and returns immediately. The
// outcome is only observable on the image's metadata row.
func (r *Runner) Enqueue(job Job) {
	r.jobs <- job
}

// Stop drains queued jobs and waits for in-flight ones to finish.
func (r *Runner) Stop() {
	close(r.jobs)
	r.wg.Wait()
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for job := range r.jobs {
		r.process(job)
	}
}

func (r *Runner) process(job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("enrichment panic for image %d: %v", job.ImageID, rec)
		}
	}()

	meta := r.buildMetadata(job)
	if err := r.store.CreateMetadata(meta); err != nil {
		log.Printf("failed to save metadata for image %d: %v", job.ImageID, err)
		return
	}

	log.Printf("enrichment %s for image %d", meta.Status, job.ImageID)
}

func (r *Runner) buildMetadata(job Job) *models.ImageMetadata {
	meta := &models.ImageMetadata{
		ImageID: job.ImageID,
		UserID:  job.UserID,
	}

	raw, err := r.analyzer.Analyze(context.Background(), job.Image)
	if err != nil {
		// Analyzer failure is total: colors are not attempted either.
		log.Printf("analyzer error for image %d: %v", job.ImageID, err)
		meta.Status = models.StatusFailed
		meta.Description = failedDescription
		meta.Tags = []string{}
		meta.Colors = []string{}
		return meta
	}

	analysis := vision.Parse(raw)
	meta.Status = models.StatusCompleted
	meta.Description = analysis.Description
	meta.Tags = analysis.Tags
	meta.Colors = imaging.ExtractColors(job.Image, imaging.DefaultColorCount)

	return meta
}
