package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw event into an output event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

const (
	minRetryDelay = 200 * time.Millisecond
	maxRetryDelay = 5 * time.Second
)

// Pipeline moves bulletin documents from the source to the sink one batch at
// a time. Offsets are committed only after the batch's records are loaded;
// documents that fail to transform are committed straight away and dropped.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
	workers     int
}

// New creates a Pipeline. Up to workers documents of a batch are transformed
// concurrently.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize, workers int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		workers:     max(workers, 1),
	}
}

// Ready reports whether the pipeline has loaded at least one batch.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// CheckReadiness implements the readiness probe.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not loaded any records yet")
	}
	return nil
}

// Run processes batches until ctx is cancelled. Source and sink failures are
// retried with exponential backoff; Run itself only returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "workers", p.workers)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	retry := retryDelay{next: minRetryDelay}
	for ctx.Err() == nil {
		if err := p.runBatch(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("batch failed", "error", err, "retry_in", retry.next)
			if !retry.wait(ctx) {
				break
			}
			continue
		}
		retry.reset()
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// runBatch performs one extract, transform, load and commit cycle.
func (p *Pipeline) runBatch(ctx context.Context) error {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("extract batch: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}
	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	results := p.transformAll(ctx, batch)

	var (
		records []domain.OutputEvent
		sources []domain.RawEvent
	)
	for i, res := range results {
		raw := batch[i]
		if res.err != nil {
			p.logger.Warn("transform failed, skipping document",
				"error", res.err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		records = append(records, res.out)
		sources = append(sources, raw)
	}
	if len(records) == 0 {
		return nil
	}

	if err := p.loader.LoadBatch(ctx, records); err != nil {
		return fmt.Errorf("load batch: %w", err)
	}
	p.metrics.MessagesProduced.Add(float64(len(records)))
	for _, raw := range sources {
		p.commit(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return nil
}

type transformResult struct {
	out domain.OutputEvent
	err error
}

// transformAll runs the transformer over the batch with at most p.workers
// documents in flight. Results keep the batch order.
func (p *Pipeline) transformAll(ctx context.Context, batch []domain.RawEvent) []transformResult {
	results := make([]transformResult, len(batch))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, raw := range batch {
		g.Go(func() error {
			out, err := p.transformer.Transform(ctx, raw)
			results[i] = transformResult{out: out, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// retryDelay doubles from minRetryDelay up to maxRetryDelay.
type retryDelay struct {
	next time.Duration
}

func (r *retryDelay) reset() { r.next = minRetryDelay }

// wait sleeps for the current delay and doubles it. It returns false if ctx
// ends first.
func (r *retryDelay) wait(ctx context.Context) bool {
	timer := time.NewTimer(r.next)
	defer timer.Stop()

	r.next = min(r.next*2, maxRetryDelay)
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
