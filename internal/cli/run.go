package cli

import (
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-gradebook/internal/cache"
	"github.com/ahrav/go-gradebook/internal/config"
	"github.com/ahrav/go-gradebook/internal/dataset"
	"github.com/ahrav/go-gradebook/internal/domain"
	"github.com/ahrav/go-gradebook/internal/gradebook"
	"github.com/ahrav/go-gradebook/internal/output"
	"github.com/ahrav/go-gradebook/internal/worker"
)

// Generator produces the result of a report request.
type Generator interface {
	Generate(ctx context.Context, req domain.ReportRequest) (domain.Result, error)
}

// LocalGenerator runs the pipeline in process.
type LocalGenerator struct{}

// Generate implements Generator.
func (LocalGenerator) Generate(_ context.Context, req domain.ReportRequest) (domain.Result, error) {
	return gradebook.Generate(&req.Dataset), nil
}

// TemporalGenerator runs the pipeline as a Temporal workflow.
type TemporalGenerator struct {
	Client client.Client
	Config config.TemporalConfig
	// NewRunID returns a unique suffix for each submission.
	NewRunID func() string
}

// Generate implements Generator.
func (g TemporalGenerator) Generate(ctx context.Context, req domain.ReportRequest) (domain.Result, error) {
	return worker.Submit(ctx, g.Client, g.Config, req, g.NewRunID())
}

// Run loads the inputs of inv, obtains the result from the cache or gen,
// writes it to inv.Output and returns the exit code: ExitFailure when the
// result is the invalid weights error, ExitOK otherwise. Errors are returned
// for failures that prevent writing a result.
func Run(ctx context.Context, inv *Invocation, gen Generator, results *cache.ResultCache) (int, error) {
	logger := slog.Default().With("component", "cli")

	ds, err := dataset.Load(ctx, inv.Inputs)
	if err != nil {
		return ExitFailure, fmt.Errorf("failed to load inputs: %w", err)
	}

	digest, err := dataset.Digest(ds)
	if err != nil {
		return ExitFailure, err
	}

	result, hit := results.Get(ctx, digest)
	if !hit {
		result, err = gen.Generate(ctx, domain.ReportRequest{Dataset: *ds, DatasetDigest: digest})
		if err != nil {
			return ExitFailure, err
		}
		results.Put(ctx, digest, result)
	}

	if err := output.WriteFile(inv.Output, result); err != nil {
		return ExitFailure, err
	}

	logger.Info("report written",
		"output", inv.Output,
		"students", len(ds.Students),
		"failed", result.Failed(),
		"cache_hit", hit)

	if result.Failed() {
		return ExitFailure, nil
	}
	return ExitOK, nil
}
