// Package runner wires a parsed merge job to the engine: it validates the
// job document, guards caller-level preconditions, and executes the merge
// with every built-in format adapter registered.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	v1 "github.com/Scav-engeR/ArchiveMaster/apis/v1"
	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
	"github.com/Scav-engeR/ArchiveMaster/internal/engine/adapters"
)

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

// ParseMergeJob parses a YAML or JSON merge job document and validates it.
func ParseMergeJob(data []byte) (v1.MergeJob, error) {
	var job v1.MergeJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return v1.MergeJob{}, fmt.Errorf("failed to unmarshal job data: %w", err)
	}

	if err := defaultValidator.Struct(job); err != nil {
		return v1.MergeJob{}, fmt.Errorf("failed to validate job: %w", err)
	}

	return job, nil
}

// OutputExistsError is the caller-level precondition failure raised before
// the engine is ever invoked: the output path already exists and
// overwriting was not requested.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("output file already exists: %s (pass overwrite to replace it)", e.Path)
}

// EnsureOutputWritable enforces the output preconditions shared by every
// collaborator: the parent directory exists (creating it if needed) and
// the output file does not exist unless overwrite is set.
func EnsureOutputWritable(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return &OutputExistsError{Path: path}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// Runner executes one merge job.
type Runner struct {
	logger *zap.Logger
	job    v1.MergeJob
	merger *engine.Merger
}

func New(logger *zap.Logger, job v1.MergeJob) (*Runner, error) {
	logger.Info("creating runner", zap.String("job_name", job.Metadata.Name))

	registry := engine.NewRegistry(logger.Named("registry"))
	adapters.RegisterAll(registry)

	return &Runner{
		logger: logger,
		job:    job,
		merger: engine.NewMerger(logger.Named("merger"), registry),
	}, nil
}

// Run validates the job's filesystem preconditions, executes the merge and
// logs the result summary.
func (r *Runner) Run(ctx context.Context) (engine.MergeResult, error) {
	spec, err := r.buildSpec()
	if err != nil {
		return engine.MergeResult{}, err
	}

	for _, input := range spec.Inputs {
		if _, err := os.Stat(input); err != nil {
			return engine.MergeResult{}, fmt.Errorf("input archive does not exist: %s", input)
		}
	}

	if err := EnsureOutputWritable(spec.Output, r.job.Spec.Overwrite); err != nil {
		return engine.MergeResult{}, err
	}

	result, err := r.merger.Merge(ctx, spec)
	if err != nil {
		return engine.MergeResult{}, fmt.Errorf("failed to run merge job %s: %w", r.job.Metadata.Name, err)
	}

	r.logger.Info("job complete",
		zap.String("job_name", r.job.Metadata.Name),
		zap.String("output", result.OutputPath),
		zap.Int("files", result.ExtractedFiles),
		zap.Int64("bytes", result.OutputSizeBytes),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (r *Runner) buildSpec() (engine.MergeSpec, error) {
	spec := engine.MergeSpec{
		Inputs: r.job.Spec.Inputs,
		Output: r.job.Spec.Output,
		Level:  r.job.Spec.Level,
		OnProgress: func(processed, total int) {
			r.logger.Debug("merge progress",
				zap.Int("processed", processed),
				zap.Int("total", total))
		},
	}

	if r.job.Spec.Format != "" {
		format, err := engine.ParseFormat(r.job.Spec.Format)
		if err != nil {
			return engine.MergeSpec{}, err
		}
		spec.Format = format
	}
	if r.job.Spec.Compression != "" {
		spec.Compression = engine.CompressionKind(r.job.Spec.Compression)
	}

	return spec, nil
}
