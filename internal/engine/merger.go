package engine

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// MergeSpec describes one merge operation: an ordered list of input
// archives, the output container, and its encoding parameters.
type MergeSpec struct {
	Inputs      []string
	Output      string
	Format      Format
	Compression CompressionKind
	// Level is the deflate level (1-9) for ZIP output. Zero selects the
	// default level.
	Level int
	// OnProgress, when set, is invoked after each input archive with the
	// cumulative processed-member count and the probed total.
	OnProgress ProgressFunc
}

// DefaultDeflateLevel is used for ZIP output when no level is requested.
const DefaultDeflateLevel = 6

func (s MergeSpec) withDefaults() MergeSpec {
	if s.Format == "" {
		s.Format = FormatZIP
	}
	if s.Compression == "" {
		s.Compression = s.Format.DefaultCompression()
	}
	if s.Level == 0 {
		s.Level = DefaultDeflateLevel
	}
	return s
}

// extractedFileRecord tracks one non-directory member materialized in the
// extraction root, tagged with the input it came from. Records arrive in
// input-list order, then per-archive listing order.
type extractedFileRecord struct {
	inputIndex int
	relPath    string
	absPath    string
}

// Merger merges input archives into a single output archive. Each Merge
// call is a single linear pipeline: probe, extract, manifest, write. Any
// adapter failure aborts the whole operation; nothing is retried.
type Merger struct {
	registry *Registry
	logger   *zap.Logger
}

func NewMerger(logger *zap.Logger, registry *Registry) *Merger {
	return &Merger{registry: registry, logger: logger}
}

// Merge extracts every input into a fresh extraction root, resolves path
// collisions (the last extracted occurrence wins), and re-encodes the
// unified file set under spec.Format. The extraction root is released on
// every exit path. Cancellation is cooperative: the context is checked
// between input archives only, and the write phase always runs to
// completion or failure once started.
func (m *Merger) Merge(ctx context.Context, spec MergeSpec) (MergeResult, error) {
	spec = spec.withDefaults()
	start := time.Now()

	if len(spec.Inputs) == 0 {
		return MergeResult{}, fmt.Errorf("no input archives provided")
	}

	// Resolve every adapter up front so an unsupported extension aborts
	// before anything is extracted.
	inputAdapters := make([]Adapter, len(spec.Inputs))
	for i, input := range spec.Inputs {
		adapter, err := m.registry.ForPath(input)
		if err != nil {
			return MergeResult{}, err
		}
		inputAdapters[i] = adapter
	}
	outputAdapter, err := m.registry.ForExtension(spec.Format.Extension())
	if err != nil {
		return MergeResult{}, err
	}

	// Probing: the total is used only for progress reporting.
	total := 0
	for i, input := range spec.Inputs {
		n, err := inputAdapters[i].Count(ctx, input)
		if err != nil {
			return MergeResult{}, err
		}
		total += n
	}
	tracker := newProgressTracker(total, spec.OnProgress)
	m.logger.Info("probed inputs",
		zap.Int("archives", len(spec.Inputs)),
		zap.Int("members", total))

	ws, err := newWorkspace()
	if err != nil {
		return MergeResult{}, err
	}
	defer ws.Release()

	// Extracting: sequential, in input-list order.
	var records []extractedFileRecord
	for i, input := range spec.Inputs {
		if err := ctx.Err(); err != nil {
			return MergeResult{}, fmt.Errorf("merge cancelled before %s: %w", input, err)
		}

		relPaths, err := inputAdapters[i].Extract(ctx, input, ws.Root())
		if err != nil {
			return MergeResult{}, err
		}
		for _, rel := range relPaths {
			records = append(records, extractedFileRecord{
				inputIndex: i,
				relPath:    rel,
				absPath:    joinUnderRoot(ws.Root(), rel),
			})
		}
		tracker.Add(len(relPaths))
		m.logger.Debug("extracted input",
			zap.String("archive", input),
			zap.Int("files", len(relPaths)))
	}

	manifest := buildManifest(records)
	m.logger.Info("built manifest", zap.Int("files", len(manifest)))

	// Writing: not cancellable once started.
	if err := outputAdapter.Write(ctx, spec.Output, ws.Root(), manifest, WriteOptions{
		Format:      spec.Format,
		Compression: spec.Compression,
		Level:       spec.Level,
	}); err != nil {
		return MergeResult{}, err
	}

	stat, err := os.Stat(spec.Output)
	if err != nil {
		return MergeResult{}, &WriteError{Path: spec.Output, Cause: err}
	}

	result := MergeResult{
		OutputPath:      spec.Output,
		InputArchives:   len(spec.Inputs),
		ExtractedFiles:  len(manifest),
		Elapsed:         time.Since(start),
		OutputSizeBytes: stat.Size(),
	}
	m.logger.Info("merge complete",
		zap.String("output", result.OutputPath),
		zap.Int("files", result.ExtractedFiles),
		zap.Int64("bytes", result.OutputSizeBytes),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

// buildManifest deduplicates records by relative path, keeps only paths
// whose file still exists on disk (a member listed but missing after
// extraction is silently excluded), and sorts the result byte-wise for a
// deterministic output. Later inputs already overwrote earlier files at
// the same temp path, so presence on disk is the entire collision policy.
func buildManifest(records []extractedFileRecord) []string {
	unique := lo.UniqBy(records, func(r extractedFileRecord) string {
		return r.relPath
	})

	manifest := make([]string, 0, len(unique))
	for _, r := range unique {
		if _, err := os.Stat(r.absPath); err != nil {
			continue
		}
		manifest = append(manifest, r.relPath)
	}
	sort.Strings(manifest)
	return manifest
}
