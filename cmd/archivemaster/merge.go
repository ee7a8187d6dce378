package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
	"github.com/Scav-engeR/ArchiveMaster/internal/engine/adapters"
	"github.com/Scav-engeR/ArchiveMaster/internal/runner"
)

var mergeCommand = &cli.Command{
	Name:      "merge",
	Usage:     "Merge archives into a single output archive",
	ArgsUsage: "ARCHIVE [ARCHIVE...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Path of the merged archive to create",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "zip",
			Usage:   "Output format (zip, tar, tar.gz, tar.bz2, tar.zst)",
		},
		&cli.StringFlag{
			Name:    "compression",
			Aliases: []string{"c"},
			Usage:   "Compression kind, defaults to the format's native one",
		},
		&cli.IntFlag{
			Name:    "level",
			Aliases: []string{"L"},
			Value:   engine.DefaultDeflateLevel,
			Usage:   "Deflate level for zip output (1-9)",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Overwrite the output file if it already exists",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print the merge summary as JSON",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		inputs := command.Args().Slice()
		if len(inputs) == 0 {
			return fmt.Errorf("no input archives provided")
		}

		for _, input := range inputs {
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input archive does not exist: %s", input)
			}
		}

		format, err := engine.ParseFormat(command.String("format"))
		if err != nil {
			return err
		}

		output := command.String("output")
		if err := runner.EnsureOutputWritable(output, command.Bool("force")); err != nil {
			return err
		}

		registry := engine.NewRegistry(logger.Named("registry"))
		adapters.RegisterAll(registry)

		spec := engine.MergeSpec{
			Inputs:      inputs,
			Output:      output,
			Format:      format,
			Compression: engine.CompressionKind(command.String("compression")),
			Level:       int(command.Int("level")),
		}
		if isInteractive(ctx) {
			spec.OnProgress = renderProgress
		}

		merger := engine.NewMerger(logger.Named("merger"), registry)
		result, err := merger.Merge(ctx, spec)
		if isInteractive(ctx) {
			fmt.Fprintln(os.Stderr)
		}
		if err != nil {
			return fmt.Errorf("merge failed: %w", err)
		}

		logger.Debug("merge complete", zap.String("output", result.OutputPath))

		if command.Bool("json") {
			return printResultJSON(result)
		}

		fmt.Printf("merged %d archive(s) into %s\n", result.InputArchives, result.OutputPath)
		fmt.Printf("files: %d\n", result.ExtractedFiles)
		fmt.Printf("size: %d bytes\n", result.OutputSizeBytes)
		fmt.Printf("elapsed: %.2fs\n", result.ElapsedSeconds())
		return nil
	},
}

// renderProgress redraws a single progress line on stderr so it does not
// interleave with the summary printed on stdout.
func renderProgress(processed, total int) {
	percent := 100.0
	if total > 0 {
		percent = float64(processed) / float64(total) * 100
	}
	fmt.Fprintf(os.Stderr, "\rextracting: %d/%d files (%.0f%%)", processed, total, percent)
}

func printResultJSON(result engine.MergeResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
