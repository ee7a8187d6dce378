package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Scav-engeR/ArchiveMaster/internal/engine"
	"github.com/Scav-engeR/ArchiveMaster/internal/engine/adapters"
)

var inspectCommand = &cli.Command{
	Name:  "inspect",
	Usage: "List the members of an archive",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      "archive",
			UsageText: "The archive to inspect",
		},
	},
	Action: func(ctx context.Context, command *cli.Command) error {
		logger := getLogger(ctx)

		path := command.StringArg("archive")
		if path == "" {
			return fmt.Errorf("no archive provided")
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("archive does not exist: %s", path)
		}

		registry := engine.NewRegistry(logger.Named("registry"))
		adapters.RegisterAll(registry)

		adapter, err := registry.ForPath(path)
		if err != nil {
			return err
		}

		logger.Debug("inspecting archive", zap.String("path", path))

		members, err := adapter.List(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}

		files := 0
		for _, member := range members {
			if member.IsDir {
				fmt.Printf("d %12s  %s\n", "-", member.RelPath)
				continue
			}
			files++
			fmt.Printf("- %12d  %s\n", member.Size, member.RelPath)
		}

		fmt.Printf("\n%s: %d member(s), %d file(s), %d bytes on disk\n",
			path, len(members), files, info.Size())
		return nil
	},
}
