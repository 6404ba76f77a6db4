package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stmtgen/internal/cli"
)

func batchCmd() *cobra.Command {
	var (
		req        requestFlags
		out        outputFlags
		dir        string
		statements int
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate many statements into a directory",
		Long: `Generate a batch of statements for the same parameters, one file each.

With a seed, statement N uses seed+N, so any single file can be reproduced
with generate --seed. Interrupting a batch keeps every file already written.`,
		Example: `  stmtgen batch --statements 50 --dir ./out --format ofx --seed 7 \
    --start 2024-01-01 --end 2024-12-31 --opening 100000 --count 200 --min 500 --max 50000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := out.validate(false); err != nil {
				return err
			}
			if statements < 1 {
				return fmt.Errorf("--statements must be at least 1, got %d", statements)
			}

			run, err := req.setup(cmd)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			progress := cli.NewBatchProgress(cmd.ErrOrStderr(), statements)
			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx, stop := interrupts.HandleInterrupts(cmd.Context(), func() (int, int) {
				return progress.Done(), statements
			})
			defer stop()

			for i := range statements {
				if ctx.Err() != nil {
					break
				}

				gen := run.generator(uint64(i))
				result, err := gen.Generate(run.request)
				if err != nil {
					return err
				}

				path := filepath.Join(dir, fmt.Sprintf("%s-%03d.%s", prefix, i+1, out.extension()))
				if err := out.writeFile(path, gen.Template(), run.request, result); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				progress.Increment()
			}

			if ctx.Err() != nil {
				slog.Warn("Batch stopped early", "written", progress.Done(), "requested", statements,
					"interrupted", interrupts.WasInterrupted())
				return nil
			}
			progress.Finish()

			slog.Info("Batch complete", "dir", dir, "statements", progress.Done(), "format", out.format)
			return nil
		},
	}

	req.register(cmd)
	out.register(cmd, formatCSV)
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().IntVarP(&statements, "statements", "n", 10, "number of statements to generate")
	cmd.Flags().StringVar(&prefix, "prefix", "statement", "file name prefix")

	return cmd
}
