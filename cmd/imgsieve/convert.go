package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"imgsieve/internal/common"
	"imgsieve/internal/config"
	"imgsieve/internal/convert"
)

func convertCmd() *cobra.Command {
	var opts convert.Options

	cmd := &cobra.Command{
		Use:   "convert <path>",
		Short: "Convert WebP images to JPEG",
		Long: `Convert turns WebP files into JPEGs so they qualify for sorting, which
only accepts jpg/jpeg/png/bmp. The path may be a single .webp file or a
directory of them. Existing JPEGs are never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConvert(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "output directory (default: alongside each source)")
	cmd.Flags().IntVarP(&opts.Quality, "quality", "q", convert.DefaultQuality, "JPEG quality (1-100)")
	cmd.Flags().IntVar(&opts.MaxWidth, "max-width", 0, "scale images wider than this down (0 disables)")
	cmd.Flags().BoolVarP(&opts.RemoveOriginal, "remove", "r", false, "remove WebP originals after conversion")
	cmd.Flags().BoolVar(&opts.Recursive, "recursive", false, "descend into subdirectories")

	return cmd
}

func runConvert(path string, opts convert.Options) error {
	if opts.OutputDir != "" {
		opts.OutputDir = config.ExpandPath(opts.OutputDir)
		if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	files, err := convert.Find(config.ExpandPath(path), opts.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No WebP files found")
		return nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Converting"),
	)

	converted, failed := 0, 0
	for _, src := range files {
		dest, convErr := convert.File(src, opts)
		_ = bar.Add(1)
		if convErr != nil {
			failed++
			common.LogError(convErr, "conversion failed", common.Fields{"file": src})
			continue
		}
		converted++
		common.LogDebug("converted", common.Fields{"from": src, "to": dest})
	}

	fmt.Printf("\nConverted %d file(s), %d failed\n", converted, failed)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}
