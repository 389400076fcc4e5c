// Package convert turns WebP images into JPEGs so they pass the sorter's
// fixed extension allow-list.
package convert

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/webp"
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 95

// Options controls a conversion run.
type Options struct {
	// OutputDir receives the JPEGs; empty writes them next to the sources.
	OutputDir string
	// Quality is the JPEG quality (1-100); zero means DefaultQuality.
	Quality int
	// MaxWidth scales wider images down to this width, keeping aspect
	// ratio. Zero disables scaling.
	MaxWidth int
	// RemoveOriginal deletes each WebP file after a successful conversion.
	RemoveOriginal bool
	// Recursive descends into subdirectories when finding files.
	Recursive bool
}

func (o Options) quality() int {
	if o.Quality <= 0 {
		return DefaultQuality
	}
	return o.Quality
}

// Find collects the WebP files under path, which may itself be a single
// WebP file. The result is sorted by filepath.WalkDir order.
func Find(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isWebP(path) {
			return nil, fmt.Errorf("%s is not a webp file", path)
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && p != path {
				return fs.SkipDir
			}
			return nil
		}
		if isWebP(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".webp")
}

// File converts one WebP file and returns the JPEG path it wrote. A JPEG
// already present at the target path is never overwritten.
func File(src string, opts Options) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	img, err := webp.Decode(in)
	_ = in.Close()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", src, err)
	}

	img = flatten(img)
	if opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = resize.Resize(uint(opts.MaxWidth), 0, img, resize.Lanczos3)
	}

	dest := targetPath(src, opts.OutputDir)
	if err := writeJPEG(dest, img, opts.quality()); err != nil {
		return "", err
	}

	if opts.RemoveOriginal {
		if err := os.Remove(src); err != nil {
			return dest, fmt.Errorf("converted, but failed to remove %s: %w", src, err)
		}
	}
	return dest, nil
}

// targetPath swaps the extension for .jpg, placing the result in outputDir
// when one is given.
func targetPath(src, outputDir string) string {
	name := filepath.Base(src)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outputDir, name)
}

// flatten composites an image onto a white background, since JPEG has no
// alpha channel.
func flatten(img image.Image) image.Image {
	if opaque(img) {
		return img
	}
	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
	return flat
}

func opaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}

func writeJPEG(dest string, img image.Image, quality int) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("refusing to overwrite %s", dest)
		}
		return err
	}

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: quality}); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed to encode %s: %w", dest, err)
	}
	return out.Close()
}
