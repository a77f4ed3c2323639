// Package batch converts every statement of a directory.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/fileutils"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/parser"
	"fjacquet/fsv-csv/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// FileError records why one input file was not converted.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.File), e.Err)
}

// Result summarises a directory conversion.
type Result struct {
	Converted []string    // output files, sorted
	Failed    []FileError // sorted by input file
}

// Count returns the number of files converted.
func (r Result) Count() int {
	return len(r.Converted)
}

// Converter converts the files of a directory with bounded parallelism.
type Converter struct {
	logger    logging.Logger
	workers   int
	extension string
	format    string
}

// NewConverter creates a Converter picking input files by extension (".pdf")
// and writing format ("csv" or "xlsx") outputs with workers goroutines.
func NewConverter(logger logging.Logger, workers int, extension, format string) *Converter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = 1
	}
	return &Converter{
		logger:    logger,
		workers:   workers,
		extension: strings.ToLower(extension),
		format:    format,
	}
}

// FindInputFiles lists the files of inputDir with the configured extension,
// sorted by name. Subdirectories are not searched.
func (c *Converter) FindInputFiles(inputDir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtension(inputDir, c.extension)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	return files, nil
}

// OutputPath returns the output file for inputFile inside outputDir.
func (c *Converter) OutputPath(inputFile, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	return filepath.Join(outputDir, base+common.Extension(c.format))
}

// ConvertDir converts every input file of inputDir into outputDir. A failing
// file is logged and reported in Result.Failed without stopping the others;
// the returned error is reserved for problems with the directories or a
// cancelled context.
func (c *Converter) ConvertDir(ctx context.Context, inputDir, outputDir string, p parser.FileConverter) (Result, error) {
	files, err := c.FindInputFiles(inputDir)
	if err != nil {
		return Result{}, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if len(files) == 0 {
		c.logger.Warn("No supported files found in input directory",
			logging.Field{Key: logging.FieldFile, Value: inputDir})
		return Result{}, nil
	}

	c.logger.Info("Found files for processing",
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	var (
		mu     sync.Mutex
		result Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			output := c.OutputPath(file, outputDir)
			err := p.ConvertToFile(file, output)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.WithError(err).Warn("Failed to convert file",
					logging.Field{Key: logging.FieldInputFile, Value: file},
					logging.Field{Key: logging.FieldReason, Value: parsererror.Reason(err)})
				result.Failed = append(result.Failed, FileError{File: file, Err: err})
				return nil
			}
			result.Converted = append(result.Converted, output)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("batch conversion interrupted: %w", err)
	}

	sort.Strings(result.Converted)
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].File < result.Failed[j].File
	})

	c.logger.Info("Batch conversion finished",
		logging.Field{Key: logging.FieldCount, Value: result.Count()},
		logging.Field{Key: "failed", Value: len(result.Failed)})
	return result, nil
}
