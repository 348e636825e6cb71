// meshnormals recalculates vertex normals in Ogre .mesh.xml files from
// their triangle geometry, in place.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arvidr/ogremesh/internal/config"
	"github.com/arvidr/ogremesh/internal/logger"
	"github.com/arvidr/ogremesh/pkg/meshxml"
	"github.com/arvidr/ogremesh/pkg/normals"
)

func main() {
	code := run()
	logger.Sync()
	os.Exit(code)
}

func run() int {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if config.InitConfigRequested() {
		path, err := config.Default().Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return 0
	}

	if flag.NArg() != 1 {
		printUsage()
		return 1
	}
	path := flag.Arg(0)

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)

	mesh, err := meshxml.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Processing.Backup {
		backupPath := path + cfg.Processing.BackupSuffix
		if err := copyFile(path, backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: backing up to %s: %v\n", backupPath, err)
			return 1
		}
		logger.Sugar.Debugw("backup written", "path", backupPath)
	}

	logger.Sugar.Infow("processing mesh",
		"file", path,
		"submeshes", len(mesh.SubMeshes),
		"vertices", mesh.TotalVertexCount(),
		"faces", mesh.TotalFaceCount())

	report, err := normals.Recalculate(mesh, logger.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := meshxml.Save(mesh, path, cfg.Processing.Indent); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printReport(path, report)
	return 0
}

func printReport(path string, r normals.Report) {
	fmt.Printf("%s\n", path)
	fmt.Printf("  submeshes:        %d\n", r.Submeshes)
	fmt.Printf("  faces processed:  %d\n", r.FacesProcessed)
	fmt.Printf("  vertices updated: %d\n", r.VerticesUpdated)
	if r.Warnings() > 0 {
		fmt.Printf("  warnings:         %d (degenerate %d, out-of-range %d, fallback %d)\n",
			r.Warnings(), r.DegenerateFaces, r.OutOfRangeFaces, r.FallbackVertices)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `meshnormals - recalculate vertex normals in Ogre .mesh.xml files

Usage:
  meshnormals [options] <file.mesh.xml>

The file is rewritten in place. Exit status is 0 when the file was parsed,
processed and rewritten (recoverable warnings included), non-zero on fatal
errors. The summary on stdout is advisory only.

Options:`)
	flag.PrintDefaults()
}
