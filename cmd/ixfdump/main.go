// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Command ixfdump decodes IBM PC/IXF export files, printing a schema
// summary (`info`) or converting rows to CSV/JSON (`convert`).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inPath    string
	outPath   string
	outFormat string
	lobFolder string
	fromRow   int
	maxRows   int
	trace     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ixfdump",
		Short: "A PC/IXF export file decoder",
		Long:  "ixfdump decodes IBM DB2 PC/IXF export files for inspection and conversion",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("ixfdump version 0.1.0")
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print a schema summary for one or more IXF files",
		RunE:  runInfo,
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an IXF file's rows to CSV or JSON",
		RunE:  runConvert,
	}

	for _, c := range []*cobra.Command{infoCmd, convertCmd} {
		c.Flags().StringVar(&inPath, "in", "", "input file or directory (required)")
		c.Flags().StringVar(&outPath, "out", "-", "output path, or - for stdout")
		c.Flags().StringVar(&outFormat, "outfmt", "csv", "output format: csv|json")
		c.Flags().StringVar(&lobFolder, "lobFolder", "", "search root for external LOB/XML files")
		c.Flags().IntVar(&fromRow, "fromRow", 0, "skip this many rows before emitting")
		c.Flags().IntVar(&maxRows, "maxRows", 0, "stop after this many emitted rows (0 = unbounded)")
		c.Flags().BoolVar(&trace, "trace", false, "log every record and row at debug level")
		_ = c.MarkFlagRequired("in")
	}

	rootCmd.AddCommand(versionCmd, infoCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isDirectory(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
