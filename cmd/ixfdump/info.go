// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	ixf "github.com/db2ixf/ixf"
	"github.com/db2ixf/ixf/internal/log"
	"github.com/spf13/cobra"
)

// runInfo prints a schema summary: the table descriptor plus, for each
// column, its resolved type name, length and nullability, the way
// IXFTools.py's onTableDef prints a header row of column names followed by
// their types.
func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectInputs(inPath)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	for _, file := range files {
		if err := printInfo(file, out); err != nil {
			fmt.Fprintf(os.Stderr, "ixfdump: %s: %v\n", file, err)
		}
	}
	return nil
}

func printInfo(file string, out io.Writer) error {
	logger := newCLILogger()
	dec, err := ixf.New(file, ixf.Options{LobFolder: lobFolder, Logger: logger})
	if err != nil {
		return err
	}
	defer dec.Close()

	rowCount := 0
	sink := &ixf.Sink{
		OnTableDef: func(t *ixf.TableDescriptor) {
			fmt.Fprintf(out, "table: %s (%d columns)\n", t.Name, len(t.Columns))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "colno\tname\ttype\tlen\tnullable")
			for _, c := range t.Columns {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%v\n", c.Colno, c.Name, ixf.TypeName(c.Type), c.DataLen, c.Nullable)
			}
			tw.Flush()
		},
		OnRow: func(idx int, row ixf.Row) {
			rowCount++
		},
	}

	if err := dec.Decode(sink); err != nil {
		return err
	}
	fmt.Fprintf(out, "rows: %d\n", rowCount)
	for _, w := range dec.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func newCLILogger() log.Logger {
	level := log.LevelInfo
	if trace {
		level = log.LevelDebug
	}
	return log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level))
}
