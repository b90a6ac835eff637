// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	ixf "github.com/db2ixf/ixf"
	"github.com/spf13/cobra"
)

func runConvert(cmd *cobra.Command, args []string) error {
	if outFormat != "csv" && outFormat != "json" {
		return fmt.Errorf("unsupported outfmt %q, want csv or json", outFormat)
	}

	files, err := collectInputs(inPath)
	if err != nil {
		return err
	}

	batch := len(files) > 1
	for _, file := range files {
		dest := outputPathFor(file, outPath, outFormat, batch)
		if err := convertFile(file, dest); err != nil {
			fmt.Fprintf(os.Stderr, "ixfdump: %s: %v\n", file, err)
		}
	}
	return nil
}

func convertFile(file, dest string) error {
	var out io.Writer = os.Stdout
	if dest != "-" {
		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	dec, err := ixf.New(file, ixf.Options{
		LobFolder: lobFolder,
		FromRow:   fromRow,
		MaxRows:   maxRows,
		Logger:    newCLILogger(),
	})
	if err != nil {
		return err
	}
	defer dec.Close()

	switch outFormat {
	case "csv":
		return convertCSV(dec, out)
	default:
		return convertJSON(dec, out)
	}
}

func convertCSV(dec *ixf.Decoder, out io.Writer) error {
	w := csv.NewWriter(out)
	var table *ixf.TableDescriptor
	var tableErr error

	sink := &ixf.Sink{
		OnTableDef: func(t *ixf.TableDescriptor) {
			table = t
			header := make([]string, len(t.Columns))
			for i, c := range t.Columns {
				header[i] = c.Name
			}
			if err := w.Write(header); err != nil {
				tableErr = err
			}
		},
		OnRow: func(idx int, row ixf.Row) {
			if tableErr != nil {
				return
			}
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = renderValue(table, i, idx, v)
			}
			if err := w.Write(record); err != nil {
				tableErr = err
			}
		},
	}

	if err := dec.Decode(sink); err != nil {
		return err
	}
	if tableErr != nil {
		return tableErr
	}
	w.Flush()
	return w.Error()
}

// renderValue renders a Value as one CSV cell or JSON string value. Locators
// are rendered as the canonical side-channel identifier (§4.9) rather than
// fetched inline, since neither format has anywhere to put binary LOB bytes.
func renderValue(table *ixf.TableDescriptor, col, row int, v ixf.Value) string {
	if v.Kind == ixf.KindLocator && table != nil && col < len(table.Columns) {
		return ixf.LobIdentifier(table.Name, &table.Columns[col], row)
	}
	return v.String()
}

type jsonRow struct {
	Row    int               `json:"row"`
	Values map[string]string `json:"values"`
}

func convertJSON(dec *ixf.Decoder, out io.Writer) error {
	enc := json.NewEncoder(out)
	var table *ixf.TableDescriptor

	sink := &ixf.Sink{
		OnTableDef: func(t *ixf.TableDescriptor) {
			table = t
			enc.Encode(t)
		},
		OnRow: func(idx int, row ixf.Row) {
			values := make(map[string]string, len(row))
			for i, v := range row {
				name := fmt.Sprintf("col%d", i)
				if table != nil && i < len(table.Columns) {
					name = table.Columns[i].Name
				}
				values[name] = renderValue(table, i, idx, v)
			}
			enc.Encode(jsonRow{Row: idx, Values: values})
		},
	}

	return dec.Decode(sink)
}
