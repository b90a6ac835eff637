// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"
)

// collectInputs expands in into the list of *.ixf files to process,
// mirroring IXFTools.py's batchProcess: a single file decodes by itself, a
// directory walks recursively for every *.ixf file under it.
func collectInputs(in string) ([]string, error) {
	if !isDirectory(in) {
		return []string{in}, nil
	}

	var files []string
	err := filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".ixf") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// outputPathFor resolves the destination for one converted file. With the
// documented out="-" default it writes to stdout, exactly as §6 promises,
// unless batch is true: with more than one input file, "-" can't mean
// "interleave every file into stdout", so it instead derives "<name>.<ext>"
// next to each source, mirroring IXFTools.py's batchProcess writing one
// output file per input.
func outputPathFor(src, out, ext string, batch bool) string {
	if out != "-" || !batch {
		return out
	}
	base := strings.TrimSuffix(src, filepath.Ext(src))
	return base + "." + ext
}
