// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package inventory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	fgerrors "github.com/fgfleet/fgfleet/errors"
	"github.com/fgfleet/fgfleet/utils"
)

var inventoryExts = map[string]struct{}{
	".yml":  {},
	".yaml": {},
	".json": {},
}

// ListFiles returns the inventory files (yml, yaml, json) in dir, sorted by name.
func ListFiles(dir string) ([]string, error) {
	p, err := utils.ResolvePath(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory directory %s: %v", fgerrors.ErrFileNotFound, p, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := inventoryExts[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			files = append(files, filepath.Join(p, e.Name()))
		}
	}

	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no inventory files in %s", fgerrors.ErrFileNotFound, p)
	}

	return files, nil
}

// SelectFile lists the inventory files of dir on out and reads the number of
// the chosen file from in.
func SelectFile(dir string, in io.Reader, out io.Writer) (string, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(out, "Inventory files in %s:\n", dir)
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, filepath.Base(f))
	}
	fmt.Fprintf(out, "Select file [1-%d]: ", len(files))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("%w: no selection: %v", fgerrors.ErrIncorrectInput, err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(utils.StripNonPrintChars(line)))
	if err != nil || n < 1 || n > len(files) {
		return "", fmt.Errorf("%w: invalid selection %q", fgerrors.ErrIncorrectInput, strings.TrimSpace(line))
	}

	return files[n-1], nil
}
