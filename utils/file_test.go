// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package utils

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileLines(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "skip.txt")
	content := "# devices that are not firewalls\nswitch\n\n  ap-  \n#ignored\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileLines(p, "#")
	if err != nil {
		t.Fatalf("FileLines() error = %v", err)
	}
	want := []string{"switch", "ap-"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FileLines() mismatch (-want +got):\n%s", diff)
	}

	if _, err := FileLines(filepath.Join(dir, "missing"), "#"); err == nil {
		t.Errorf("FileLines() expected error for missing file")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "inventory.yml")
	dst := src + ".orig"
	if err := os.WriteFile(src, []byte("fortigates: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst, 0o600); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "fortigates: {}\n" {
		t.Errorf("copied content = %q", string(b))
	}

	if err := CopyFile(dir, dst, 0o600); err == nil {
		t.Errorf("CopyFile() expected error for directory source")
	}
}

func TestFileToBase64(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fg-1.conf")
	content := []byte("#config-version=FGVM64-7.2.6\nconfig system global\nend\n")
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileToBase64(p)
	if err != nil {
		t.Fatalf("FileToBase64() error = %v", err)
	}
	if got != base64.StdEncoding.EncodeToString(content) {
		t.Errorf("FileToBase64() = %q", got)
	}
}

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !DirExists(dir) || DirExists(f) {
		t.Errorf("DirExists() wrong result")
	}
	if !FileExists(f) || FileExists(dir) || FileExists(filepath.Join(dir, "b")) {
		t.Errorf("FileExists() wrong result")
	}
}
