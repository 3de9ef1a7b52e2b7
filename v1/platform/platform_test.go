// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package platform

import (
	"path/filepath"
	"testing"
)

func TestPathHelpers(t *testing.T) {
	tests := []struct {
		path      string
		fileName  string
		parent    string
		withSlash string
	}{
		{"/a/b/c.txt", "c.txt", "/a/b", "/a/b/c.txt/"},
		{"/a/b/", "b", "/a", "/a/b/"},
		{"a/b", "b", "a", "a/b/"},
		{"name", "name", "", "name/"},
		{"/", "", "/", "/"},
		{"", "", "", ""},
	}
	for _, tc := range tests {
		if got := FileName(tc.path); got != tc.fileName {
			t.Fatalf("FileName(%q) = %q, expected %q", tc.path, got, tc.fileName)
		}
		if got := ParentPath(tc.path); got != tc.parent {
			t.Fatalf("ParentPath(%q) = %q, expected %q", tc.path, got, tc.parent)
		}
		if got := PathWithSlash(tc.path); got != tc.withSlash {
			t.Fatalf("PathWithSlash(%q) = %q, expected %q", tc.path, got, tc.withSlash)
		}
	}
}

func TestOSFSRoundTrip(t *testing.T) {
	fs := OSFS{}
	dir := t.TempDir()

	path := filepath.Join(dir, "data.txt")
	if err := fs.WriteText(path, "hello"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	text, err := fs.ReadText(path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if text != "hello" {
		t.Fatalf("unexpected content %q", text)
	}

	info, err := fs.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Type != FileTypeFile || info.Size != 5 {
		t.Fatalf("unexpected stat %+v", info)
	}

	sub := filepath.Join(dir, "sub")
	if err := fs.CreateDir(sub); err != nil {
		t.Fatalf("CreateDir failed: %v", err)
	}
	info, err = fs.Stat(sub)
	if err != nil || info.Type != FileTypeDir {
		t.Fatalf("expected a directory, got %+v (%v)", info, err)
	}

	names, err := fs.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("unexpected listing %v", names)
	}

	moved := filepath.Join(dir, "moved.txt")
	if err := fs.Rename(path, moved); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if err := fs.Delete(moved); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	info, err = fs.Stat(moved)
	if err != nil {
		t.Fatalf("Stat of a missing file must not error: %v", err)
	}
	if info.Type != FileTypeNone {
		t.Fatalf("expected FileTypeNone, got %+v", info)
	}
}

func TestOSFSErrors(t *testing.T) {
	fs := OSFS{}
	_, err := fs.ReadBytes(filepath.Join(t.TempDir(), "missing"))
	if !IsFileError(err) {
		t.Fatalf("expected a file error, got %v", err)
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	a := SystemClock.TickCount()
	b := SystemClock.TickCount()
	if b < a {
		t.Fatalf("tick count went backwards: %d then %d", a, b)
	}

	now := SystemClock.CurrentTime()
	if now.Year < 2020 {
		t.Fatalf("implausible year %d", now.Year)
	}
	if SystemClock.TimeMillis() <= 0 {
		t.Fatal("wall clock must be positive")
	}
}
