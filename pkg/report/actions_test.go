package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilenameSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ibuprofen vs COX-2!", "ibuprofen_vs_cox_2_.md"},
		{"aspirin", "aspirin.md"},
		{"  A  ", "a.md"},
		{"", "biocore_report.md"},
		{"   ", "biocore_report.md"},
		{"Δ-9 THC", "__9_thc.md"},
	}
	for _, c := range cases {
		if got := Filename(c.name); got != c.want {
			t.Fatalf("Filename(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDownloadWritesRawReport(t *testing.T) {
	dir := t.TempDir()
	a := NewActions()
	a.SetReport("Ibuprofen vs COX-2!", "# Title\n**bold**")

	path, err := a.Download(dir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "ibuprofen_vs_cox_2_.md" {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	// The raw pre-render text is saved, markdown markers intact.
	if string(data) != "# Title\n**bold**" {
		t.Fatalf("saved contents = %q", data)
	}
}

func TestActionsNoOpWithoutReport(t *testing.T) {
	a := NewActions()

	if err := a.Copy(); err != nil {
		t.Fatalf("Copy without report: %v", err)
	}

	dir := t.TempDir()
	path, err := a.Download(dir)
	if err != nil {
		t.Fatalf("Download without report: %v", err)
	}
	if path != "" {
		t.Fatalf("Download wrote %q without a report", path)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("directory not empty: %v", entries)
	}
}
