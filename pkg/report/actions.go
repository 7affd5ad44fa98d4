package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

const fallbackName = "biocore_report"

// Actions operates on the raw (pre-render) text of the last successful
// report. Both actions are no-ops until a report has been cached.
type Actions struct {
	analysisName string
	report       string
}

func NewActions() *Actions {
	return &Actions{}
}

// SetReport caches a report for later copy/download. Called once per
// successful run.
func (a *Actions) SetReport(analysisName, report string) {
	a.analysisName = analysisName
	a.report = report
}

// Copy places the cached raw report text on the system clipboard.
func (a *Actions) Copy() error {
	if a.report == "" {
		return nil
	}
	return clipboard.WriteAll(a.report)
}

// Download writes the cached raw report into dir and returns the
// written path. Nothing is written when no report is cached.
func (a *Actions) Download(dir string) (string, error) {
	if a.report == "" {
		return "", nil
	}
	path := filepath.Join(dir, Filename(a.analysisName))
	if err := os.WriteFile(path, []byte(a.report), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Filename derives a markdown filename from an analysis name: lower
// case, every non-alphanumeric rune replaced by an underscore. A blank
// name falls back to a fixed default.
func Filename(analysisName string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(analysisName))

	if slug == "" {
		slug = fallbackName
	}
	return slug + ".md"
}
