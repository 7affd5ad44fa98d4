package form

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormState holds the raw user-supplied values for one analysis run.
// It is only ever written by input handling; the network layer never
// touches it.
type FormState struct {
	AnalysisName string
	Description  string

	// The compound may be given by free-text name, by PubChem CID, or
	// both. At least one is required; when both are present the CID wins
	// (see BuildPayload).
	CompoundName string
	CompoundID   string

	// 4-character RCSB PDB accession, case-insensitive on input.
	PDBID string

	// Optional auxiliary payloads, each either blank or a valid JSON
	// document pasted/loaded as text.
	DockingJSON   string
	SwissDockJSON string
	PyMOLJSON     string

	WebhookURL string
}

// Validate collects every violation in f. All rules are evaluated
// independently; an empty result means the form is safe to submit.
func Validate(f FormState) []string {
	var errs []string

	if strings.TrimSpace(f.AnalysisName) == "" {
		errs = append(errs, "Analysis name is required")
	}

	name := strings.TrimSpace(f.CompoundName)
	cid := strings.TrimSpace(f.CompoundID)
	if name == "" && cid == "" {
		errs = append(errs, "Provide a compound name or a PubChem CID")
	}
	if cid != "" && !isDigits(cid) {
		errs = append(errs, "PubChem CID must be numeric")
	}

	if utf8.RuneCountInString(strings.TrimSpace(f.PDBID)) != 4 {
		errs = append(errs, "PDB ID must be exactly 4 characters (e.g. 1EQG)")
	}

	if strings.TrimSpace(f.WebhookURL) == "" {
		errs = append(errs, "Webhook URL is required")
	}

	for _, aux := range []struct {
		label string
		text  string
	}{
		{"Docking results", f.DockingJSON},
		{"SwissDock results", f.SwissDockJSON},
		{"PyMOL data", f.PyMOLJSON},
	} {
		if strings.TrimSpace(aux.text) == "" {
			continue
		}
		if !json.Valid([]byte(aux.text)) {
			errs = append(errs, fmt.Sprintf("%s is not valid JSON", aux.label))
		}
	}

	return errs
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
