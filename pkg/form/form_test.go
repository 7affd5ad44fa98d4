package form

import (
	"strings"
	"testing"
)

func validState() FormState {
	return FormState{
		AnalysisName: "Ibuprofen vs COX-2",
		CompoundName: "ibuprofen",
		PDBID:        "1EQG",
		WebhookURL:   "https://example.org/biocore",
	}
}

func hasError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	if errs := Validate(validState()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateRequiresAnalysisName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		f := validState()
		f.AnalysisName = name
		if errs := Validate(f); !hasError(errs, "Analysis name") {
			t.Fatalf("name %q: expected name-required error, got %v", name, errs)
		}
	}

	// The name rule is independent of the other fields.
	f := FormState{}
	if errs := Validate(f); !hasError(errs, "Analysis name") {
		t.Fatalf("empty form: expected name-required error, got %v", errs)
	}
}

func TestValidateCompoundInclusiveOr(t *testing.T) {
	f := validState()
	f.CompoundName = ""
	f.CompoundID = ""
	if errs := Validate(f); !hasError(errs, "compound name or a PubChem CID") {
		t.Fatalf("expected compound-required error, got %v", errs)
	}

	// Supplying both is allowed; only neither is an error.
	f = validState()
	f.CompoundName = "ibuprofen"
	f.CompoundID = "3672"
	if errs := Validate(f); len(errs) != 0 {
		t.Fatalf("both compound fields set: expected no errors, got %v", errs)
	}
}

func TestValidateCompoundIDMustBeNumeric(t *testing.T) {
	f := validState()
	f.CompoundID = "36x2"
	if errs := Validate(f); !hasError(errs, "numeric") {
		t.Fatalf("expected numeric-CID error, got %v", errs)
	}
}

func TestValidatePDBIDLength(t *testing.T) {
	cases := []struct {
		pdb    string
		wantOK bool
	}{
		{"1EQ", false},
		{"1EQG", true},
		{"1eqg", true}, // case-insensitive
		{" 1EQG ", true},
		{"1ÉQG", true}, // 4 characters, not 4 bytes
		{"", false},
		{"1EQGX", false},
	}
	for _, c := range cases {
		f := validState()
		f.PDBID = c.pdb
		errs := Validate(f)
		if got := !hasError(errs, "PDB ID"); got != c.wantOK {
			t.Fatalf("pdb %q: ok=%v, want %v (errors: %v)", c.pdb, got, c.wantOK, errs)
		}
	}
}

func TestValidateRequiresWebhookURL(t *testing.T) {
	f := validState()
	f.WebhookURL = " "
	if errs := Validate(f); !hasError(errs, "Webhook URL") {
		t.Fatalf("expected webhook-required error, got %v", errs)
	}
}

func TestValidateAuxJSONFields(t *testing.T) {
	f := validState()
	f.DockingJSON = `{"poses": [`
	f.SwissDockJSON = `{"ok": true}`
	f.PyMOLJSON = "not json"

	errs := Validate(f)
	if !hasError(errs, "Docking results") {
		t.Fatalf("expected docking JSON error, got %v", errs)
	}
	if !hasError(errs, "PyMOL data") {
		t.Fatalf("expected pymol JSON error, got %v", errs)
	}
	if hasError(errs, "SwissDock") {
		t.Fatalf("valid swissdock JSON flagged: %v", errs)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	f := FormState{PDBID: "1E", DockingJSON: "{"}
	errs := Validate(f)
	if len(errs) != 5 {
		t.Fatalf("expected 5 collected errors, got %d: %v", len(errs), errs)
	}
}
