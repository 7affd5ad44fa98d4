package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is the canonical request body sent to the BioCore webhook.
// Optional keys are omitted entirely when unset, never null. Exactly one
// of CompoundName / CID carries the compound reference.
type Payload struct {
	AnalysisName        string `json:"analysis_name"`
	AnalysisDescription string `json:"analysis_description,omitempty"`
	CompoundName        string `json:"compound_name,omitempty"`
	CID                 *int64 `json:"cid,omitempty"`
	PDBID               string `json:"pdb_id"`
	DockingResults      any    `json:"docking_results,omitempty"`
	SwissDockResults    any    `json:"swissdock_results,omitempty"`
	PyMOLData           any    `json:"pymol_data,omitempty"`
}

// CompoundRef identifies a compound by exactly one of a free-text name
// or a PubChem CID. The zero value is invalid; use the constructors.
type CompoundRef struct {
	name string
	cid  int64
	byID bool
}

func CompoundByName(name string) CompoundRef {
	return CompoundRef{name: name}
}

func CompoundByID(cid int64) CompoundRef {
	return CompoundRef{cid: cid, byID: true}
}

// String renders the reference for display.
func (c CompoundRef) String() string {
	if c.byID {
		return fmt.Sprintf("CID %d", c.cid)
	}
	return c.name
}

func (c CompoundRef) apply(p *Payload) {
	if c.byID {
		cid := c.cid
		p.CID = &cid
		return
	}
	p.CompoundName = c.name
}

// Compound resolves the form's two compound fields into a single tagged
// reference. The CID takes precedence when both are supplied.
func Compound(f FormState) (CompoundRef, error) {
	if cid := strings.TrimSpace(f.CompoundID); cid != "" {
		n, err := strconv.ParseInt(cid, 10, 64)
		if err != nil {
			return CompoundRef{}, fmt.Errorf("parse CID %q: %w", cid, err)
		}
		return CompoundByID(n), nil
	}
	return CompoundByName(strings.TrimSpace(f.CompoundName)), nil
}

// BuildPayload assembles the request body from a form that has already
// passed Validate. Aux JSON blobs are decoded into structured values so
// the webhook receives objects, not strings.
func BuildPayload(f FormState) (Payload, error) {
	p := Payload{
		AnalysisName: strings.TrimSpace(f.AnalysisName),
		PDBID:        strings.ToUpper(strings.TrimSpace(f.PDBID)),
	}

	if desc := strings.TrimSpace(f.Description); desc != "" {
		p.AnalysisDescription = desc
	}

	ref, err := Compound(f)
	if err != nil {
		return Payload{}, err
	}
	ref.apply(&p)

	for _, aux := range []struct {
		label string
		text  string
		dst   *any
	}{
		{"docking results", f.DockingJSON, &p.DockingResults},
		{"swissdock results", f.SwissDockJSON, &p.SwissDockResults},
		{"pymol data", f.PyMOLJSON, &p.PyMOLData},
	} {
		if strings.TrimSpace(aux.text) == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(aux.text), &v); err != nil {
			return Payload{}, fmt.Errorf("parse %s: %w", aux.label, err)
		}
		*aux.dst = v
	}

	return p, nil
}
