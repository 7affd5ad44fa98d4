package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/biocore/biocore-cli/pkg/form"
)

func testPayload() form.Payload {
	return form.Payload{
		AnalysisName: "Ibuprofen vs COX-2",
		CompoundName: "ibuprofen",
		PDBID:        "1EQG",
	}
}

func TestSubmitSuccess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"status": "success",
			"report": "# Title\n**bold**",
			"meta": {"compound_queried": "ibuprofen", "pdb_id_queried": "1EQG", "model_used": "test-model", "tokens_used": {"total_tokens": 1234}}
		}`)
	}))
	defer srv.Close()

	res, err := NewClient(0).Submit(srv.URL, testPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Report != "# Title\n**bold**" {
		t.Fatalf("report = %q", res.Report)
	}
	if res.Meta == nil || res.Meta.ModelUsed != "test-model" {
		t.Fatalf("meta = %+v", res.Meta)
	}
	if res.Meta.TokensUsed == nil || res.Meta.TokensUsed.TotalTokens != 1234 {
		t.Fatalf("tokens = %+v", res.Meta.TokensUsed)
	}
	if gotBody["analysis_name"] != "Ibuprofen vs COX-2" {
		t.Fatalf("sent body = %v", gotBody)
	}
}

func TestSubmitErrorPayloadOnSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "error", "message": "bad pdb"}`)
	}))
	defer srv.Close()

	_, err := NewClient(0).Submit(srv.URL, testPayload())
	if err == nil {
		t.Fatal("expected error")
	}
	remote, ok := err.(*RemoteError)
	if !ok {
		t.Fatalf("error type %T: %v", err, err)
	}
	if remote.Message != "bad pdb" {
		t.Fatalf("message = %q, want %q", remote.Message, "bad pdb")
	}
}

func TestSubmitErrorFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": "missing compound"}`)
	}))
	defer srv.Close()

	_, err := NewClient(0).Submit(srv.URL, testPayload())
	if err == nil || err.Error() != "missing compound" {
		t.Fatalf("err = %v, want missing compound", err)
	}
}

func TestSubmitHTTPStatusFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream exploded")
	}))
	defer srv.Close()

	_, err := NewClient(0).Submit(srv.URL, testPayload())
	if err == nil || err.Error() != "HTTP status 502" {
		t.Fatalf("err = %v, want HTTP status 502", err)
	}
}

func TestSubmitNonJSONOnSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>totally not json</html>")
	}))
	defer srv.Close()

	_, err := NewClient(0).Submit(srv.URL, testPayload())
	if err == nil || !strings.Contains(err.Error(), "non-JSON") {
		t.Fatalf("err = %v, want non-JSON transport error", err)
	}
}

func TestSubmitBodyWithoutReportBecomesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"summary": "raw passthrough", "score": 7}`)
	}))
	defer srv.Close()

	res, err := NewClient(0).Submit(srv.URL, testPayload())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !strings.Contains(res.Report, `"summary": "raw passthrough"`) {
		t.Fatalf("report = %q, want serialized body", res.Report)
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := NewClient(0).Submit(srv.URL, testPayload())
	if err == nil || !strings.Contains(err.Error(), "webhook request failed") {
		t.Fatalf("err = %v, want transport failure", err)
	}
}
