package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"APPLY"}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Command != CommandApply {
		t.Errorf("command = %q, want %q", req.Command, CommandApply)
	}
}

func TestParseRequestRejectsGarbage(t *testing.T) {
	if _, err := ParseRequest([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed request")
	}
}

func TestParseRequestRejectsMissingCommand(t *testing.T) {
	if _, err := ParseRequest([]byte(`{}`)); err == nil {
		t.Error("expected error for empty command")
	}
}

func TestOKResponseCarriesData(t *testing.T) {
	resp, err := OKResponse(ApplyData{
		Arrangement: "docked",
		Topology:    []int{3, 1},
		Total:       7,
		Changed:     2,
	})
	if err != nil {
		t.Fatalf("OKResponse: %v", err)
	}
	if resp.Status != "OK" {
		t.Errorf("status = %q, want OK", resp.Status)
	}

	raw, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	var data ApplyData
	if err := json.Unmarshal(decoded.Data, &data); err != nil {
		t.Fatalf("Unmarshal data: %v", err)
	}
	if data.Arrangement != "docked" || data.Changed != 2 || data.Total != 7 {
		t.Errorf("decoded = %+v", data)
	}
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse("no such arrangement")
	if resp.Status != "ERROR" {
		t.Errorf("status = %q, want ERROR", resp.Status)
	}
	if resp.Error != "no such arrangement" {
		t.Errorf("error = %q", resp.Error)
	}
}
