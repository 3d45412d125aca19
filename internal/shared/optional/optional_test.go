package optional

import (
	"encoding/json"
	"testing"
)

func TestFieldTriState(t *testing.T) {
	type payload struct {
		Name  Field[string] `json:"name"`
		Count Field[int]    `json:"count"`
	}

	var absent payload
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if absent.Name.Set || absent.Count.Set {
		t.Fatalf("absent keys must stay unset: %+v", absent)
	}

	var null payload
	if err := json.Unmarshal([]byte(`{"name":null}`), &null); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !null.Name.Set || null.Name.Value != "" {
		t.Fatalf("explicit null must be set with the zero value: %+v", null.Name)
	}
	if null.Count.Set {
		t.Fatalf("count was absent, must stay unset")
	}

	var valued payload
	if err := json.Unmarshal([]byte(`{"name":"x","count":3}`), &valued); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !valued.Name.Set || valued.Name.Value != "x" {
		t.Fatalf("unexpected name: %+v", valued.Name)
	}
	if !valued.Count.Set || valued.Count.Value != 3 {
		t.Fatalf("unexpected count: %+v", valued.Count)
	}
}
