package audit

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleBody() map[string]any {
	return map[string]any{
		"ok":           true,
		"model_id":     "tabular-logreg-abcd1234",
		"version":      "v1700000000000",
		"route_target": "tabular",
		"route_reason": "default_tabular",
		"confidence":   0.75,
		"score":        0.5,
	}
}

func TestBuildHashFormat(t *testing.T) {
	wl, serialized, err := Build(sampleBody(), []string{"age", "income"}, "tabular score over top-level payload features")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if len(wl.Hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(wl.Hash))
	}
	for _, c := range wl.Hash {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("hash contains non-hex character %q", c)
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(serialized), &decoded); err != nil {
		t.Fatalf("serialized body is not valid JSON: %v", err)
	}
	field, ok := decoded["whylog"].(map[string]any)
	if !ok {
		t.Fatal("serialized body missing whylog field")
	}
	if field["hash"] != wl.Hash {
		t.Error("serialized whylog hash differs from returned record")
	}
	if field["rationale"] != wl.Rationale {
		t.Error("rationale not copied verbatim")
	}
}

func TestHashExcludesItself(t *testing.T) {
	body := sampleBody()
	preHash, err := HashBody(body)
	if err != nil {
		t.Fatalf("HashBody() error: %v", err)
	}

	wl, serialized, err := Build(body, nil, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// The stored hash must be the pre-append hash.
	if wl.Hash != preHash {
		t.Errorf("stored hash %s differs from pre-append hash %s", wl.Hash, preHash)
	}

	// Re-hashing the final body (whylog field included) must not
	// reproduce the stored hash.
	var full map[string]any
	if err := json.Unmarshal([]byte(serialized), &full); err != nil {
		t.Fatalf("unmarshal final body: %v", err)
	}
	withField, err := HashBody(full)
	if err != nil {
		t.Fatalf("HashBody() on full body: %v", err)
	}
	if withField == wl.Hash {
		t.Error("hashing the body with the whylog field present reproduced the stored hash")
	}
}

func TestVerify(t *testing.T) {
	_, serialized, err := Build(sampleBody(), []string{"x"}, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ok, err := Verify(serialized)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if !ok {
		t.Error("Verify() = false for an untampered body")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	_, serialized, err := Build(sampleBody(), nil, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tampered := strings.Replace(serialized, `"confidence":0.75`, `"confidence":0.99`, 1)
	if tampered == serialized {
		t.Fatal("test setup: replacement did not apply")
	}

	ok, err := Verify(tampered)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if ok {
		t.Error("Verify() = true for a tampered body")
	}
}

func TestVerifyMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Verify(tt.input); err == nil {
				t.Error("Verify() expected error for malformed input")
			}
		})
	}

	// A valid body without a whylog field verifies false, not an error.
	ok, err := Verify(`{"ok":true}`)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if ok {
		t.Error("Verify() = true for a body without a whylog field")
	}
}

func TestBuildDeterministic(t *testing.T) {
	wlA, _, err := Build(sampleBody(), []string{"a"}, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	wlB, _, err := Build(sampleBody(), []string{"a"}, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if wlA.Hash != wlB.Hash {
		t.Errorf("identical bodies hashed differently: %s vs %s", wlA.Hash, wlB.Hash)
	}
}

func TestBuildNilSaliency(t *testing.T) {
	wl, serialized, err := Build(sampleBody(), nil, "r")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if wl.Saliency == nil {
		t.Error("nil saliency should normalize to an empty list")
	}
	if !strings.Contains(serialized, `"saliency":[]`) {
		t.Error("serialized body should carry an empty saliency array")
	}
}
