package engine

import (
	"reflect"
	"testing"

	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/routing"
	"deltaml/delta/pkg/status"
)

func testModel(kind model.Kind) model.Version {
	return model.Version{
		ID:      model.ModelID("test-" + kind.Label()),
		Version: "v1",
		Kind:    kind,
	}
}

func TestScoreReproducible(t *testing.T) {
	a := score("model-a", `{"x":1}`)
	b := score("model-a", `{"x":1}`)
	if a != b {
		t.Errorf("score not reproducible: %v vs %v", a, b)
	}
	if a < 0 || a >= 1 {
		t.Errorf("score %v outside [0,1)", a)
	}

	c := score("model-b", `{"x":1}`)
	if a == c {
		t.Error("different model ids produced identical scores")
	}
}

func TestTabularSaliency(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    []string
	}{
		{
			name:    "keys sorted, reserved excluded",
			payload: map[string]any{"zeta": 1.0, "alpha": 2.0, "text": "ignored", "context": map[string]any{}},
			want:    []string{"alpha", "zeta"},
		},
		{
			name: "capped at five",
			payload: map[string]any{
				"a": 1.0, "b": 1.0, "c": 1.0, "d": 1.0, "e": 1.0, "f": 1.0, "g": 1.0,
			},
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:    "empty payload",
			payload: map[string]any{},
			want:    []string{},
		},
	}

	eng := Tabular{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := eng.Infer(Request{Model: testModel(model.KindTabularLogistic), Payload: tt.payload, Raw: "{}"})
			if err != nil {
				t.Fatalf("Infer() unexpected error: %v", err)
			}
			got := resp.Saliency
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Saliency = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTabularConfidenceRange(t *testing.T) {
	eng := Tabular{}
	resp, err := eng.Infer(Request{Model: testModel(model.KindTabularLogistic), Payload: map[string]any{"age": 30.0}, Raw: `{"age":30}`})
	if err != nil {
		t.Fatalf("Infer() unexpected error: %v", err)
	}
	if resp.Confidence < 0.5 || resp.Confidence >= 1.0 {
		t.Errorf("tabular confidence %v outside [0.5, 1)", resp.Confidence)
	}
}

func TestTextEngine(t *testing.T) {
	tests := []struct {
		name         string
		payload      map[string]any
		wantErr      bool
		wantSaliency []string
	}{
		{
			name:         "tokenizes on whitespace",
			payload:      map[string]any{"text": "the quick brown fox jumps over"},
			wantSaliency: []string{"the", "quick", "brown", "fox", "jumps"},
		},
		{
			name:         "short text keeps all tokens",
			payload:      map[string]any{"text": "two words"},
			wantSaliency: []string{"two", "words"},
		},
		{
			name:    "missing text is invalid input",
			payload: map[string]any{"age": 30.0},
			wantErr: true,
		},
		{
			name:    "empty text is invalid input",
			payload: map[string]any{"text": ""},
			wantErr: true,
		},
		{
			name:    "non-string text is invalid input",
			payload: map[string]any{"text": 42.0},
			wantErr: true,
		},
	}

	eng := Text{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := eng.Infer(Request{Model: testModel(model.KindTextMiniLM), Payload: tt.payload, Raw: "{}"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Infer() expected error, got nil")
				}
				if status.CodeOf(err) != status.CodeInvalidInput {
					t.Errorf("error code = %v, want InvalidInput", status.CodeOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Infer() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(resp.Saliency, tt.wantSaliency) {
				t.Errorf("Saliency = %v, want %v", resp.Saliency, tt.wantSaliency)
			}
			if resp.Confidence < 0.4 || resp.Confidence >= 1.0 {
				t.Errorf("text confidence %v outside [0.4, 1)", resp.Confidence)
			}
		})
	}
}

func TestEngineReproducibility(t *testing.T) {
	req := Request{
		Model:   testModel(model.KindTextMiniLM),
		Payload: map[string]any{"text": "stable input text"},
		Raw:     `{"text":"stable input text"}`,
	}
	eng := Text{}
	first, err := eng.Infer(req)
	if err != nil {
		t.Fatalf("Infer() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := eng.Infer(req)
		if err != nil {
			t.Fatalf("Infer() error on repeat: %v", err)
		}
		if again.Confidence != first.Confidence {
			t.Fatalf("confidence drifted across calls: %v vs %v", again.Confidence, first.Confidence)
		}
		if !reflect.DeepEqual(again.Fields, first.Fields) {
			t.Fatalf("fields drifted across calls")
		}
	}
}

func TestDispatchFallback(t *testing.T) {
	reg := NewRegistry(nil)

	tests := []struct {
		name         string
		target       routing.Target
		payload      map[string]any
		wantTarget   routing.Target
		wantFellBack bool
		wantErr      bool
	}{
		{
			name:       "text target with valid text",
			target:     routing.TargetText,
			payload:    map[string]any{"text": "hello world"},
			wantTarget: routing.TargetText,
		},
		{
			name:         "text target with missing text falls back to tabular",
			target:       routing.TargetText,
			payload:      map[string]any{"age": 30.0},
			wantTarget:   routing.TargetTabular,
			wantFellBack: true,
		},
		{
			name:       "tabular target",
			target:     routing.TargetTabular,
			payload:    map[string]any{"age": 30.0},
			wantTarget: routing.TargetTabular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reg.Dispatch(tt.target, Request{Model: testModel(model.KindTabularLogistic), Payload: tt.payload, Raw: "{}"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Dispatch() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Dispatch() unexpected error: %v", err)
			}
			if res.Target != tt.wantTarget {
				t.Errorf("Dispatch() target = %v, want %v", res.Target, tt.wantTarget)
			}
			if res.FellBack != tt.wantFellBack {
				t.Errorf("Dispatch() fellBack = %v, want %v", res.FellBack, tt.wantFellBack)
			}
		})
	}
}
