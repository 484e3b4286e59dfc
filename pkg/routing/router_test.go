package routing

import (
	"strings"
	"testing"

	"deltaml/delta/pkg/model"
)

func TestDecide(t *testing.T) {
	longText := strings.Repeat("a", LongTextThreshold+1)

	tests := []struct {
		name       string
		rc         Context
		wantTarget Target
		wantReason Reason
	}{
		{
			name:       "features only always tabular",
			rc:         Context{FeaturesOnly: true},
			wantTarget: TargetTabular,
			wantReason: ReasonFeatureOverride,
		},
		{
			name:       "features only beats long text",
			rc:         Context{FeaturesOnly: true, TextLength: len(longText)},
			wantTarget: TargetTabular,
			wantReason: ReasonFeatureOverride,
		},
		{
			name:       "long text routes to text",
			rc:         Context{TextLength: LongTextThreshold + 1},
			wantTarget: TargetText,
			wantReason: ReasonLongText,
		},
		{
			name:       "threshold length is not long",
			rc:         Context{TextLength: LongTextThreshold},
			wantTarget: TargetTabular,
			wantReason: ReasonDefaultTabular,
		},
		{
			name:       "empty context defaults tabular",
			rc:         Context{},
			wantTarget: TargetTabular,
			wantReason: ReasonDefaultTabular,
		},
	}

	router := DefaultRouter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := router.Decide(tt.rc)
			if got.Target != tt.wantTarget {
				t.Errorf("Decide() target = %v, want %v", got.Target, tt.wantTarget)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Decide() reason = %v, want %v", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestBuildContextFeatureSignalPaths(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		callerFlag bool
		want       bool
	}{
		{
			name:       "caller flag",
			payload:    map[string]any{},
			callerFlag: true,
			want:       true,
		},
		{
			name:    "in-band payload flag",
			payload: map[string]any{"features_only": true},
			want:    true,
		},
		{
			name:    "nested context flag",
			payload: map[string]any{"context": map[string]any{"features_only": true}},
			want:    true,
		},
		{
			name:    "no signal",
			payload: map[string]any{"text": "hello"},
			want:    false,
		},
		{
			name:    "false flags do not set",
			payload: map[string]any{"features_only": false, "context": map[string]any{"features_only": false}},
			want:    false,
		},
		{
			name:    "non-bool flag ignored",
			payload: map[string]any{"features_only": "yes"},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := BuildContext(tt.payload, tt.callerFlag)
			if rc.FeaturesOnly != tt.want {
				t.Errorf("BuildContext() FeaturesOnly = %v, want %v", rc.FeaturesOnly, tt.want)
			}
		})
	}
}

func TestBuildContextTextLength(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{name: "no text", payload: map[string]any{}, want: 0},
		{name: "ascii", payload: map[string]any{"text": "hello"}, want: 5},
		{name: "characters not bytes", payload: map[string]any{"text": "héllo"}, want: 5},
		{name: "non-string text ignored", payload: map[string]any{"text": 42.0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := BuildContext(tt.payload, false)
			if rc.TextLength != tt.want {
				t.Errorf("BuildContext() TextLength = %d, want %d", rc.TextLength, tt.want)
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		decision   Decision
		family     model.Family
		wantTarget Target
		wantReason Reason
	}{
		{
			name:       "agreement passes through",
			decision:   Decision{Target: TargetText, Reason: ReasonLongText},
			family:     model.FamilyText,
			wantTarget: TargetText,
			wantReason: ReasonLongText,
		},
		{
			name:       "text decision against tabular model downgrades",
			decision:   Decision{Target: TargetText, Reason: ReasonLongText},
			family:     model.FamilyTabular,
			wantTarget: TargetTabular,
			wantReason: ReasonLongText, // original reason retained on downgrade
		},
		{
			name:       "tabular decision against text model downgrades",
			decision:   Decision{Target: TargetTabular, Reason: ReasonDefaultTabular},
			family:     model.FamilyText,
			wantTarget: TargetTabular,
			wantReason: ReasonDefaultTabular,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.decision, tt.family)
			if got.Target != tt.wantTarget {
				t.Errorf("Reconcile() target = %v, want %v", got.Target, tt.wantTarget)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reconcile() reason = %v, want %v", got.Reason, tt.wantReason)
			}
		})
	}
}
