package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestCodesAreStable(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeOK, 0},
		{CodeNoConsent, 1},
		{CodePolicyDenied, 2},
		{CodeModelMissing, 3},
		{CodeInvalidInput, 4},
		{CodeInternal, 5},
		{CodeNotFound, 6},
		{CodeIO, 7},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if int(tt.code) != tt.want {
				t.Errorf("code %s = %d, want %d", tt.code, int(tt.code), tt.want)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: CodeOK},
		{name: "invalid input", err: Invalid("text_missing"), want: CodeInvalidInput},
		{name: "policy denied", err: PolicyDenied("dp_epsilon_exceeded"), want: CodePolicyDenied},
		{name: "wrapped status error", err: fmt.Errorf("infer: %w", ModelMissing("no_active_model")), want: CodeModelMissing},
		{name: "plain error degrades to internal", err: errors.New("boom"), want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("consent check: %w", NoConsent(errors.New("store unreachable")))
	if !errors.Is(err, NoConsent()) {
		t.Error("errors.Is() should match NoConsent by code")
	}
	if errors.Is(err, PolicyDenied("any")) {
		t.Error("errors.Is() should not match a different code")
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := IO("dataset_write", cause)
	if !errors.Is(err, cause) {
		t.Error("IO() should wrap its cause for errors.Is")
	}
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "policy denial", err: PolicyDenied("fairness_report_missing"), wantCode: 2, wantMsg: "fairness_report_missing"},
		{name: "no consent", err: NoConsent(), wantCode: 1, wantMsg: "no_consent"},
		{name: "plain error", err: errors.New("boom"), wantCode: 5, wantMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded struct {
				OK   bool   `json:"ok"`
				Code int    `json:"code"`
				Msg  string `json:"msg"`
			}
			if err := json.Unmarshal([]byte(Envelope(tt.err)), &decoded); err != nil {
				t.Fatalf("Envelope() is not valid JSON: %v", err)
			}
			if decoded.OK {
				t.Error("Envelope() ok = true, want false")
			}
			if decoded.Code != tt.wantCode {
				t.Errorf("Envelope() code = %d, want %d", decoded.Code, tt.wantCode)
			}
			if decoded.Msg != tt.wantMsg {
				t.Errorf("Envelope() msg = %q, want %q", decoded.Msg, tt.wantMsg)
			}
		})
	}
}
