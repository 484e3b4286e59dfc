package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}, wantErr: false},
		{name: "explicit json debug", cfg: Config{Level: "debug", Format: "json"}, wantErr: false},
		{name: "text warn", cfg: Config{Level: "warn", Format: "text"}, wantErr: false},
		{name: "bad level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Debug("filtered debug")
	logger.Info("filtered info")
	logger.Warn("kept warn")
	logger.Error("kept error")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("output contains filtered messages: %s", out)
	}
	if !strings.Contains(out, "kept warn") || !strings.Contains(out, "kept error") {
		t.Errorf("output missing warn/error messages: %s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("inference served", "latency_ms", 12)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if line["msg"] != "inference served" {
		t.Errorf("msg = %v, want inference served", line["msg"])
	}
	if line["latency_ms"] != float64(12) {
		t.Errorf("latency_ms = %v, want 12", line["latency_ms"])
	}
}

func TestSubjectRedactionInLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Writer: &buf, RedactSubjects: true})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("consent checked", "subject_id", "user-42", "purpose_id", "billing")

	out := buf.String()
	if strings.Contains(out, "user-42") {
		t.Errorf("raw subject id leaked into log output: %s", out)
	}
	if !strings.Contains(out, "subj-") {
		t.Errorf("redaction token missing from output: %s", out)
	}
	if !strings.Contains(out, "billing") {
		t.Errorf("non-subject field should pass through: %s", out)
	}
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := WithRequestID(context.Background(), "req-abc")
	ctx = WithPurpose(ctx, "fraud_detection")
	logger.InfoContext(ctx, "routed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if line["request_id"] != "req-abc" {
		t.Errorf("request_id = %v, want req-abc", line["request_id"])
	}
	if line["purpose_id"] != "fraud_detection" {
		t.Errorf("purpose_id = %v, want fraud_detection", line["purpose_id"])
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Component("registry").Info("version inserted")

	if !strings.Contains(buf.String(), `"component":"registry"`) {
		t.Errorf("output missing component field: %s", buf.String())
	}
}
