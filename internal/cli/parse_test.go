package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/seqdiag/pkg/errors"
	"github.com/matzehuels/seqdiag/pkg/pipeline"
)

func loginSummary(t *testing.T) pipeline.Summary {
	t.Helper()
	d, err := pipeline.Parse(context.Background(), loginSource, pipeline.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return pipeline.Summarize(d)
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, loginSummary(t), "json"); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}

	var got pipeline.Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Title != "Login" {
		t.Errorf("title = %q, want Login", got.Title)
	}
	if len(got.Participants) != 2 || got.Participants[0].Kind != "actor" {
		t.Errorf("participants = %+v", got.Participants)
	}
	if got.Messages != 2 {
		t.Errorf("messages = %d, want 2", got.Messages)
	}
	if len(got.Events) == 0 || got.Events[0].Type != "title" || got.Events[0].Line != 1 {
		t.Errorf("events = %+v", got.Events)
	}
	if !strings.Contains(buf.String(), "\n  \"title\"") {
		t.Errorf("output not indented:\n%s", buf.String())
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, loginSummary(t), "yaml"); err != nil {
		t.Fatalf("writeSummary: %v", err)
	}

	var got pipeline.Summary
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if got.Title != "Login" || got.Messages != 2 {
		t.Errorf("summary = %+v", got)
	}
	if !strings.Contains(buf.String(), "- name: User") {
		t.Errorf("unexpected layout:\n%s", buf.String())
	}
}

func TestWriteSummaryInvalidFormat(t *testing.T) {
	err := writeSummary(&bytes.Buffer{}, pipeline.Summary{}, "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
