package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithCommonSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := WithCommon(zerolog.New(&buf).With(), "", "").Logger()
	logger.Info().Msg("x")
	if strings.Contains(buf.String(), FieldService) || strings.Contains(buf.String(), FieldVersion) {
		t.Fatalf("expected no service/version fields, got %s", buf.String())
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestHelpersWriteFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Error(&logger, "fetch failed", errors.New("boom"), FieldOperation, "upcoming_matches", FieldCount, 3)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", line)
	}
	if line[FieldOperation] != "upcoming_matches" {
		t.Fatalf("expected operation field, got %+v", line)
	}
	if line[FieldCount] != float64(3) {
		t.Fatalf("expected count field, got %+v", line)
	}
}

func TestFromContextFallsBackWithoutLogger(t *testing.T) {
	fallback := zerolog.Nop()
	if got := FromContext(context.Background(), &fallback); got != &fallback {
		t.Fatalf("expected fallback logger")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str(FieldRequestID, "req-1").Logger()
	ctx := WithLogger(context.Background(), &logger)

	got := FromContext(ctx, nil)
	if got == nil {
		t.Fatal("expected logger from context")
	}
	got.Info().Msg("scoped")
	if !strings.Contains(buf.String(), "req-1") {
		t.Fatalf("expected request id in scoped log, got %s", buf.String())
	}
}

func TestWithLoggerNilKeepsContext(t *testing.T) {
	ctx := context.Background()
	if WithLogger(ctx, nil) != ctx {
		t.Fatalf("expected context unchanged for nil logger")
	}
}
