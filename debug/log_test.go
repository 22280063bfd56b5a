package debug

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Debug("resolved", zap.String("type", "Point"))
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "resolved" || entry.ContextMap()["type"] != "Point" {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("nil logger")
	}
}
