package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

func sampleJournal() *domain.ReplayLog {
	return &domain.ReplayLog{
		SessionID: "5f0c1db2-99a3-4f0e-8f6d-2a7c41a7b001",
		Seed:      424242,
		Timestamp: 1700000000,
		Actions: []domain.ReplayAction{
			{Turn: 1, Action: domain.ActionMove, Payload: json.RawMessage(`{"dx":1,"dy":0}`)},
			{Turn: 2, Action: domain.ActionWait},
			{Turn: 3, Action: domain.ActionCast, Payload: json.RawMessage(`{"word":"krata","targetId":2}`)},
		},
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewReplayService(dir)
	if err != nil {
		t.Fatalf("NewReplayService: %v", err)
	}

	journal := sampleJournal()
	if err := svc.Save(journal); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected exactly one replay file, got %v (%v)", entries, err)
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "replay_") || !strings.HasSuffix(name, ".elrp") {
		t.Errorf("Unexpected replay filename %q", name)
	}

	loaded, err := Load(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.SessionID != journal.SessionID {
		t.Errorf("SessionID: expected %q, got %q", journal.SessionID, loaded.SessionID)
	}
	if loaded.Seed != journal.Seed || loaded.Timestamp != journal.Timestamp {
		t.Errorf("Header mismatch: %+v", loaded)
	}
	if len(loaded.Actions) != len(journal.Actions) {
		t.Fatalf("Expected %d actions, got %d", len(journal.Actions), len(loaded.Actions))
	}
	for i, act := range loaded.Actions {
		want := journal.Actions[i]
		if act.Turn != want.Turn || act.Action != want.Action {
			t.Errorf("Action %d: expected %d/%v, got %d/%v",
				i, want.Turn, want.Action, act.Turn, act.Action)
		}
		if string(act.Payload) != string(want.Payload) {
			t.Errorf("Action %d payload: expected %s, got %s", i, want.Payload, act.Payload)
		}
	}
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not_a_replay.elrp")
	if err := os.WriteFile(path, []byte("PLAINTEXT JUNK LONG ENOUGH FOR A HEADER"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected magic validation error for a foreign file")
	}
}
