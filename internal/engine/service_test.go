package engine

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
)

func TestNewService_HandlerTable(t *testing.T) {
	svc := newTestService(t, nil)

	wired := []domain.ActionType{
		domain.ActionMove,
		domain.ActionAttack,
		domain.ActionWait,
		domain.ActionPickup,
		domain.ActionUse,
		domain.ActionDrop,
		domain.ActionCast,
		domain.ActionDissolve,
		domain.ActionTransform,
		domain.ActionPermute,
		domain.ActionDistill,
	}
	for _, action := range wired {
		if _, ok := svc.handlers[action]; !ok {
			t.Errorf("действие %s не зарегистрировано", action)
		}
	}

	// RESET — не игровой ход, его разбирает сама сессия до таблицы.
	if _, ok := svc.handlers[domain.ActionReset]; ok {
		t.Error("RESET не должен попадать в таблицу хендлеров")
	}
}

func TestService_SessionLifecycle(t *testing.T) {
	svc := newTestService(t, nil)

	first, err := svc.CreateSession("Полынь", 42)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if svc.Count() != 1 {
		t.Fatalf("Count() = %d, ожидалась 1 сессия", svc.Count())
	}

	got, ok := svc.Session(first.ID)
	if !ok || got != first {
		t.Errorf("Session(%s): найдено=%v", first.ID, ok)
	}
	if _, ok := svc.Session("нет-такой"); ok {
		t.Error("Session() нашла несуществующую партию")
	}

	second, err := svc.CreateSession("", 43)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if svc.Count() != 2 {
		t.Errorf("Count() = %d после двух партий", svc.Count())
	}

	ids := svc.SessionIDs()
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[first.ID] || !seen[second.ID] {
		t.Errorf("SessionIDs() = %v, нет созданных партий", ids)
	}
}

func TestCreateSession_SeedFallback(t *testing.T) {
	lib, err := content.Load(filepath.Join("..", "..", "data"))
	if err != nil {
		t.Fatalf("загрузка контента: %v", err)
	}

	svc := NewService(Config{Seed: 123}, lib, nil)

	s, err := svc.CreateSession("", 0)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.seed != 123 {
		t.Errorf("нулевое зерно: seed = %d, ожидалось зерно конфигурации 123", s.seed)
	}

	s, err = svc.CreateSession("", 77)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.seed != 77 {
		t.Errorf("явное зерно: seed = %d, ожидалось 77", s.seed)
	}

	svc = NewService(Config{}, lib, nil)
	s, err = svc.CreateSession("", 0)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.seed == 0 {
		t.Error("без зерна в конфигурации сессия должна выбрать случайное")
	}
}

func TestShutdown_FlushesAllJournals(t *testing.T) {
	rec := &captureRecorder{}
	svc := newTestService(t, rec)

	for i := int64(1); i <= 2; i++ {
		s, err := svc.CreateSession("", 100+i)
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if _, err := s.Perform(domain.ActionWait, nil); err != nil {
			t.Fatalf("Perform(WAIT): %v", err)
		}
	}

	svc.Shutdown()
	if len(rec.logs) != 2 {
		t.Fatalf("после Shutdown сохранено %d журналов, ожидалось 2", len(rec.logs))
	}
	for _, journal := range rec.logs {
		if len(journal.Actions) != 1 || journal.Actions[0].Action != domain.ActionWait {
			t.Errorf("журнал %s: действия %+v", journal.SessionID, journal.Actions)
		}
	}

	// Повторная остановка не дублирует уже сброшенные журналы.
	svc.Shutdown()
	if len(rec.logs) != 2 {
		t.Errorf("повторный Shutdown дописал журналы: %d", len(rec.logs))
	}
}

// Одинаковое зерно должно давать одинаковую партию: карту, монстров,
// порядок их ходов и все сообщения. На этом держатся повторы.
func TestCreateSession_SameSeedSameRun(t *testing.T) {
	svc := newTestService(t, nil)

	run := func() []json.RawMessage {
		t.Helper()
		s, err := svc.CreateSession("", 20260815)
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		var states []json.RawMessage
		for i := 0; i < 3; i++ {
			resp, err := s.Perform(domain.ActionWait, nil)
			if err != nil {
				t.Fatalf("Perform(WAIT) #%d: %v", i+1, err)
			}
			states = append(states, mustMarshal(t, resp.State))
		}
		return states
	}

	first := run()
	second := run()

	for i := range first {
		if string(first[i]) != string(second[i]) {
			t.Errorf("ход %d: снимки расходятся при одном зерне\nпервый:  %s\nвторой:  %s",
				i+1, first[i], second[i])
		}
	}
}
