package engine

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/api"
)

// captureRecorder копит журналы в памяти вместо файлов.
type captureRecorder struct {
	logs []*domain.ReplayLog
}

func (r *captureRecorder) Save(l *domain.ReplayLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func newTestService(t *testing.T, rec Recorder) *GameService {
	t.Helper()
	lib, err := content.Load(filepath.Join("..", "..", "data"))
	if err != nil {
		t.Fatalf("загрузка контента: %v", err)
	}
	return NewService(Config{}, lib, rec)
}

// arenaSession готовит партию с миром под полным контролем теста:
// пустой зал 9x9, игрок в центре, ни монстров, ни предметов.
// Генератор подземелий в этих тестах не участвует — его проверяет
// pkg/dungeon; здесь фиксируются сами правила разрешения хода.
func arenaSession(t *testing.T, rec Recorder) *Session {
	t.Helper()
	svc := newTestService(t, rec)
	s, err := svc.CreateSession("", 42)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	s.world = domain.NewWorld(9, 9)
	s.player.Pos = domain.Position{X: 4, Y: 4}
	s.world.AddCreature(s.player)
	s.explored = make(map[int]bool)
	s.markVisible()
	return s
}

// addMonster ставит монстра на клетку сессионным генератором,
// чтобы розыгрыш лута остался детерминированным.
func addMonster(t *testing.T, s *Session, key string, at domain.Position) *domain.Creature {
	t.Helper()
	m, err := content.NewMonster(key, at, s.rng, s.allocID)
	if err != nil {
		t.Fatalf("NewMonster(%s): %v", key, err)
	}
	s.world.AddCreature(m)
	return m
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestPerform_WaitRunsWorldTurn(t *testing.T) {
	s := arenaSession(t, nil)
	addMonster(t, s, "rat", domain.Position{X: 5, Y: 4})

	resp, err := s.Perform(domain.ActionWait, nil)
	if err != nil {
		t.Fatalf("Perform(WAIT): %v", err)
	}

	if resp.Type != api.ResponseUpdate || resp.Phase != api.PhasePlayerTurn {
		t.Errorf("type=%s phase=%s, ожидался UPDATE/PLAYER_TURN", resp.Type, resp.Phase)
	}
	if resp.Turn != 1 {
		t.Errorf("turn = %d, want 1", resp.Turn)
	}
	if !hasMessage(resp.Messages, "пропускает ход") {
		t.Errorf("нет нарратива ожидания: %v", resp.Messages)
	}

	// Смежная крыса обязана ударить в фазу монстров: 4 атаки против
	// 10 защиты — минимальная единица урона.
	if !hasMessage(resp.Messages, "Giant Rat наносит 1 урона") {
		t.Errorf("нет удара монстра: %v", resp.Messages)
	}
	if resp.State.Player.HP != 99 {
		t.Errorf("HP игрока = %d, want 99", resp.State.Player.HP)
	}

	// Крыса в поле зрения и на соседней клетке.
	if len(resp.State.Entities) != 1 || !resp.State.Entities[0].Adjacent {
		t.Errorf("entities = %+v", resp.State.Entities)
	}
}

func TestPerform_RejectedActionLeavesSessionUntouched(t *testing.T) {
	s := arenaSession(t, nil)
	addMonster(t, s, "rat", domain.Position{X: 0, Y: 0})
	s.world.SetWall(domain.Position{X: 5, Y: 4}, true)
	s.markVisible()

	tests := []struct {
		name    string
		action  domain.ActionType
		payload json.RawMessage
	}{
		{"шаг в стену", domain.ActionMove, mustMarshal(t, api.DirectionPayload{Dx: 1})},
		{"нулевой вектор", domain.ActionMove, mustMarshal(t, api.DirectionPayload{})},
		{"диагональ", domain.ActionMove, mustMarshal(t, api.DirectionPayload{Dx: 1, Dy: 1})},
		{"кривой payload", domain.ActionMove, json.RawMessage(`{"dx":"east"}`)},
		{"неизвестное действие", domain.ActionUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.Perform(tt.action, tt.payload)
			if err == nil {
				t.Fatalf("действие прошло, ответ %+v", resp)
			}
			if kind := domain.KindOf(err); kind != domain.ErrValidation {
				t.Errorf("kind = %s, want VALIDATION (%v)", kind, err)
			}
			if s.turn != 0 {
				t.Errorf("отклонённое действие потратило ход: turn=%d", s.turn)
			}
			if s.player.Pos != (domain.Position{X: 4, Y: 4}) {
				t.Errorf("игрок сдвинулся: %v", s.player.Pos)
			}
			if s.phase != api.PhasePlayerTurn {
				t.Errorf("фаза изменилась: %s", s.phase)
			}
		})
	}
}

func TestPerform_BumpAttackWinsGame(t *testing.T) {
	s := arenaSession(t, nil)
	rat := addMonster(t, s, "rat", domain.Position{X: 5, Y: 4})
	rat.HP = 1

	resp, err := s.Perform(domain.ActionMove, mustMarshal(t, api.DirectionPayload{Dx: 1}))
	if err != nil {
		t.Fatalf("Perform(MOVE): %v", err)
	}

	if resp.Type != api.ResponseGameOver || resp.Phase != api.PhaseGameOverVictory {
		t.Fatalf("type=%s phase=%s, ожидалась победа", resp.Type, resp.Phase)
	}
	if resp.Turn != 1 {
		t.Errorf("turn = %d, want 1", resp.Turn)
	}
	if !hasMessage(resp.Messages, "Giant Rat погибает") {
		t.Errorf("нет сообщения о гибели: %v", resp.Messages)
	}
	if !hasMessage(resp.Messages, "Подземелье очищено") {
		t.Errorf("нет сообщения о победе: %v", resp.Messages)
	}

	// 5 за крысу + 25 за ближний бой.
	if s.player.XP != 30 {
		t.Errorf("XP = %d, want 30", s.player.XP)
	}

	// Шаг не делается: клетка была занята, удар её не освобождает задним
	// числом в тот же ход.
	if s.player.Pos != (domain.Position{X: 4, Y: 4}) {
		t.Errorf("игрок сдвинулся при ударе: %v", s.player.Pos)
	}

	// Партия решена: действия отклоняются по STATE.
	if _, err := s.Perform(domain.ActionWait, nil); domain.KindOf(err) != domain.ErrState {
		t.Errorf("действие после победы: %v", err)
	}

	// RESET допустим и собирает свежий мир.
	resp, err = s.Perform(domain.ActionReset, json.RawMessage(`{"seed": 9}`))
	if err != nil {
		t.Fatalf("Perform(RESET): %v", err)
	}
	if resp.Turn != 0 || resp.Phase != api.PhasePlayerTurn {
		t.Errorf("после RESET turn=%d phase=%s", resp.Turn, resp.Phase)
	}
	if resp.State.Player.HP != 100 {
		t.Errorf("игрок не пересоздан: HP=%d", resp.State.Player.HP)
	}
	if s.monstersRemaining() == 0 {
		t.Error("в пересобранном мире нет ни одного монстра")
	}
}

func TestPerform_MonsterKillsPlayer(t *testing.T) {
	s := arenaSession(t, nil)
	addMonster(t, s, "rat", domain.Position{X: 5, Y: 4})
	s.player.HP = 1

	resp, err := s.Perform(domain.ActionWait, nil)
	if err != nil {
		t.Fatalf("Perform(WAIT): %v", err)
	}

	if resp.Type != api.ResponseGameOver || resp.Phase != api.PhaseGameOverDefeat {
		t.Fatalf("type=%s phase=%s, ожидалось поражение", resp.Type, resp.Phase)
	}
	if !hasMessage(resp.Messages, "Тьма смыкается над вами") {
		t.Errorf("нет сообщения о поражении: %v", resp.Messages)
	}
	if resp.State.Player.HP != 0 {
		t.Errorf("HP игрока = %d, want 0", resp.State.Player.HP)
	}

	if _, err := s.Perform(domain.ActionMove, mustMarshal(t, api.DirectionPayload{Dx: 1})); domain.KindOf(err) != domain.ErrState {
		t.Errorf("действие после поражения: %v", err)
	}
}

func TestPerform_CastPaysEssenceAndKills(t *testing.T) {
	s := arenaSession(t, nil)
	rat := addMonster(t, s, "rat", domain.Position{X: 5, Y: 4})
	s.player.Pool = essence.New(60, 20, 20, 20)

	payload := mustMarshal(t, api.CastPayload{Word: "krata", TargetID: rat.ID})
	resp, err := s.Perform(domain.ActionCast, payload)
	if err != nil {
		t.Fatalf("Perform(CAST): %v", err)
	}

	if !hasMessage(resp.Messages, "Вы произносите слово «krata»") {
		t.Errorf("нет нарратива каста: %v", resp.Messages)
	}

	// krata стоит свою подпись (58,5,10,12); списание атомарно.
	want := api.VectorView{Fire: 2, Water: 15, Earth: 10, Air: 8}
	if resp.State.Player.Essence != want {
		t.Errorf("запас после каста = %+v, want %+v", resp.State.Player.Essence, want)
	}

	// "fire * 0.8" от подписи 58 испепеляет крысу с запасом;
	// 5 за крысу + 30 за слово.
	if resp.Phase != api.PhaseGameOverVictory {
		t.Errorf("phase = %s, ожидалась победа", resp.Phase)
	}
	if s.player.XP != 35 {
		t.Errorf("XP = %d, want 35", s.player.XP)
	}
}

func TestPerform_CastRejectsWhenEssenceShort(t *testing.T) {
	s := arenaSession(t, nil)
	rat := addMonster(t, s, "rat", domain.Position{X: 5, Y: 4})

	// Стартовый запас (10,10,10,10) не покрывает подпись krata.
	payload := mustMarshal(t, api.CastPayload{Word: "krata", TargetID: rat.ID})
	_, err := s.Perform(domain.ActionCast, payload)
	if domain.KindOf(err) != domain.ErrInsufficientEssence {
		t.Fatalf("ожидался INSUFFICIENT_ESSENCE, получено %v", err)
	}

	if s.turn != 0 {
		t.Errorf("неудачный каст потратил ход: turn=%d", s.turn)
	}
	if s.player.Pool != essence.New(10, 10, 10, 10) {
		t.Errorf("неудачный каст тронул запас: %v", s.player.Pool)
	}
	if !rat.Alive() || rat.HP != 12 {
		t.Errorf("неудачный каст тронул цель: HP=%d", rat.HP)
	}
}

func TestPerform_StatusTickKillsAndCreditsSpellXP(t *testing.T) {
	s := arenaSession(t, nil)
	rat := addMonster(t, s, "rat", domain.Position{X: 7, Y: 4})
	rat.ApplyStatus(domain.StatusEffect{Name: "scorched", Remaining: 1, PeriodicDamage: 99})

	resp, err := s.Perform(domain.ActionWait, nil)
	if err != nil {
		t.Fatalf("Perform(WAIT): %v", err)
	}

	if !hasMessage(resp.Messages, "страдает от «scorched»") {
		t.Errorf("нет тика статуса: %v", resp.Messages)
	}
	if !hasMessage(resp.Messages, "Giant Rat погибает") {
		t.Errorf("нет гибели от статуса: %v", resp.Messages)
	}

	// Статус — отложенное действие слова: бонус как за убийство заклинанием.
	if s.player.XP != 5+domain.XPSpellKill {
		t.Errorf("XP = %d, want %d", s.player.XP, 5+domain.XPSpellKill)
	}
	if resp.Phase != api.PhaseGameOverVictory {
		t.Errorf("phase = %s, ожидалась победа", resp.Phase)
	}
}

func TestPerform_SummonStrikesAndExpires(t *testing.T) {
	s := arenaSession(t, nil)
	rat := addMonster(t, s, "rat", domain.Position{X: 6, Y: 4})
	rat.HP = 1

	ally, err := content.NewSummon(s.allocID(), "insect_swarm", 10, 1, domain.Position{X: 5, Y: 4})
	if err != nil {
		t.Fatalf("NewSummon: %v", err)
	}
	s.world.AddCreature(ally)

	resp, err := s.Perform(domain.ActionWait, nil)
	if err != nil {
		t.Fatalf("Perform(WAIT): %v", err)
	}

	// Союзник бьёт смежного монстра до фазы монстров; добыча союзника —
	// добыча хозяина.
	if !hasMessage(resp.Messages, "Insect Swarm наносит") {
		t.Errorf("союзник не ударил: %v", resp.Messages)
	}
	if s.player.XP != 5+domain.XPMeleeKill {
		t.Errorf("XP = %d, want %d", s.player.XP, 5+domain.XPMeleeKill)
	}

	// Срок призыва истёк в этот же ход.
	if !hasMessage(resp.Messages, "Insect Swarm растворяется в воздухе") {
		t.Errorf("союзник не развеялся: %v", resp.Messages)
	}
	for _, c := range s.world.Creatures {
		if c.ID == ally.ID {
			t.Error("развеянный союзник остался в мире")
		}
	}

	if resp.Phase != api.PhaseGameOverVictory {
		t.Errorf("phase = %s, ожидалась победа", resp.Phase)
	}
}

func TestPerform_RecordsJournalAndFlushesOnReset(t *testing.T) {
	rec := &captureRecorder{}
	s := arenaSession(t, rec)
	addMonster(t, s, "rat", domain.Position{X: 0, Y: 0})

	for i := 0; i < 2; i++ {
		if _, err := s.Perform(domain.ActionWait, nil); err != nil {
			t.Fatalf("Perform(WAIT) #%d: %v", i+1, err)
		}
	}

	if _, err := s.Perform(domain.ActionReset, json.RawMessage(`{"seed": 5}`)); err != nil {
		t.Fatalf("Perform(RESET): %v", err)
	}

	if len(rec.logs) != 1 {
		t.Fatalf("журналов сохранено %d, want 1", len(rec.logs))
	}
	journal := rec.logs[0]
	if journal.SessionID != s.ID || journal.Seed != 42 {
		t.Errorf("журнал: session=%s seed=%d", journal.SessionID, journal.Seed)
	}
	if len(journal.Actions) != 2 {
		t.Fatalf("в журнале %d действий, want 2", len(journal.Actions))
	}
	for i, a := range journal.Actions {
		if a.Action != domain.ActionWait || a.Turn != i+1 {
			t.Errorf("действие #%d: %s на ходе %d", i, a.Action, a.Turn)
		}
	}
}

func TestBuildState_HidesEntitiesBehindWalls(t *testing.T) {
	s := arenaSession(t, nil)
	addMonster(t, s, "rat", domain.Position{X: 7, Y: 4})

	// Сплошная стена между игроком и крысой. Исследованность
	// сбрасывается: зал был открыт целиком ещё до стены.
	for y := 0; y < 9; y++ {
		s.world.SetWall(domain.Position{X: 5, Y: y}, true)
	}
	s.explored = make(map[int]bool)
	s.markVisible()

	resp := s.Snapshot()
	if len(resp.State.Entities) != 0 {
		t.Errorf("существо за стеной попало в снимок: %+v", resp.State.Entities)
	}

	// Карта отдаёт только исследованную половину.
	m := s.MapSnapshot()
	if m.Grid.Width != 9 || m.Grid.Height != 9 {
		t.Errorf("grid = %+v", m.Grid)
	}
	if len(m.Tiles) == 0 || len(m.Tiles) >= 81 {
		t.Errorf("исследовано %d клеток из 81, ожидалась часть", len(m.Tiles))
	}
	for _, tile := range m.Tiles {
		if tile.X > 5 {
			t.Errorf("клетка (%d,%d) за стеной отдана клиенту", tile.X, tile.Y)
		}
	}
}

func TestSnapshots_InventoryAndSpells(t *testing.T) {
	s := arenaSession(t, nil)
	addMonster(t, s, "rat", domain.Position{X: 0, Y: 0})

	inv := s.InventorySnapshot()
	if len(inv.Items) != 4 {
		t.Fatalf("в стартовом инвентаре %d предметов, want 4", len(inv.Items))
	}
	for i, item := range inv.Items {
		if item.Index == nil || *item.Index != i {
			t.Errorf("предмет #%d без сквозного индекса: %+v", i, item)
		}
	}
	if inv.Essence != (api.VectorView{Fire: 10, Water: 10, Earth: 10, Air: 10}) {
		t.Errorf("essence = %+v", inv.Essence)
	}

	sp := s.SpellsSnapshot()
	if len(sp.Known) != 3 {
		t.Fatalf("известно %d слов, want 3", len(sp.Known))
	}
	words := []string{sp.Known[0].Word, sp.Known[1].Word, sp.Known[2].Word}
	if words[0] != "krata" || words[1] != "lumno" || words[2] != "heysa" {
		t.Errorf("порядок изучения нарушен: %v", words)
	}
	if !sp.Known[0].NeedsTarget {
		t.Error("krata наносит урон и обязана требовать цель")
	}
	if sp.Known[1].NeedsTarget {
		t.Error("lumno лечит кастера и не требует цели")
	}
	if sp.Known[0].Cost != (api.VectorView{Fire: 58, Water: 5, Earth: 10, Air: 12}) {
		t.Errorf("стоимость krata = %+v", sp.Known[0].Cost)
	}
}
