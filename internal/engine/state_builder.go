package engine

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// buildResponse собирает полный ответ клиенту: фазу, снимок мира и
// повествование хода. Вызывается под замком сессии.
func (s *Session) buildResponse(messages []string) *api.ServerResponse {
	respType := api.ResponseUpdate
	if s.over() {
		respType = api.ResponseGameOver
	}
	return &api.ServerResponse{
		Type:      respType,
		SessionID: s.ID,
		Turn:      s.turn,
		Phase:     s.phase,
		State:     s.buildState(),
		Messages:  messages,
	}
}

// buildState создает персональный "снимок" мира для игрока: его лист
// персонажа, существа в поле зрения и предметы под ногами.
func (s *Session) buildState() *api.StateView {
	state := &api.StateView{Player: s.playerView()}

	// Радиус отсекает дальних, текущее поле зрения - спрятанных за стенами.
	for _, c := range s.world.CreaturesWithin(s.player.Pos, domain.VisionRadius) {
		if c.ID == s.player.ID {
			continue
		}
		if !s.visible[s.world.Index(c.Pos.X, c.Pos.Y)] {
			continue
		}
		state.Entities = append(state.Entities, toEntityView(c, s.player.Pos))
	}

	for _, item := range s.world.ItemsAt(s.player.Pos) {
		state.FloorHere = append(state.FloorHere, toItemView(item, nil))
	}

	return state
}

// markVisible пересчитывает поле зрения игрока и дополняет туман войны.
func (s *Session) markVisible() {
	s.visible = systems.ComputeVisibleTiles(s.world, s.player.Pos, domain.VisionRadius)
	for idx := range s.visible {
		s.explored[idx] = true
	}
}

// --- DTO-КОНВЕРТЕРЫ ---

func (s *Session) playerView() api.PlayerView {
	p := s.player
	return api.PlayerView{
		ID:          p.ID,
		Name:        p.Name,
		Pos:         toPositionView(p.Pos),
		HP:          p.HP,
		MaxHP:       p.MaxHP,
		Stamina:     p.Stamina,
		MaxStamina:  p.MaxStamina,
		Attack:      p.EffectiveAttack(),
		Defense:     p.EffectiveDefense(),
		Level:       p.Level,
		XP:          p.XP,
		NextLevelXP: p.Level * domain.LevelXPStep,
		Essence:     toVectorView(p.Pool),
		MaxEssence:  p.MaxEssence,
		Statuses:    toStatusViews(p.Statuses),
		Grimoire:    append([]string(nil), p.Grimoire...),
	}
}

// toEntityView конвертирует существо в DTO для отправки клиенту.
// Чужое существо видно снаружи: здоровье и дистанция, но не запасы.
func toEntityView(c *domain.Creature, observer domain.Position) api.EntityView {
	return api.EntityView{
		ID:        c.ID,
		Kind:      c.Kind,
		Name:      c.Name,
		Archetype: c.Archetype,
		Pos:       toPositionView(c.Pos),
		HP:        c.HP,
		MaxHP:     c.MaxHP,
		Adjacent:  observer.IsAdjacent(c.Pos),
		Duration:  c.Duration,
	}
}

// toItemView конвертирует предмет. index - позиция в инвентаре;
// nil для предметов на полу.
func toItemView(item *domain.Item, index *int) api.ItemView {
	view := api.ItemView{
		Index: index,
		Name:  item.Name,
		Class: item.Class,
		Kind:  item.Kind,
	}

	if item.IsSolvent() {
		view.Uses = item.Uses
		view.Extraction = &api.ExtractionView{
			Fire:  item.Extraction.Fire,
			Water: item.Extraction.Water,
			Earth: item.Extraction.Earth,
			Air:   item.Extraction.Air,
		}
		return view
	}

	view.Category = item.Category
	view.Weight = item.Weight
	comp := toVectorView(item.Composition)
	view.Composition = &comp
	return view
}

func toStatusViews(statuses []*domain.StatusEffect) []api.StatusView {
	if len(statuses) == 0 {
		return nil
	}
	out := make([]api.StatusView, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, api.StatusView{
			Name:           st.Name,
			Remaining:      st.Remaining,
			AttackDelta:    st.AttackDelta,
			DefenseDelta:   st.DefenseDelta,
			PeriodicDamage: st.PeriodicDamage,
		})
	}
	return out
}

func toVectorView(v essence.Vector) api.VectorView {
	return api.VectorView{Fire: v.Fire, Water: v.Water, Earth: v.Earth, Air: v.Air}
}

func toPositionView(p domain.Position) api.PositionView {
	return api.PositionView{X: p.X, Y: p.Y}
}

// --- СНИМКИ ДЛЯ REST-ЗАПРОСОВ ---

// Snapshot возвращает актуальное состояние сессии (GET .../state).
func (s *Session) Snapshot() *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildResponse(nil)
}

// InventorySnapshot возвращает инвентарь с индексами для USE, DROP
// и DISSOLVE (GET .../inventory).
func (s *Session) InventorySnapshot() *api.InventoryResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &api.InventoryResponse{
		Items:      make([]api.ItemView, 0, len(s.player.Inventory)),
		Essence:    toVectorView(s.player.Pool),
		MaxEssence: s.player.MaxEssence,
	}
	for i, item := range s.player.Inventory {
		idx := i
		resp.Items = append(resp.Items, toItemView(item, &idx))
	}
	return resp
}

// SpellsSnapshot возвращает гримуар с полными данными слов
// (GET .../spells). Порядок - порядок изучения.
func (s *Session) SpellsSnapshot() *api.SpellsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &api.SpellsResponse{Known: make([]api.SpellView, 0, len(s.player.Grimoire))}
	for _, word := range s.player.Grimoire {
		sp, ok := s.lib.Registry.ByWord(word)
		if !ok {
			continue
		}
		resp.Known = append(resp.Known, api.SpellView{
			Word:        sp.Word,
			Spirit:      sp.Spirit,
			Definition:  sp.Definition,
			Cost:        toVectorView(sp.Cost()),
			NeedsTarget: sp.NeedsTarget(),
		})
	}
	return resp
}

// MapSnapshot возвращает исследованную часть карты (GET .../map).
// Клетки за туманом войны не отдаются вовсе.
func (s *Session) MapSnapshot() *api.MapResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := &api.MapResponse{
		Grid: api.GridMeta{Width: s.world.Width, Height: s.world.Height},
	}
	for y := 0; y < s.world.Height; y++ {
		for x := 0; x < s.world.Width; x++ {
			idx := s.world.Index(x, y)
			if !s.explored[idx] {
				continue
			}
			resp.Tiles = append(resp.Tiles, api.TileView{
				X:          x,
				Y:          y,
				IsWall:     s.world.Tiles[idx].IsWall,
				IsVisible:  s.visible[idx],
				IsExplored: true,
			})
		}
	}
	return resp
}
