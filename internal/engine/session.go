package engine

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/pkg/api"
	"github.com/tripstych/elemental/pkg/logger"
)

// Recorder сохраняет завершённые журналы повторов. nil отключает запись.
type Recorder interface {
	Save(log *domain.ReplayLog) error
}

// Session представляет собой одну изолированную партию: карта, игрок,
// монстры и конечный автомат ходов. Все действия сессии сериализует её
// мьютекс; контент разделяется между сессиями только на чтение.
type Session struct {
	ID string

	mu sync.Mutex

	lib      *content.Library
	handlers map[domain.ActionType]handlers.HandlerFunc
	recorder Recorder

	world  *domain.World
	player *domain.Creature

	turn  int
	phase string
	seed  int64
	rng   *rand.Rand

	nextID int

	// visible - текущее поле зрения игрока, explored - клетки, которые
	// он когда-либо видел (туман войны для GET .../map). Ключ - индекс тайла.
	visible  map[int]bool
	explored map[int]bool

	replay *domain.ReplayLog
}

// NewSession создаёт партию: генерирует мир на зерне и ставит автомат
// в ожидание первого действия игрока.
func NewSession(id string, lib *content.Library, h map[domain.ActionType]handlers.HandlerFunc, rec Recorder, playerName string, seed int64) (*Session, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		ID:       id,
		lib:      lib,
		handlers: h,
		recorder: rec,
	}
	if err := s.rebuild(playerName, seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Perform разрешает одно внешнее действие: команда игрока, затем ход
// мира (союзники, монстры, тики статусов), затем снимок с повествованием.
//
// Отклонённое действие возвращает ошибку таксономии: ход не потрачен,
// состояние не тронуто.
func (s *Session) Perform(action domain.ActionType, payload json.RawMessage) (*api.ServerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// RESET - единственное действие, допустимое и после конца партии.
	if action == domain.ActionReset {
		return s.performReset(payload)
	}

	if s.over() {
		return nil, domain.StateFailure("Партия окончена. Начните заново (RESET).")
	}

	handler, ok := s.handlers[action]
	if !ok {
		return nil, domain.Validation("Неизвестное действие.")
	}

	result, err := handler(s.handlerContext(), payload)
	if err != nil {
		return nil, err
	}

	// Действие принято: до следующего PLAYER_TURN ход принадлежит миру.
	messages := result.Messages
	messages = append(messages, s.resolveWorldTurn()...)
	s.turn++

	s.record(action, payload)
	s.markVisible()

	if s.over() {
		s.flushReplay()
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "session",
		"session_id": s.ID,
		"turn":       s.turn,
		"action":     action.String(),
		"phase":      s.phase,
	}).Debug("Action resolved")

	return s.buildResponse(messages), nil
}

// performReset пересобирает партию на новом зерне под тем же ID.
// Журнал прежней партии уходит в хранилище повторов.
func (s *Session) performReset(payload json.RawMessage) (*api.ServerResponse, error) {
	var p api.ResetPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, domain.Validation("Не удалось разобрать параметры действия: %v.", err)
		}
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.flushReplay()

	name := s.player.Name
	if err := s.rebuild(name, seed); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "session",
		"session_id": s.ID,
		"seed":       seed,
	}).Info("Session reset")

	return s.buildResponse([]string{"Мир собирается заново. Партия начата."}), nil
}

// record дописывает действие в журнал повторов текущей партии.
func (s *Session) record(action domain.ActionType, payload json.RawMessage) {
	if s.replay == nil {
		return
	}
	s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
		Turn:    s.turn,
		Action:  action,
		Payload: payload,
	})
}

// flushReplay отдаёт накопленный журнал хранилищу. Вызывается при
// завершении партии и перед пересборкой; пустые журналы не пишутся.
func (s *Session) flushReplay() {
	if s.recorder == nil || s.replay == nil || len(s.replay.Actions) == 0 {
		s.replay = nil
		return
	}
	if err := s.recorder.Save(s.replay); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component":  "session",
			"session_id": s.ID,
		}).WithError(err).Warn("Replay save failed")
	}
	s.replay = nil
}

// FlushReplay сбрасывает накопленный журнал, не дожидаясь конца партии.
// Вызывается при остановке сервера, чтобы партии в полёте не теряли повторы.
func (s *Session) FlushReplay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushReplay()
}

func (s *Session) over() bool {
	return s.phase == api.PhaseGameOverDefeat || s.phase == api.PhaseGameOverVictory
}

// allocID выдаёт следующий сессионный идентификатор. Монотонность
// задаёт детерминированный порядок ходов монстров.
func (s *Session) allocID() int {
	s.nextID++
	return s.nextID
}

func (s *Session) handlerContext() handlers.Context {
	return handlers.Context{
		World:   s.world,
		Actor:   s.player,
		Library: s.lib,
		Finder:  s,
		Effects: s,
	}
}

// --- РЕАЛИЗАЦИЯ systems.CreatureFinder ---

// FindCreature находит живое существо по ID.
func (s *Session) FindCreature(id int) *domain.Creature {
	for _, c := range s.world.Creatures {
		if c.ID == id && c.Alive() {
			return c
		}
	}
	return nil
}

// --- РЕАЛИЗАЦИЯ spells.World ---

// CreaturesWithin возвращает живых существ в радиусе от точки.
func (s *Session) CreaturesWithin(center domain.Position, radius int) []*domain.Creature {
	return s.world.CreaturesWithin(center, radius)
}

// PlaceObject материализует предмет контента на клетке.
func (s *Session) PlaceObject(objectKey string, hp int, at domain.Position) (*domain.Item, error) {
	item, err := content.NewObject(s.allocID(), objectKey)
	if err != nil {
		return nil, err
	}
	if hp > 0 {
		item.HP = hp
	}
	s.world.DropAt(at, item)
	return item, nil
}

// SpawnSummon создаёт временного союзника на свободной клетке рядом.
func (s *Session) SpawnSummon(creatureKey string, hp, duration int, near domain.Position) (*domain.Creature, error) {
	pos, ok := s.world.FreeTileNear(near)
	if !ok {
		return nil, domain.Validation("Рядом нет свободного места для призыва.")
	}
	ally, err := content.NewSummon(s.allocID(), creatureKey, hp, duration, pos)
	if err != nil {
		return nil, err
	}
	s.world.AddCreature(ally)
	return ally, nil
}

// ReplaceWithObject убирает существо из мира и оставляет на его клетке
// инертный предмет контента.
func (s *Session) ReplaceWithObject(victim *domain.Creature, objectKey string) (*domain.Item, error) {
	item, err := content.NewObject(s.allocID(), objectKey)
	if err != nil {
		return nil, err
	}
	s.world.RemoveCreature(victim.ID)
	s.world.DropAt(victim.Pos, item)
	return item, nil
}
