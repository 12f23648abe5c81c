package engine

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/engine/handlers/actions"
	"github.com/tripstych/elemental/pkg/logger"
)

// GameService — реестр живых сессий. Контент и таблица хендлеров
// собираются один раз и делятся между сессиями только на чтение;
// изоляцию партий обеспечивают замки самих сессий.
type GameService struct {
	cfg      Config
	lib      *content.Library
	recorder Recorder
	handlers map[domain.ActionType]handlers.HandlerFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewService собирает сервис поверх загруженного контента.
// recorder может быть nil — тогда повторы не пишутся.
func NewService(cfg Config, lib *content.Library, recorder Recorder) *GameService {
	s := &GameService{
		cfg:      cfg,
		lib:      lib,
		recorder: recorder,
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		sessions: make(map[string]*Session),
	}
	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionAttack] = handlers.WithPayload(actions.HandleAttack)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionPickup] = handlers.WithEmptyPayload(actions.HandlePickup)
	s.handlers[domain.ActionUse] = handlers.WithPayload(actions.HandleUse)
	s.handlers[domain.ActionDrop] = handlers.WithPayload(actions.HandleDrop)
	s.handlers[domain.ActionCast] = handlers.WithPayload(actions.HandleCast)
	s.handlers[domain.ActionDissolve] = handlers.WithPayload(actions.HandleDissolve)
	s.handlers[domain.ActionTransform] = handlers.WithPayload(actions.HandleTransform)
	s.handlers[domain.ActionPermute] = handlers.WithPayload(actions.HandlePermute)
	s.handlers[domain.ActionDistill] = handlers.WithPayload(actions.HandleDistill)
}

// CreateSession создаёт новую партию и регистрирует её в реестре.
// Нулевое зерно заменяется зерном из конфигурации (если задано),
// иначе сессия выберет случайное.
func (s *GameService) CreateSession(playerName string, seed int64) (*Session, error) {
	if seed == 0 {
		seed = s.cfg.Seed
	}

	id := uuid.NewString()
	session, err := NewSession(id, s.lib, s.handlers, s.recorder, playerName, seed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"component":  "game_service",
		"session_id": id,
		"sessions":   s.Count(),
	}).Info("Session created")

	return session, nil
}

// Session возвращает сессию по идентификатору.
func (s *GameService) Session(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Count — количество живых сессий (для /healthz).
func (s *GameService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SessionIDs — идентификаторы живых сессий (для отладочных роутов).
func (s *GameService) SessionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Shutdown сбрасывает журналы всех живых сессий в хранилище повторов.
func (s *GameService) Shutdown() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		session.FlushReplay()
	}
}
