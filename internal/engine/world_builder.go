package engine

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/api"
	"github.com/tripstych/elemental/pkg/dungeon"
	"github.com/tripstych/elemental/pkg/logger"
)

// Шансы заселения комнаты (кроме стартовой).
const (
	roomMonsterChance = 0.7
	roomLootChance    = 0.6
	roomSolventChance = 0.3
)

// rebuild собирает состояние партии с нуля на данном зерне: карта,
// игрок в первой комнате, монстры и сырьё для растворения - в остальных.
func (s *Session) rebuild(playerName string, seed int64) error {
	if playerName == "" {
		playerName = "Алхимик"
	}

	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.nextID = 0
	s.turn = 0
	s.phase = api.PhasePlayerTurn
	s.explored = make(map[int]bool)

	layout := dungeon.Generate(s.rng)
	s.world = layout.World

	s.player = content.NewPlayer(playerName, layout.PlayerStart, s.allocID)
	s.world.AddCreature(s.player)

	if err := s.populate(layout.Rooms); err != nil {
		return err
	}

	s.replay = &domain.ReplayLog{
		SessionID: s.ID,
		Seed:      seed,
		Timestamp: time.Now().Unix(),
		Actions:   make([]domain.ReplayAction, 0),
	}

	s.markVisible()

	logger.Log.WithFields(logrus.Fields{
		"component":  "session",
		"session_id": s.ID,
		"seed":       seed,
		"rooms":      len(layout.Rooms),
		"creatures":  len(s.world.Creatures),
	}).Info("Session world built")

	return nil
}

// populate заселяет комнаты. Первая остаётся безопасной стартовой;
// если броски не дали ни одного монстра, последний гарантируется:
// партии нужен хотя бы один враг, иначе она выиграна до первого хода.
func (s *Session) populate(rooms []dungeon.Rect) error {
	hostiles := content.HostileKeys()
	classes := content.ObjectClasses()
	solvents := content.SolventKeys()

	monsters := 0
	for i := 1; i < len(rooms); i++ {
		cx, cy := rooms[i].Center()
		center := domain.Position{X: cx, Y: cy}

		if s.rng.Float64() < roomMonsterChance {
			if err := s.spawnMonster(hostiles, center); err != nil {
				return err
			}
			monsters++
		}

		if s.rng.Float64() < roomLootChance {
			class := classes[s.rng.Intn(len(classes))]
			item, err := content.NewObject(s.allocID(), class)
			if err != nil {
				return err
			}
			s.world.DropAt(center, item)
		}

		if s.rng.Float64() < roomSolventChance {
			key := solvents[s.rng.Intn(len(solvents))]
			item, err := content.NewSolvent(s.allocID(), key)
			if err != nil {
				return err
			}
			s.world.DropAt(center, item)
		}
	}

	if monsters == 0 && len(rooms) > 1 {
		cx, cy := rooms[len(rooms)-1].Center()
		if err := s.spawnMonster(hostiles, domain.Position{X: cx, Y: cy}); err != nil {
			return err
		}
	}
	return nil
}

// spawnMonster разыгрывает архетип и ставит монстра на свободную
// клетку у центра комнаты. Занятый пятачок - монстра не будет,
// это не ошибка генерации.
func (s *Session) spawnMonster(hostiles []string, center domain.Position) error {
	pos, ok := s.world.FreeTileNear(center)
	if !ok {
		return nil
	}
	key := hostiles[s.rng.Intn(len(hostiles))]
	m, err := content.NewMonster(key, pos, s.rng, s.allocID)
	if err != nil {
		return err
	}
	s.world.AddCreature(m)
	return nil
}
