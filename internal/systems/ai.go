package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

// ComputeMonsterAction решает, что делает монстр в свою фазу:
//   - игрок в соседней клетке (включая диагональ) — атака;
//   - игрок виден и в радиусе восприятия — один жадный шаг к нему;
//   - иначе — простой.
//
// Функция ничего не меняет в мире, только выбирает действие.
func ComputeMonsterAction(monster, player *domain.Creature, w *domain.World) (action domain.ActionType, dx, dy int) {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component":  "ai_system",
		"monster_id": monster.ID,
		"monster":    monster.Name,
	})

	if !monster.Alive() || !player.Alive() {
		return domain.ActionWait, 0, 0
	}

	if monster.Pos.IsAdjacent(player.Pos) {
		aiLogger.Debug("Target adjacent, attacking.")
		return domain.ActionAttack, 0, 0
	}

	inRange := chebyshev(monster.Pos, player.Pos) <= domain.VisionRadius
	if !inRange || !HasLineOfSight(w, monster.Pos, player.Pos) {
		aiLogger.Debug("Target out of perception, idling.")
		return domain.ActionWait, 0, 0
	}

	dx, dy = greedyStep(monster, player.Pos, w)
	if dx == 0 && dy == 0 {
		aiLogger.Debug("Path blocked, idling.")
		return domain.ActionWait, 0, 0
	}

	aiLogger.WithFields(logrus.Fields{"dx": dx, "dy": dy}).Debug("Stepping toward target.")
	return domain.ActionMove, dx, dy
}

// greedyStep выбирает один шаг, сокращающий дистанцию до цели.
// Сначала пробуем диагональ по знакам разности, при блокировке
// скользим вдоль приоритетной оси (той, где разрыв больше).
func greedyStep(monster *domain.Creature, target domain.Position, w *domain.World) (int, int) {
	dxRaw := target.X - monster.Pos.X
	dyRaw := target.Y - monster.Pos.Y

	stepX := sign(dxRaw)
	stepY := sign(dyRaw)

	if stepFree(monster, stepX, stepY, w) {
		return stepX, stepY
	}

	// Smart sliding: ось с большим разрывом — первой.
	tryXFirst := math.Abs(float64(dxRaw)) > math.Abs(float64(dyRaw))

	if tryXFirst {
		if stepX != 0 && stepFree(monster, stepX, 0, w) {
			return stepX, 0
		}
		if stepY != 0 && stepFree(monster, 0, stepY, w) {
			return 0, stepY
		}
	} else {
		if stepY != 0 && stepFree(monster, 0, stepY, w) {
			return 0, stepY
		}
		if stepX != 0 && stepFree(monster, stepX, 0, w) {
			return stepX, 0
		}
	}

	return 0, 0 // Тупик.
}

func stepFree(c *domain.Creature, dx, dy int, w *domain.World) bool {
	return CalculateMove(c, dx, dy, w).HasMoved
}

// chebyshev — дистанция в шагах короля: радиусы восприятия и зон
// действия считаются именно так, чтобы диагональ не была дороже.
func chebyshev(a, b domain.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
