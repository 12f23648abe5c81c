package systems

import (
	"github.com/tripstych/elemental/internal/domain"
)

// MovementResult — результат вычисления шага.
type MovementResult struct {
	Dest     domain.Position
	HasMoved bool
	// BlockedBy — живое существо на целевой клетке (повод для bump-атаки).
	BlockedBy *domain.Creature
	// IsWall — целевая клетка непроходима или вне карты.
	IsWall bool
}

// CalculateMove вычисляет исход шага на (dx, dy). Не меняет состояние
// мира: решение, что делать с результатом (шагнуть, ударить, отказать),
// принимает вызывающий.
func CalculateMove(actor *domain.Creature, dx, dy int, w *domain.World) MovementResult {
	dest := actor.Pos.Shift(dx, dy)
	res := MovementResult{Dest: dest}

	if !w.Walkable(dest) {
		res.IsWall = true
		return res
	}

	if other := w.CreatureAt(dest); other != nil && other.ID != actor.ID {
		res.BlockedBy = other
		return res
	}

	res.HasMoved = true
	return res
}

// ApplyMove переносит существо на заранее проверенную клетку.
func ApplyMove(actor *domain.Creature, res MovementResult) {
	if res.HasMoved {
		actor.Pos = res.Dest
	}
}
