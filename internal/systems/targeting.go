package systems

import (
	"github.com/tripstych/elemental/internal/domain"
)

// CreatureFinder — интерфейс поиска существ (чтобы не зависеть от
// сессии напрямую).
type CreatureFinder interface {
	FindCreature(id int) *domain.Creature
}

// ValidateMeleeTarget проверяет цель ближнего удара: существует, жива,
// в соседней клетке (включая диагональ). Бить собственных союзников
// дозволено — за глупость движок не наказывает, опыта за них не дают.
func ValidateMeleeTarget(actor *domain.Creature, targetID int, finder CreatureFinder) (*domain.Creature, error) {
	target := finder.FindCreature(targetID)
	if target == nil || !target.Alive() {
		return nil, domain.InvalidTarget("Цель не найдена.")
	}
	if target.ID == actor.ID {
		return nil, domain.InvalidTarget("Бить себя бессмысленно.")
	}
	if !actor.Pos.IsAdjacent(target.Pos) {
		return nil, domain.InvalidTarget("Цель слишком далеко для удара.")
	}
	return target, nil
}

// ValidateSpellTarget проверяет цель направленного заклинания:
// существует, жива, в радиусе восприятия и на прямой видимости.
func ValidateSpellTarget(actor *domain.Creature, targetID int, finder CreatureFinder, w *domain.World) (*domain.Creature, error) {
	target := finder.FindCreature(targetID)
	if target == nil || !target.Alive() {
		return nil, domain.InvalidTarget("Цель не найдена.")
	}
	if chebyshev(actor.Pos, target.Pos) > domain.VisionRadius {
		return nil, domain.InvalidTarget("Цель слишком далеко.")
	}
	if !HasLineOfSight(w, actor.Pos, target.Pos) {
		return nil, domain.InvalidTarget("Вы не видите цель.")
	}
	return target, nil
}
