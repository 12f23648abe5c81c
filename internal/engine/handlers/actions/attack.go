package actions

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleAttack бьёт смежную цель в ближнем бою. Без targetId цель
// выбирается автоматически: первый живой монстр на соседней клетке.
func HandleAttack(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	var target *domain.Creature

	if p.TargetID == 0 {
		target = firstAdjacentMonster(ctx)
		if target == nil {
			return handlers.Result{}, domain.InvalidTarget("Рядом некого бить.")
		}
	} else {
		var err error
		target, err = systems.ValidateMeleeTarget(ctx.Actor, p.TargetID, ctx.Finder)
		if err != nil {
			return handlers.Result{}, err
		}
	}

	return resolveMelee(ctx, target), nil
}

// firstAdjacentMonster возвращает живого монстра на соседней клетке
// с наименьшим ID (порядок появления в мире).
func firstAdjacentMonster(ctx handlers.Context) *domain.Creature {
	for _, c := range ctx.World.CreaturesWithin(ctx.Actor.Pos, 1) {
		if c.Kind == domain.CreatureKindMonster {
			return c
		}
	}
	return nil
}
