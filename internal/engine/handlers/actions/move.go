package actions

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleMove делает шаг в одном из четырёх направлений. Шаг в клетку
// с монстром превращается в удар (bump-attack), шаг в стену отклоняется
// и хода не тратит.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	res := systems.CalculateMove(ctx.Actor, p.Dx, p.Dy, ctx.World)

	if res.BlockedBy != nil {
		if res.BlockedBy.Kind == domain.CreatureKindMonster {
			return resolveMelee(ctx, res.BlockedBy), nil
		}
		return handlers.Result{}, domain.Validation("Путь занят: там стоит %s.", res.BlockedBy.Name)
	}

	if res.IsWall {
		return handlers.Result{}, domain.Validation("Путь преграждён.")
	}

	systems.ApplyMove(ctx.Actor, res)
	return handlers.EmptyResult(), nil
}

// resolveMelee бьёт цель и, если удар оказался смертельным, разбирает
// последствия: труп, добычу и опыт.
func resolveMelee(ctx handlers.Context, target *domain.Creature) handlers.Result {
	msg, died := systems.Melee(ctx.Actor, target)
	messages := []string{msg}
	if died {
		messages = append(messages, systems.ResolveDeath(ctx.World, target)...)
		messages = append(messages, systems.AwardKill(ctx.Actor, target, domain.XPMeleeKill)...)
	}
	return handlers.Result{Messages: messages}
}
