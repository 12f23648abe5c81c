package actions

import (
	"strings"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/spells"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleCast произносит известное слово силы. Стоимость списывается
// атомарно до применения эффектов; заклинаниям с враждебными эффектами
// нужна живая цель в поле зрения.
func HandleCast(ctx handlers.Context, p api.CastPayload) (handlers.Result, error) {
	sp, err := knownSpell(ctx, p.Word)
	if err != nil {
		return handlers.Result{}, err
	}

	var target *domain.Creature
	if sp.NeedsTarget() {
		if p.TargetID == 0 {
			return handlers.Result{}, domain.InvalidTarget("Слову «%s» нужна цель.", sp.Word)
		}
		target, err = systems.ValidateSpellTarget(ctx.Actor, p.TargetID, ctx.Finder, ctx.World)
		if err != nil {
			return handlers.Result{}, err
		}
	}

	res, err := spells.Cast(sp, spells.CastContext{
		Caster: ctx.Actor,
		Target: target,
		World:  ctx.Effects,
	})
	if err != nil {
		return handlers.Result{}, err
	}

	messages := res.Messages
	for _, victim := range res.Kills {
		if victim.Kind == domain.CreatureKindPlayer {
			// Гибель кастера от собственной области фиксирует сессия.
			continue
		}
		messages = append(messages, systems.ResolveDeath(ctx.World, victim)...)
		messages = append(messages, systems.AwardKill(ctx.Actor, victim, domain.XPSpellKill)...)
	}

	return handlers.Result{Messages: messages}, nil
}

// knownSpell находит слово в реестре и проверяет, что оно уже вписано
// в гримуар актора. Общая проверка для CAST, TRANSFORM и PERMUTE.
func knownSpell(ctx handlers.Context, word string) (*spells.Spell, error) {
	w := strings.ToLower(strings.TrimSpace(word))

	sp, ok := ctx.Library.Registry.ByWord(w)
	if !ok {
		return nil, domain.Validation("Слово «%s» ничего не значит.", word)
	}
	if !ctx.Actor.KnowsSpell(sp.Word) {
		return nil, domain.Validation("Слово «%s» ещё не открыто вам.", sp.Word)
	}
	return sp, nil
}
