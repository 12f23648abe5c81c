package actions

import (
	"fmt"

	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/spells"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleTransform сдвигает подпись известного слова на знаковую дельту
// и ищет, какое слово живёт на новом векторе. Чистый запрос: ни
// эссенция, ни инвентарь не тратятся, но ход занят размышлением.
func HandleTransform(ctx handlers.Context, p api.TransformPayload) (handlers.Result, error) {
	base, err := knownSpell(ctx, p.Word)
	if err != nil {
		return handlers.Result{}, err
	}

	out := ctx.Library.Registry.Transform(base, p.DFire, p.DWater, p.DEarth, p.DAir)
	return discoveryResult(ctx, base, out), nil
}

// discoveryResult превращает исход трансформации в повествование и,
// если найденное слово новое, вписывает его в гримуар. Пустой вектор -
// штатный исход, не ошибка: ход уже потрачен на размышление.
func discoveryResult(ctx handlers.Context, base *spells.Spell, out spells.Outcome) handlers.Result {
	if out.Spell == nil {
		return handlers.Result{Messages: []string{fmt.Sprintf(
			"Вы искажаете «%s», но на векторе %s не откликается ни одно слово.",
			base.Word, out.Result.String(),
		)}}
	}

	if ctx.Actor.LearnSpell(out.Spell.Word) {
		return handlers.Result{Messages: []string{fmt.Sprintf(
			"Вектор %s резонирует: вы открываете слово «%s»!",
			out.Result.String(), out.Spell.Word,
		)}}
	}

	return handlers.Result{Messages: []string{fmt.Sprintf(
		"Вектор %s приводит к уже известному слову «%s».",
		out.Result.String(), out.Spell.Word,
	)}}
}
