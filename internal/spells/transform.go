package spells

import (
	"github.com/tripstych/elemental/internal/essence"
)

// Outcome — результат трансформации известного заклинания.
// Spell равен nil, когда на получившемся векторе ничего не определено:
// это штатный исход («слово растворяется в шуме»), не ошибка.
type Outcome struct {
	Result essence.Vector
	Spell  *Spell
}

// Transform сдвигает подпись базового заклинания на знаковую дельту
// покомпонентно (с зажимом в допустимый диапазон) и ищет, какое слово
// живёт на новом векторе. Ни эссенция, ни инвентарь не тратятся.
func (r *Registry) Transform(base *Spell, df, dw, de, da int) Outcome {
	result := base.Vector.Shift(df, dw, de, da)
	sp, _ := r.ByVector(result)
	return Outcome{Result: result, Spell: sp}
}

// Permute применяет именованную перестановку компонент к подписи
// базового заклинания и ищет слово на новом векторе.
// Ошибка возможна только для неизвестного имени перестановки.
func (r *Registry) Permute(base *Spell, p essence.Permutation) (Outcome, error) {
	result, err := essence.Permute(base.Vector, p)
	if err != nil {
		return Outcome{}, err
	}
	sp, _ := r.ByVector(result)
	return Outcome{Result: result, Spell: sp}, nil
}
