package spells

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/logger"
)

// Registry — неизменяемый индекс заклинаний контента.
//
// Два пути поиска: по слову (каст известного заклинания) и по
// квантованному вектору (открытие через трансформацию). Реестр
// никогда не придумывает заклинаний — он только находит те, что
// уже определены в контенте.
type Registry struct {
	byWord   map[string]*Spell
	byVector map[essence.Vector]*Spell
	words    []string

	collisions []Collision
}

// Collision — два заклинания контента претендуют на один вектор.
// Побеждает зарегистрированное первым; позднее никогда не затирает
// раннее молча.
type Collision struct {
	Vector essence.Vector
	Kept   string
	Lost   string
}

// NewRegistry строит индекс в порядке следования заклинаний.
// Порядок значим: при совпадении векторов выигрывает первое.
func NewRegistry(list []*Spell) *Registry {
	r := &Registry{
		byWord:   make(map[string]*Spell, len(list)),
		byVector: make(map[essence.Vector]*Spell, len(list)),
	}

	for _, sp := range list {
		if _, dup := r.byWord[sp.Word]; dup {
			logger.Log.WithField("word", sp.Word).Warn("duplicate spell word skipped")
			continue
		}
		r.byWord[sp.Word] = sp
		r.words = append(r.words, sp.Word)

		key := sp.Vector.Quantized()
		if kept, busy := r.byVector[key]; busy {
			r.collisions = append(r.collisions, Collision{
				Vector: key,
				Kept:   kept.Word,
				Lost:   sp.Word,
			})
			logger.Log.WithFields(logrus.Fields{
				"vector": key.String(),
				"kept":   kept.Word,
				"lost":   sp.Word,
			}).Warn("spell vector collision, first registration wins")
			continue
		}
		r.byVector[key] = sp
	}

	sort.Strings(r.words)
	return r
}

// ByWord ищет заклинание по слову силы.
func (r *Registry) ByWord(word string) (*Spell, bool) {
	sp, ok := r.byWord[word]
	return sp, ok
}

// ByVector ищет заклинание по квантованному вектору.
func (r *Registry) ByVector(v essence.Vector) (*Spell, bool) {
	sp, ok := r.byVector[v.Quantized()]
	return sp, ok
}

// Words — отсортированный список всех слов контента.
func (r *Registry) Words() []string {
	out := make([]string, len(r.words))
	copy(out, r.words)
	return out
}

// Len — количество зарегистрированных заклинаний.
func (r *Registry) Len() int {
	return len(r.byWord)
}

// Collisions — зафиксированные конфликты векторов (для валидации контента).
func (r *Registry) Collisions() []Collision {
	return r.collisions
}
