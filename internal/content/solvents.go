package content

import (
	"sort"

	"github.com/tripstych/elemental/internal/domain"
)

// SolventSpec — растворитель из таблицы контента.
//
// Extraction — маска и КПД одновременно: ноль закрывает стихию,
// значение в (0,1] задаёт долю извлекаемой эссенции. Uses — сколько
// растворений выдерживает одна колба.
type SolventSpec struct {
	Key        string
	Name       string
	Extraction domain.Extraction
	Uses       int
}

var solventTable = map[string]SolventSpec{
	"aqua_ignis": {
		Key:        "aqua_ignis",
		Name:       "Aqua Ignis",
		Extraction: domain.Extraction{Fire: 0.8, Air: 0.8},
		Uses:       4,
	},
	"oleum_terra": {
		Key:        "oleum_terra",
		Name:       "Oleum Terra",
		Extraction: domain.Extraction{Earth: 0.9, Water: 0.9},
		Uses:       4,
	},
	"aether_flux": {
		Key:        "aether_flux",
		Name:       "Aether Flux",
		Extraction: domain.Extraction{Air: 0.95, Fire: 0.95},
		Uses:       3,
	},
	"aqua_profundis": {
		Key:        "aqua_profundis",
		Name:       "Aqua Profundis",
		Extraction: domain.Extraction{Water: 0.95, Earth: 0.95},
		Uses:       3,
	},
	"alkahest": {
		Key:        "alkahest",
		Name:       "Alkahest",
		Extraction: domain.Extraction{Fire: 1.0, Water: 1.0, Earth: 1.0, Air: 1.0},
		Uses:       2,
	},
}

// SolventSpecFor возвращает описание растворителя по ключу.
func SolventSpecFor(key string) (SolventSpec, bool) {
	spec, ok := solventTable[key]
	return spec, ok
}

// SolventKeys — отсортированный список ключей таблицы.
func SolventKeys() []string {
	out := make([]string, 0, len(solventTable))
	for key := range solventTable {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// NewSolvent собирает полную колбу растворителя.
func NewSolvent(id int, key string) (*domain.Item, error) {
	spec, ok := solventTable[key]
	if !ok {
		return nil, domain.Validation("Неизвестный растворитель %q.", key)
	}
	return &domain.Item{
		ID:         id,
		Name:       spec.Name,
		Class:      spec.Key,
		Kind:       domain.ItemKindSolvent,
		Extraction: spec.Extraction,
		Uses:       spec.Uses,
	}, nil
}
