package content

import (
	"math/rand"
	"sort"

	"github.com/tripstych/elemental/internal/domain"
)

// LootEntry — шанс, что монстр появится с предметом в инвентаре.
// Key разрешается сначала по таблице растворителей, затем по материалам.
type LootEntry struct {
	Key    string
	Chance float64
}

// MonsterSpec — архетип существа.
//
// Таблица описывает и враждебных монстров, и призываемых союзников:
// у призывов XP и лут нулевые, а HP и срок жизни приходят из формулы
// заклинания, так что табличный HP для них — запасной вариант.
type MonsterSpec struct {
	Key     string
	Name    string
	HP      int
	Attack  int
	Defense int
	XP      int
	Loot    []LootEntry
}

var monsterTable = map[string]MonsterSpec{
	// Обитатели подземелья
	"rat": {
		Key: "rat", Name: "Giant Rat",
		HP: 12, Attack: 4, Defense: 1, XP: 5,
		Loot: []LootEntry{{Key: "bone", Chance: 0.3}, {Key: "flesh", Chance: 0.5}},
	},
	"goblin": {
		Key: "goblin", Name: "Goblin",
		HP: 25, Attack: 7, Defense: 3, XP: 10,
		Loot: []LootEntry{{Key: "coal", Chance: 0.25}, {Key: "aqua_ignis", Chance: 0.15}},
	},
	"orc": {
		Key: "orc", Name: "Orc",
		HP: 45, Attack: 11, Defense: 6, XP: 20,
		Loot: []LootEntry{{Key: "stone", Chance: 0.4}, {Key: "sunstone", Chance: 0.1}},
	},
	"shade": {
		Key: "shade", Name: "Shade",
		HP: 30, Attack: 9, Defense: 2, XP: 25,
		Loot: []LootEntry{{Key: "moonstone", Chance: 0.35}, {Key: "feather", Chance: 0.2}},
	},

	// Призываемые союзники
	"fire_elemental":  {Key: "fire_elemental", Name: "Fire Elemental", HP: 30, Attack: 9, Defense: 3},
	"water_elemental": {Key: "water_elemental", Name: "Water Elemental", HP: 30, Attack: 7, Defense: 5},
	"earth_elemental": {Key: "earth_elemental", Name: "Earth Elemental", HP: 40, Attack: 8, Defense: 8},
	"air_elemental":   {Key: "air_elemental", Name: "Air Elemental", HP: 25, Attack: 10, Defense: 1},
	"insect_swarm":    {Key: "insect_swarm", Name: "Insect Swarm", HP: 20, Attack: 3, Defense: 0},
}

// MonsterSpecFor возвращает архетип по ключу.
func MonsterSpecFor(key string) (MonsterSpec, bool) {
	spec, ok := monsterTable[key]
	return spec, ok
}

// MonsterKeys — отсортированный список ключей таблицы.
func MonsterKeys() []string {
	out := make([]string, 0, len(monsterTable))
	for key := range monsterTable {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// HostileKeys — ключи враждебных архетипов (XP > 0), для заселения карты.
func HostileKeys() []string {
	var out []string
	for key, spec := range monsterTable {
		if spec.XP > 0 {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// NewMonster собирает враждебное существо на клетке. Лут разыгрывается
// сразу при появлении сессионным генератором: смерть потом просто
// высыпает инвентарь, без повторных бросков.
// nextID выдаёт идентификаторы и для монстра, и для его предметов.
func NewMonster(key string, pos domain.Position, rng *rand.Rand, nextID func() int) (*domain.Creature, error) {
	spec, ok := monsterTable[key]
	if !ok {
		return nil, domain.Validation("Неизвестный архетип %q.", key)
	}

	m := &domain.Creature{
		ID:        nextID(),
		Name:      spec.Name,
		Kind:      domain.CreatureKindMonster,
		Archetype: spec.Key,
		Pos:       pos,
		HP:        spec.HP,
		MaxHP:     spec.HP,
		Attack:    spec.Attack,
		Defense:   spec.Defense,
		XPValue:   spec.XP,
		Level:     1,
	}

	for _, entry := range spec.Loot {
		if rng.Float64() >= entry.Chance {
			continue
		}
		item, err := newLootItem(nextID(), entry.Key)
		if err != nil {
			return nil, err
		}
		m.Inventory = append(m.Inventory, item)
	}
	return m, nil
}

// NewSummon собирает призванного союзника: имя и боевые характеристики
// из архетипа, HP и срок жизни — из формулы заклинания.
func NewSummon(id int, key string, hp, duration int, pos domain.Position) (*domain.Creature, error) {
	spec, ok := monsterTable[key]
	if !ok {
		return nil, domain.Validation("Неизвестный архетип %q.", key)
	}
	if hp < 1 {
		hp = spec.HP
	}
	return &domain.Creature{
		ID:        id,
		Name:      spec.Name,
		Kind:      domain.CreatureKindSummon,
		Archetype: spec.Key,
		Pos:       pos,
		HP:        hp,
		MaxHP:     hp,
		Attack:    spec.Attack,
		Defense:   spec.Defense,
		Duration:  duration,
		Level:     1,
	}, nil
}

// newLootItem разрешает ключ лута: растворители имеют приоритет,
// остальное — материал.
func newLootItem(id int, key string) (*domain.Item, error) {
	if _, ok := solventTable[key]; ok {
		return NewSolvent(id, key)
	}
	return NewObject(id, key)
}
