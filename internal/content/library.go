package content

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/internal/spells"
	"github.com/tripstych/elemental/pkg/logger"
)

// Library — весь загруженный контент игры: реестр заклинаний поверх
// статических таблиц пакета. Создаётся один раз при старте и дальше
// только читается, поэтому безопасно делится между сессиями.
type Library struct {
	Registry *spells.Registry
}

// Load загружает контент из каталога данных и проверяет перекрёстные
// ссылки. Любая ошибка здесь — причина не стартовать.
func Load(dataDir string) (*Library, error) {
	list, err := LoadSpells(filepath.Join(dataDir, "spells.json"))
	if err != nil {
		return nil, err
	}

	if err := validateReferences(list); err != nil {
		return nil, err
	}

	reg := spells.NewRegistry(list)

	for _, word := range StartingGrimoire() {
		if _, ok := reg.ByWord(word); !ok {
			return nil, fmt.Errorf("starting grimoire references unknown word %q", word)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "content",
		"spells":     reg.Len(),
		"collisions": len(reg.Collisions()),
		"objects":    len(objectTable),
		"solvents":   len(solventTable),
		"monsters":   len(monsterTable),
	}).Info("Content loaded.")

	return &Library{Registry: reg}, nil
}

// validateReferences ходит по деревьям эффектов и таблицам лута:
// каждый упомянутый класс объекта, растворитель и архетип обязан
// существовать. Ссылка в никуда — ошибка загрузки, а не сюрприз
// посреди каста.
func validateReferences(list []*spells.Spell) error {
	for _, sp := range list {
		for _, eff := range sp.Effects {
			if err := checkEffectRefs(eff); err != nil {
				return fmt.Errorf("spell %q: %w", sp.Word, err)
			}
		}
	}

	for key, spec := range monsterTable {
		for _, entry := range spec.Loot {
			if _, ok := solventTable[entry.Key]; ok {
				continue
			}
			if _, ok := objectTable[entry.Key]; ok {
				continue
			}
			return fmt.Errorf("monster %q: loot references unknown key %q", key, entry.Key)
		}
	}
	return nil
}

func checkEffectRefs(eff spells.Effect) error {
	switch e := eff.(type) {
	case spells.CreateObjectEffect:
		if _, ok := objectTable[e.Object]; !ok {
			return fmt.Errorf("create_object references unknown object %q", e.Object)
		}
	case spells.TransformTargetEffect:
		if _, ok := objectTable[e.Into]; !ok {
			return fmt.Errorf("transform references unknown object %q", e.Into)
		}
	case spells.SummonEffect:
		if _, ok := monsterTable[e.Creature]; !ok {
			return fmt.Errorf("summon references unknown creature %q", e.Creature)
		}
	case spells.AreaEffect:
		for _, nested := range e.Effects {
			if err := checkEffectRefs(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// --- СТАРТОВЫЙ НАБОР ИГРОКА ---

// StartingGrimoire — слова, известные новому персонажу.
func StartingGrimoire() []string {
	return []string{"krata", "lumno", "heysa"}
}

// NewPlayer собирает нового персонажа со стартовым снаряжением:
// колба Aqua Ignis и горсть огненных материалов, чтобы первая
// перегонка эссенции была возможна с первого хода.
// nextID выдаёт идентификаторы персонажу и предметам.
func NewPlayer(name string, pos domain.Position, nextID func() int) *domain.Creature {
	p := &domain.Creature{
		ID:         nextID(),
		Name:       name,
		Kind:       domain.CreatureKindPlayer,
		Pos:        pos,
		HP:         100,
		MaxHP:      100,
		Attack:     10,
		Defense:    10,
		Stamina:    100,
		MaxStamina: 100,
		Pool:       essence.New(10, 10, 10, 10),
		MaxEssence: domain.DefaultMaxEssence,
		Level:      1,
		Grimoire:   StartingGrimoire(),
	}

	for _, class := range []string{"flame", "ember", "wood"} {
		item, err := NewObject(nextID(), class)
		if err != nil {
			// Стартовые классы лежат в этой же таблице; промах — дефект пакета.
			panic(err)
		}
		p.Inventory = append(p.Inventory, item)
	}
	solvent, err := NewSolvent(nextID(), "aqua_ignis")
	if err != nil {
		panic(err)
	}
	p.Inventory = append(p.Inventory, solvent)

	return p
}
