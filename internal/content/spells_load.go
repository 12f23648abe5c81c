package content

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/internal/spells"
)

// spellEntry — одна запись data/spells.json. Формулы и деревья эффектов
// разбираются здесь же, при загрузке: кривой контент валит старт сервера
// с точным указанием слова и поля, а не каст посреди игры.
type spellEntry struct {
	Word        string            `json:"word"`
	Synset      string            `json:"synset"`
	Spirit      string            `json:"spirit"`
	Definition  string            `json:"definition"`
	Composition essence.Vector    `json:"composition"`
	Effects     []json.RawMessage `json:"effects"`
}

// LoadSpells читает и разбирает файл заклинаний. Порядок записей в файле
// значим: при совпадении векторов реестр оставляет первое слово.
func LoadSpells(path string) ([]*spells.Spell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spell table: %w", err)
	}

	var entries []spellEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("spell table %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("spell table %s: empty", path)
	}

	list := make([]*spells.Spell, 0, len(entries))
	for i, e := range entries {
		sp, err := buildSpell(e)
		if err != nil {
			return nil, fmt.Errorf("spell table %s, entry #%d (%q): %w", path, i, e.Word, err)
		}
		list = append(list, sp)
	}
	return list, nil
}

func buildSpell(e spellEntry) (*spells.Spell, error) {
	if e.Word == "" {
		return nil, fmt.Errorf("missing word")
	}
	if err := validateComposition(e.Composition); err != nil {
		return nil, err
	}
	if len(e.Effects) == 0 {
		return nil, fmt.Errorf("no effects")
	}
	effects, err := spells.DecodeEffects(e.Effects)
	if err != nil {
		return nil, err
	}
	return &spells.Spell{
		Word:       e.Word,
		Synset:     e.Synset,
		Spirit:     e.Spirit,
		Definition: e.Definition,
		Vector:     e.Composition,
		Effects:    effects,
	}, nil
}

// validateComposition отклоняет векторы вне словаря [0..63]^4.
// Молчаливый зажим спрятал бы опечатку контента; здесь она должна
// быть видна при старте.
func validateComposition(v essence.Vector) error {
	for _, c := range []struct {
		name  string
		value int
	}{
		{"fire", v.Fire}, {"water", v.Water}, {"earth", v.Earth}, {"air", v.Air},
	} {
		if c.value < 0 || c.value > essence.MaxComponent {
			return fmt.Errorf("composition %s=%d outside [0, %d]", c.name, c.value, essence.MaxComponent)
		}
	}
	if v.IsZero() {
		return fmt.Errorf("composition is all zeroes")
	}
	return nil
}
