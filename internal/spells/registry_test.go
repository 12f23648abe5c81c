package spells

import (
	"sort"
	"testing"

	"github.com/tripstych/elemental/internal/essence"
)

func testSpell(word string, f, w, e, a int) *Spell {
	return &Spell{
		Word:   word,
		Vector: essence.New(f, w, e, a),
		Effects: []Effect{
			DamageEffect{Amount: essence.MustParse("fire * 0.5"), Element: essence.Fire},
		},
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry([]*Spell{
		testSpell("kata", 30, 5, 5, 5),
		testSpell("lumna", 5, 30, 10, 12),
	})

	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}

	sp, ok := reg.ByWord("kata")
	if !ok || sp.Word != "kata" {
		t.Errorf("ByWord(kata) = %v, %v", sp, ok)
	}
	if _, ok := reg.ByWord("abracadabra"); ok {
		t.Error("ByWord() нашёл несуществующее слово")
	}

	sp, ok = reg.ByVector(essence.New(5, 30, 10, 12))
	if !ok || sp.Word != "lumna" {
		t.Errorf("ByVector() = %v, %v, want lumna", sp, ok)
	}
	if _, ok := reg.ByVector(essence.New(1, 1, 1, 1)); ok {
		t.Error("ByVector() нашёл слово на пустом векторе")
	}
}

func TestRegistry_VectorCollisionFirstWins(t *testing.T) {
	first := testSpell("pyra", 40, 5, 5, 5)
	second := testSpell("ignis", 40, 5, 5, 5) // тот же вектор

	reg := NewRegistry([]*Spell{first, second})

	sp, ok := reg.ByVector(essence.New(40, 5, 5, 5))
	if !ok || sp.Word != "pyra" {
		t.Fatalf("ByVector() = %v, хочет победителя pyra", sp)
	}

	// Проигравшее слово остаётся доступным по имени.
	if _, ok := reg.ByWord("ignis"); !ok {
		t.Error("проигравшее коллизию слово пропало из словаря")
	}

	collisions := reg.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("Collisions() = %d записей, want 1", len(collisions))
	}
	if collisions[0].Kept != "pyra" || collisions[0].Lost != "ignis" {
		t.Errorf("collision = %+v", collisions[0])
	}
}

func TestRegistry_DuplicateWordSkipped(t *testing.T) {
	reg := NewRegistry([]*Spell{
		testSpell("kata", 30, 5, 5, 5),
		testSpell("kata", 10, 10, 10, 10),
	})

	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	sp, _ := reg.ByWord("kata")
	if sp.Vector != essence.New(30, 5, 5, 5) {
		t.Errorf("дубликат слова затёр первую регистрацию: %v", sp.Vector)
	}
}

func TestRegistry_WordsSortedCopy(t *testing.T) {
	reg := NewRegistry([]*Spell{
		testSpell("woukat", 3, 45, 18, 15),
		testSpell("brudna", 8, 8, 28, 5),
		testSpell("kata", 30, 5, 5, 5),
	})

	words := reg.Words()
	if !sort.StringsAreSorted(words) {
		t.Errorf("Words() не отсортирован: %v", words)
	}

	words[0] = "mutated"
	again := reg.Words()
	if again[0] == "mutated" {
		t.Error("Words() возвращает внутренний срез, а не копию")
	}
}
