package systems

import (
	"strings"
	"testing"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
)

func TestUseItem(t *testing.T) {
	t.Run("Food heals by weight", func(t *testing.T) {
		flesh := &domain.Item{
			ID: 1, Name: "кусок плоти", Class: "flesh", Kind: domain.ItemKindObject,
			Category: domain.CategoryFood, Weight: 4,
		}
		actor := alchemist(flesh)
		actor.HP = 50

		// weight 4 × 2 = 8, но не меньше 5.
		msg, err := UseItem(actor, 0)
		if err != nil {
			t.Fatalf("UseItem failed: %v", err)
		}
		if actor.HP != 58 {
			t.Errorf("Expected HP 58, got %d", actor.HP)
		}
		if len(actor.Inventory) != 0 {
			t.Error("Food must be consumed")
		}
		if !strings.Contains(msg, "восстанавливает") {
			t.Errorf("Expected healing narrative, got %q", msg)
		}
	})

	t.Run("Light food still heals the minimum", func(t *testing.T) {
		leaf := &domain.Item{
			ID: 2, Name: "лист", Class: "leaf", Kind: domain.ItemKindObject,
			Category: domain.CategoryFood, Weight: 1,
		}
		actor := alchemist(leaf)
		actor.HP = 50

		if _, err := UseItem(actor, 0); err != nil {
			t.Fatalf("UseItem failed: %v", err)
		}
		if actor.HP != 55 {
			t.Errorf("Expected minimum heal 5, got HP %d", actor.HP)
		}
	})

	t.Run("Heavy food capped", func(t *testing.T) {
		carcass := &domain.Item{
			ID: 3, Name: "туша", Class: "flesh", Kind: domain.ItemKindObject,
			Category: domain.CategoryFood, Weight: 40,
		}
		actor := alchemist(carcass)
		actor.HP = 10

		if _, err := UseItem(actor, 0); err != nil {
			t.Fatalf("UseItem failed: %v", err)
		}
		if actor.HP != 60 {
			t.Errorf("Expected capped heal 50, got HP %d", actor.HP)
		}
	})

	t.Run("Gem banks dominant essence", func(t *testing.T) {
		crystal := &domain.Item{
			ID: 4, Name: "кристалл", Class: "crystal", Kind: domain.ItemKindObject,
			Category: domain.CategoryGem, Weight: 4,
			Composition: essence.New(15, 20, 30, 25), // доминирует земля
		}
		actor := alchemist(crystal)

		msg, err := UseItem(actor, 0)
		if err != nil {
			t.Fatalf("UseItem failed: %v", err)
		}
		// 10 земли было + weight 4 × 10 = 40 → 50.
		if actor.Pool.Earth != 50 {
			t.Errorf("Expected earth 50, got %d", actor.Pool.Earth)
		}
		if actor.Pool.Fire != 10 {
			t.Errorf("Other elements must not move, fire %d", actor.Pool.Fire)
		}
		if !strings.Contains(msg, "earth") {
			t.Errorf("Expected dominant element in narrative, got %q", msg)
		}
	})

	t.Run("Liquid restores stamina", func(t *testing.T) {
		water := &domain.Item{
			ID: 5, Name: "вода", Class: "water", Kind: domain.ItemKindObject,
			Category: domain.CategoryLiquid, Weight: 2,
		}
		actor := alchemist(water)
		actor.Stamina, actor.MaxStamina = 60, 100

		if _, err := UseItem(actor, 0); err != nil {
			t.Fatalf("UseItem failed: %v", err)
		}
		if actor.Stamina != 85 {
			t.Errorf("Expected stamina 85, got %d", actor.Stamina)
		}
	})

	t.Run("Misc does nothing and survives", func(t *testing.T) {
		feather := &domain.Item{
			ID: 6, Name: "перо", Class: "feather", Kind: domain.ItemKindObject,
			Category: domain.CategoryMisc, Weight: 1,
		}
		actor := alchemist(feather)

		_, err := UseItem(actor, 0)
		if domain.KindOf(err) != domain.ErrValidation {
			t.Errorf("Expected VALIDATION, got %v", err)
		}
		if len(actor.Inventory) != 1 {
			t.Error("Useless item must stay in the inventory")
		}
	})

	t.Run("Solvent cannot be eaten", func(t *testing.T) {
		actor := alchemist(aquaIgnis(4))

		_, err := UseItem(actor, 0)
		if domain.KindOf(err) != domain.ErrValidation {
			t.Errorf("Expected VALIDATION, got %v", err)
		}
		if len(actor.Inventory) != 1 || actor.Inventory[0].Uses != 4 {
			t.Error("Solvent must stay untouched")
		}
	})

	t.Run("Bad index", func(t *testing.T) {
		actor := alchemist()
		if _, err := UseItem(actor, 0); domain.KindOf(err) != domain.ErrValidation {
			t.Errorf("Expected VALIDATION for empty inventory, got %v", err)
		}
	})
}

func TestPickupAll(t *testing.T) {
	world := createTestWorld(10, 10)
	actor := alchemist()
	actor.Pos = domain.Position{X: 2, Y: 2}
	world.AddCreature(actor)

	t.Run("Empty tile rejected", func(t *testing.T) {
		_, err := PickupAll(actor, world)
		if domain.KindOf(err) != domain.ErrValidation {
			t.Errorf("Expected VALIDATION, got %v", err)
		}
	})

	t.Run("Takes everything", func(t *testing.T) {
		world.DropAt(actor.Pos,
			&domain.Item{ID: 1, Name: "кость", Class: "bone", Kind: domain.ItemKindObject},
			&domain.Item{ID: 2, Name: "уголь", Class: "coal", Kind: domain.ItemKindObject},
		)

		messages, err := PickupAll(actor, world)
		if err != nil {
			t.Fatalf("PickupAll failed: %v", err)
		}
		if len(actor.Inventory) != 2 {
			t.Errorf("Expected 2 items in inventory, got %d", len(actor.Inventory))
		}
		if len(world.ItemsAt(actor.Pos)) != 0 {
			t.Error("Floor must be empty after pickup")
		}
		if len(messages) != 1 || !strings.Contains(messages[0], "кость") {
			t.Errorf("Expected pickup narrative with item names, got %v", messages)
		}
	})
}

func TestDropItem(t *testing.T) {
	world := createTestWorld(10, 10)
	actor := alchemist(woodItem())
	actor.Pos = domain.Position{X: 4, Y: 4}
	world.AddCreature(actor)

	msg, err := DropItem(actor, 0, world)
	if err != nil {
		t.Fatalf("DropItem failed: %v", err)
	}
	if len(actor.Inventory) != 0 {
		t.Error("Inventory must be empty after drop")
	}

	floor := world.ItemsAt(actor.Pos)
	if len(floor) != 1 || floor[0].Class != "wood" {
		t.Errorf("Expected wood on the floor, got %v", floor)
	}
	if !strings.Contains(msg, "выбрасывает") {
		t.Errorf("Expected drop narrative, got %q", msg)
	}

	if _, err := DropItem(actor, 0, world); domain.KindOf(err) != domain.ErrValidation {
		t.Errorf("Expected VALIDATION for empty inventory, got %v", err)
	}
}
