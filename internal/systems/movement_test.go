package systems

import (
	"testing"

	"github.com/tripstych/elemental/internal/domain"
)

func TestCalculateMove(t *testing.T) {
	world := createTestWorld(10, 10)
	wallAt(world, 5, 5)

	actor := &domain.Creature{
		ID:   1,
		Name: "Алхимик",
		HP:   10,
		Pos:  domain.Position{X: 4, Y: 5},
	}
	world.AddCreature(actor)

	// Test 1: шаг в пустую клетку
	res := CalculateMove(actor, 0, -1, world) // (4,5) -> (4,4)
	if !res.HasMoved {
		t.Error("Expected move to succeed")
	}
	if res.Dest != (domain.Position{X: 4, Y: 4}) {
		t.Errorf("Expected dest (4,4), got %v", res.Dest)
	}

	// Test 2: шаг в стену
	res = CalculateMove(actor, 1, 0, world) // (5,5) - стена
	if res.HasMoved {
		t.Error("Expected move to fail (wall)")
	}
	if !res.IsWall {
		t.Error("Expected IsWall=true")
	}

	// Test 3: шаг за границу
	actor.Pos = domain.Position{X: 0, Y: 0}
	res = CalculateMove(actor, -1, 0, world)
	if res.HasMoved {
		t.Error("Expected move to fail (OOB)")
	}
	if !res.IsWall {
		t.Error("OOB should read as wall")
	}

	// Test 4: шаг в живое существо — bump
	rat := &domain.Creature{ID: 2, Name: "Крыса", HP: 5, Pos: domain.Position{X: 1, Y: 0}}
	world.AddCreature(rat)

	res = CalculateMove(actor, 1, 0, world)
	if res.HasMoved {
		t.Error("Expected move to be blocked by creature")
	}
	if res.BlockedBy != rat {
		t.Error("Expected BlockedBy to point at the rat")
	}

	// Test 5: труп не мешает пройти
	rat.HP = 0
	res = CalculateMove(actor, 1, 0, world)
	if !res.HasMoved {
		t.Error("Expected move over a corpse to succeed")
	}

	// ApplyMove двигает только при успехе
	ApplyMove(actor, res)
	if actor.Pos != (domain.Position{X: 1, Y: 0}) {
		t.Errorf("Expected actor at (1,0), got %v", actor.Pos)
	}
}
