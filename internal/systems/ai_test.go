package systems

import (
	"testing"

	"github.com/tripstych/elemental/internal/domain"
)

func TestComputeMonsterAction(t *testing.T) {
	setup := func() (*domain.World, *domain.Creature, *domain.Creature) {
		world := createTestWorld(20, 20)
		player := &domain.Creature{
			ID: 1, Name: "Алхимик", Kind: domain.CreatureKindPlayer,
			HP: 100, Pos: domain.Position{X: 5, Y: 5},
		}
		monster := &domain.Creature{
			ID: 2, Name: "Гоблин", Kind: domain.CreatureKindMonster,
			HP: 25, Pos: domain.Position{X: 1, Y: 1},
		}
		world.AddCreature(player)
		world.AddCreature(monster)
		return world, player, monster
	}

	t.Run("Dead monster waits", func(t *testing.T) {
		world, player, monster := setup()
		monster.HP = 0

		act, _, _ := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionWait {
			t.Errorf("Dead monster should WAIT, got %v", act)
		}
	})

	t.Run("Target out of vision range waits", func(t *testing.T) {
		world, player, monster := setup()
		monster.Pos = domain.Position{X: 0, Y: 0}
		player.Pos = domain.Position{X: 15, Y: 15} // Чебышёв 15 > 8

		act, _, _ := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionWait {
			t.Errorf("Monster out of range should WAIT, got %v", act)
		}
	})

	t.Run("Target behind wall waits", func(t *testing.T) {
		world, player, monster := setup()
		monster.Pos = domain.Position{X: 3, Y: 5}
		player.Pos = domain.Position{X: 7, Y: 5}
		// Сплошная вертикальная стена между ними.
		for y := 0; y < 20; y++ {
			wallAt(world, 5, y)
		}

		act, _, _ := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionWait {
			t.Errorf("Blind monster should WAIT, got %v", act)
		}
	})

	t.Run("Adjacent target attacked", func(t *testing.T) {
		world, player, monster := setup()
		player.Pos = domain.Position{X: 5, Y: 5}
		monster.Pos = domain.Position{X: 4, Y: 4} // диагональ — тоже сосед

		act, _, _ := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionAttack {
			t.Errorf("Adjacent monster should ATTACK, got %v", act)
		}
	})

	t.Run("Visible target pursued", func(t *testing.T) {
		world, player, monster := setup()
		player.Pos = domain.Position{X: 5, Y: 5}
		monster.Pos = domain.Position{X: 5, Y: 2}

		act, dx, dy := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionMove {
			t.Errorf("Monster in range should MOVE, got %v", act)
		}
		if dx != 0 || dy != 1 {
			t.Errorf("Expected step (0,1), got (%d,%d)", dx, dy)
		}
	})

	t.Run("Blocked diagonal slides along free axis", func(t *testing.T) {
		world, player, monster := setup()
		player.Pos = domain.Position{X: 7, Y: 7}
		monster.Pos = domain.Position{X: 4, Y: 6}
		wallAt(world, 5, 7) // идеальная диагональ (5,7) закрыта

		act, dx, dy := ComputeMonsterAction(monster, player, world)
		if act != domain.ActionMove {
			t.Fatalf("Expected MOVE, got %v", act)
		}
		// Разрыв по X больше, скольжение предпочитает ось X.
		if dx != 1 || dy != 0 {
			t.Errorf("Expected slide (1,0), got (%d,%d)", dx, dy)
		}
	})
}
