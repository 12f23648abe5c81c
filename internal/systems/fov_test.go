package systems

import (
	"testing"

	"github.com/tripstych/elemental/internal/domain"
)

func TestComputeVisibleTiles(t *testing.T) {
	t.Run("Open field is visible up to radius", func(t *testing.T) {
		w := createTestWorld(10, 10)
		pos := domain.Position{X: 5, Y: 5}

		visible := ComputeVisibleTiles(w, pos, 3)

		if !visible[w.Index(5, 5)] {
			t.Error("Observer tile must be visible")
		}
		if !visible[w.Index(7, 5)] {
			t.Error("Tile inside radius must be visible")
		}
		if visible[w.Index(9, 5)] {
			t.Error("Tile beyond radius must not be visible")
		}
	})

	t.Run("Wall casts shadow", func(t *testing.T) {
		w := createTestWorld(10, 10)
		wallAt(w, 5, 3) // стена строго над наблюдателем

		visible := ComputeVisibleTiles(w, domain.Position{X: 5, Y: 5}, 5)

		if !visible[w.Index(5, 3)] {
			t.Error("The wall itself must be visible")
		}
		if visible[w.Index(5, 2)] {
			t.Error("Tile directly behind the wall must be shadowed")
		}
		if !visible[w.Index(4, 3)] {
			t.Error("Tile beside the wall must stay visible")
		}
	})

	t.Run("Blind observer sees nothing", func(t *testing.T) {
		w := createTestWorld(10, 10)

		visible := ComputeVisibleTiles(w, domain.Position{X: 5, Y: 5}, 0)
		if len(visible) != 0 {
			t.Errorf("Expected empty visibility map, got %d tiles", len(visible))
		}
	})
}
