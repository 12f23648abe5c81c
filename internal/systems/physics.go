package systems

import (
	"github.com/tripstych/elemental/internal/domain"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Использует алгоритм Брезенхэма (только целочисленная арифметика).
// Стартовая и конечная клетки не считаются препятствием: существо,
// стоящее в дверном проёме, видно из коридора.
func HasLineOfSight(w *domain.World, p1, p2 domain.Position) bool {
	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := sign(x1-x0), sign(y1-y0)
	errAcc := dx - dy

	for {
		isEndpoint := (x0 == p1.X && y0 == p1.Y) || (x0 == p2.X && y0 == p2.Y)
		if !isEndpoint && w.TileAt(domain.Position{X: x0, Y: y0}).IsWall {
			return false
		}

		if x0 == x1 && y0 == y1 {
			return true
		}

		e2 := errAcc * 2
		if e2 > -dy {
			errAcc -= dy
			x0 += sx
		}
		if e2 < dx {
			errAcc += dx
			y0 += sy
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
