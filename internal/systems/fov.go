package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisibleTiles возвращает мапу линейных индексов видимых клеток.
// Используется эндпоинтом карты: игроку отдаются только клетки, которые
// он реально видит сквозь проёмы, а не квадрат вокруг него.
func ComputeVisibleTiles(w *domain.World, pos domain.Position, radius int) map[int]bool {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": pos,
		"radius":       radius,
	})

	visibleMap := make(map[int]bool)
	if radius <= 0 {
		fovLogger.Warn("FOV calculation skipped for blind observer (radius <= 0).")
		return visibleMap
	}

	// Центр всегда виден.
	visibleMap[w.Index(pos.X, pos.Y)] = true

	// Рекурсивный shadowcasting по 8 октантам.
	for i := 0; i < 8; i++ {
		castLight(w, pos.X, pos.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visibleMap)
	}

	fovLogger.WithField("visible_tiles", len(visibleMap)).Debug("FOV calculation complete.")

	return visibleMap
}

func castLight(w *domain.World, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visibleMap map[int]bool) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}
			dy = -j

			// Расчёт наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if X >= 0 && Y >= 0 && X < w.Width && Y < w.Height {
				if float64(dx*dx+dy*dy) < radiusSq {
					visibleMap[w.Index(X, Y)] = true
				}
			}

			// Логика теней
			if blocked {
				// Идём вдоль стены...
				if isBlocking(w, X, Y) {
					newStart = rSlope
					continue
				}
				// Стена кончилась, началась пустота.
				blocked = false
				start = newStart
			} else {
				// Шли по пустоте и наткнулись на стену.
				if isBlocking(w, X, Y) && j < radius {
					blocked = true
					// Рекурсивно сканируем следующий ряд.
					castLight(w, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visibleMap)
					newStart = rSlope
				}
			}
		}
		if blocked {
			break
		}
	}
}

// isBlocking проверяет, блокирует ли клетка взгляд.
// Выход за границы считается блокирующим.
func isBlocking(w *domain.World, x, y int) bool {
	return w.TileAt(domain.Position{X: x, Y: y}).IsWall
}
