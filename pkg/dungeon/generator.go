// Package dungeon генерирует карту сессии: прямоугольные комнаты,
// соединённые коридорами, стены повсюду ещё.
//
// Генератор детерминирован: одинаковый *rand.Rand даёт одинаковую
// карту. Заселение комнат (монстры, предметы) - забота движка,
// пакет отдаёт только геометрию.
package dungeon

import (
	"math/rand"

	"github.com/tripstych/elemental/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Layout - результат генерации: карта, комнаты в порядке создания
// и стартовая клетка игрока (центр первой комнаты).
type Layout struct {
	World       *domain.World
	Rooms       []Rect
	PlayerStart domain.Position
}

// Generate создает новую карту на данном генераторе случайных чисел.
func Generate(rng *rand.Rand) Layout {
	// 1. Заполняем стенами
	w := domain.NewWorld(MapWidth, MapHeight)
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			w.SetWall(domain.Position{X: x, Y: y}, true)
		}
	}

	var rooms []Rect

	// 2. Генерируем комнаты
	for i := 0; i < MaxRooms; i++ {
		rw := randRange(rng, MinSize, MaxSize)
		rh := randRange(rng, MinSize, MaxSize)
		x := randRange(rng, 1, MapWidth-rw-1)
		y := randRange(rng, 1, MapHeight-rh-1)

		newRoom := Rect{X: x, Y: y, W: rw, H: rh}
		failed := false

		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}

		if !failed {
			carveRoom(w, newRoom)

			if len(rooms) > 0 {
				// Соединяем с предыдущей комнатой
				prevX, prevY := rooms[len(rooms)-1].Center()
				currX, currY := newRoom.Center()

				if rng.Intn(2) == 0 {
					carveHCorridor(w, prevX, currX, prevY)
					carveVCorridor(w, prevY, currY, currX)
				} else {
					carveVCorridor(w, prevY, currY, prevX)
					carveHCorridor(w, prevX, currX, currY)
				}
			}
			rooms = append(rooms, newRoom)
		}
	}

	// 3. Стартовая клетка игрока - центр первой комнаты
	start := domain.Position{X: MapWidth / 2, Y: MapHeight / 2}
	if len(rooms) > 0 {
		cx, cy := rooms[0].Center()
		start = domain.Position{X: cx, Y: cy}
	}

	return Layout{World: w, Rooms: rooms, PlayerStart: start}
}

// --- Вспомогательные функции ---

func carveRoom(w *domain.World, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			w.SetWall(domain.Position{X: x, Y: y}, false)
		}
	}
}

func carveHCorridor(w *domain.World, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		w.SetWall(domain.Position{X: x, Y: y}, false)
	}
}

func carveVCorridor(w *domain.World, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		w.SetWall(domain.Position{X: x, Y: y}, false)
	}
}

func randRange(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}
