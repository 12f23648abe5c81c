package domain

// Tile — клетка сетки подземелья.
type Tile struct {
	IsWall bool `json:"isWall"`
}

// World — игровое поле одной сессии: сетка, существа и предметы на полу.
//
// Creatures хранится в порядке появления; идентификаторы монотонны,
// поэтому порядок ходов монстров детерминирован. Floor — пространственный
// индекс пола: предметы ищутся по клетке, а не перебором.
type World struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"` // построчно: индекс Y*Width+X

	Creatures []*Creature          `json:"creatures"`
	Floor     map[Position][]*Item `json:"floor"`
}

// NewWorld создаёт пустое поле заданного размера.
func NewWorld(width, height int) *World {
	return &World{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
		Floor:  make(map[Position][]*Item),
	}
}

// InBounds — точка внутри сетки.
func (w *World) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// Index возвращает линейный индекс клетки (ключ для карт видимости).
func (w *World) Index(x, y int) int {
	return y*w.Width + x
}

// TileAt возвращает клетку; выход за границы считается стеной,
// чтобы краевые проверки не размножались по вызывающим.
func (w *World) TileAt(p Position) Tile {
	if !w.InBounds(p) {
		return Tile{IsWall: true}
	}
	return w.Tiles[p.Y*w.Width+p.X]
}

// SetWall отмечает клетку стеной или полом.
func (w *World) SetWall(p Position, wall bool) {
	if w.InBounds(p) {
		w.Tiles[p.Y*w.Width+p.X].IsWall = wall
	}
}

// Walkable — по клетке можно ходить (в границах и не стена).
func (w *World) Walkable(p Position) bool {
	return w.InBounds(p) && !w.TileAt(p).IsWall
}

// --- СУЩЕСТВА ---

// AddCreature регистрирует существо. Порядок вызовов определяет
// порядок ходов.
func (w *World) AddCreature(c *Creature) {
	w.Creatures = append(w.Creatures, c)
}

// RemoveCreature убирает существо из мира (смерть, превращение).
func (w *World) RemoveCreature(id int) {
	for i, c := range w.Creatures {
		if c.ID == id {
			w.Creatures = append(w.Creatures[:i], w.Creatures[i+1:]...)
			return
		}
	}
}

// CreatureAt возвращает живое существо на клетке или nil.
func (w *World) CreatureAt(p Position) *Creature {
	for _, c := range w.Creatures {
		if c.Alive() && c.Pos == p {
			return c
		}
	}
	return nil
}

// CreaturesWithin возвращает живых существ в квадратном радиусе
// (метрика Чебышёва) от точки — в порядке появления.
func (w *World) CreaturesWithin(center Position, radius int) []*Creature {
	var out []*Creature
	for _, c := range w.Creatures {
		if !c.Alive() {
			continue
		}
		dx, dy := c.Pos.X-center.X, c.Pos.Y-center.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx <= radius && dy <= radius {
			out = append(out, c)
		}
	}
	return out
}

// IsOccupied — на клетке стоит живое существо.
func (w *World) IsOccupied(p Position) bool {
	return w.CreatureAt(p) != nil
}

// FreeTileNear ищет ближайшую проходимую и свободную клетку вокруг точки
// (включая её саму), расширяя кольца Чебышёва до радиуса 2.
// Возвращает false, если всё занято.
func (w *World) FreeTileNear(p Position) (Position, bool) {
	if w.Walkable(p) && !w.IsOccupied(p) {
		return p, true
	}
	for radius := 1; radius <= 2; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				cand := p.Shift(dx, dy)
				if w.Walkable(cand) && !w.IsOccupied(cand) {
					return cand, true
				}
			}
		}
	}
	return Position{}, false
}

// --- ПРЕДМЕТЫ НА ПОЛУ ---

// DropAt кладёт предметы на клетку.
func (w *World) DropAt(p Position, items ...*Item) {
	if len(items) == 0 {
		return
	}
	w.Floor[p] = append(w.Floor[p], items...)
}

// ItemsAt возвращает предметы на клетке (внутренний срез, не копия).
func (w *World) ItemsAt(p Position) []*Item {
	return w.Floor[p]
}

// TakeAllAt забирает с клетки все предметы.
func (w *World) TakeAllAt(p Position) []*Item {
	items := w.Floor[p]
	if len(items) == 0 {
		return nil
	}
	delete(w.Floor, p)
	return items
}
