// Package essence содержит фундаментальную математику магической системы:
// четырёхкомпонентный вектор эссенции, формулы эффектов и перестановки.
// Пакет не зависит от остального движка и не имеет побочных эффектов —
// все операции возвращают новые значения.
package essence

import (
	"fmt"
	"math"
)

// MaxComponent — верхняя граница компоненты вектора заклинания.
// Словарь заклинаний определён на пространстве [0..63]^4, и любая
// арифметика над векторами обязана возвращать результат в этих пределах.
const MaxComponent = 63

// Element — индекс стихии внутри вектора.
type Element uint8

const (
	Fire Element = iota
	Water
	Earth
	Air
)

var elementNames = [4]string{"fire", "water", "earth", "air"}

// String возвращает каноническое имя стихии ("fire", "water", "earth", "air").
func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return "unknown"
}

// ParseElement конвертирует строку в стихию. Регистр не учитывается
// вызывающей стороной: ожидается уже нормализованное имя.
func ParseElement(s string) (Element, error) {
	for i, name := range elementNames {
		if s == name {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", s)
}

// Vector — четыре именованные компоненты эссенции.
// Значение всегда неотрицательно; операции пакета дополнительно
// ограничивают каждую компоненту сверху (MaxComponent для пространства
// заклинаний, произвольный потолок для запасов существ).
//
// Vector — значимый тип: им можно безопасно пользоваться как ключом карты,
// сравнивать через == и передавать по значению.
type Vector struct {
	Fire  int `json:"fire"`
	Water int `json:"water"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
}

// New собирает вектор, сразу приводя компоненты в [0, MaxComponent].
func New(fire, water, earth, air int) Vector {
	return Vector{Fire: fire, Water: water, Earth: earth, Air: air}.Clamped()
}

// FromFloats строит вектор из вещественных значений: каждая компонента
// округляется до ближайшего целого и зажимается в [0, MaxComponent].
// Используется при загрузке контента, где JSON допускает дробные числа.
func FromFloats(fire, water, earth, air float64) Vector {
	return Vector{
		Fire:  int(math.Round(fire)),
		Water: int(math.Round(water)),
		Earth: int(math.Round(earth)),
		Air:   int(math.Round(air)),
	}.Clamped()
}

// Component возвращает значение компоненты по индексу стихии.
func (v Vector) Component(e Element) int {
	switch e {
	case Fire:
		return v.Fire
	case Water:
		return v.Water
	case Earth:
		return v.Earth
	default:
		return v.Air
	}
}

// WithComponent возвращает копию вектора с заменённой компонентой
// (без зажима — вызывающий отвечает за диапазон).
func (v Vector) WithComponent(e Element, value int) Vector {
	switch e {
	case Fire:
		v.Fire = value
	case Water:
		v.Water = value
	case Earth:
		v.Earth = value
	default:
		v.Air = value
	}
	return v
}

func clampComponent(x, cap int) int {
	if x < 0 {
		return 0
	}
	if x > cap {
		return cap
	}
	return x
}

// Clamped возвращает вектор, каждая компонента которого приведена
// в [0, MaxComponent].
func (v Vector) Clamped() Vector {
	return v.ClampedTo(MaxComponent)
}

// ClampedTo — то же самое, но с произвольным потолком (запасы существ
// ограничены их персональным max_essence, а не границей словаря).
func (v Vector) ClampedTo(cap int) Vector {
	return Vector{
		Fire:  clampComponent(v.Fire, cap),
		Water: clampComponent(v.Water, cap),
		Earth: clampComponent(v.Earth, cap),
		Air:   clampComponent(v.Air, cap),
	}
}

// Add покомпонентно прибавляет delta и зажимает результат в
// [0, MaxComponent]. Каждая компонента зажимается независимо:
// переполнение одной стихии не влияет на остальные.
func (v Vector) Add(delta Vector) Vector {
	return Vector{
		Fire:  v.Fire + delta.Fire,
		Water: v.Water + delta.Water,
		Earth: v.Earth + delta.Earth,
		Air:   v.Air + delta.Air,
	}.Clamped()
}

// Subtract покомпонентно вычитает delta с тем же зажимом, что и Add.
// Компонента не может уйти ниже нуля даже промежуточно.
func (v Vector) Subtract(delta Vector) Vector {
	return Vector{
		Fire:  v.Fire - delta.Fire,
		Water: v.Water - delta.Water,
		Earth: v.Earth - delta.Earth,
		Air:   v.Air - delta.Air,
	}.Clamped()
}

// Shift применяет знаковое смещение к каждой компоненте и зажимает
// результат. Основной примитив аддитивной трансформации заклинаний.
func (v Vector) Shift(df, dw, de, da int) Vector {
	return Vector{
		Fire:  v.Fire + df,
		Water: v.Water + dw,
		Earth: v.Earth + de,
		Air:   v.Air + da,
	}.Clamped()
}

// Scale умножает каждую компоненту на factor, округляет до ближайшего
// целого и зажимает в [0, MaxComponent].
func (v Vector) Scale(factor float64) Vector {
	return FromFloats(
		float64(v.Fire)*factor,
		float64(v.Water)*factor,
		float64(v.Earth)*factor,
		float64(v.Air)*factor,
	)
}

// Quantized возвращает канонический целочисленный ключ вектора для
// поиска в реестре заклинаний. Компоненты уже хранятся целыми, поэтому
// квантование тождественно; метод существует, чтобы контракт ключа был
// явным в точках поиска.
func (v Vector) Quantized() Vector {
	return v.Clamped()
}

// --- ОПЕРАЦИИ НАД ЗАПАСОМ ЭССЕНЦИИ ---

// AddCapped прибавляет delta, ограничивая каждую компоненту потолком cap,
// и возвращает новый запас вместе с фактически добавленным количеством.
// Излишек сверх потолка теряется — фактическая прибавка нужна для
// честного нарратива («получено N, остальное рассеялось»).
func (v Vector) AddCapped(delta Vector, cap int) (result Vector, added Vector) {
	result = Vector{
		Fire:  v.Fire + delta.Fire,
		Water: v.Water + delta.Water,
		Earth: v.Earth + delta.Earth,
		Air:   v.Air + delta.Air,
	}.ClampedTo(cap)
	added = Vector{
		Fire:  result.Fire - v.Fire,
		Water: result.Water - v.Water,
		Earth: result.Earth - v.Earth,
		Air:   result.Air - v.Air,
	}
	return result, added
}

// Covers сообщает, достаточно ли запаса v для покрытия стоимости cost
// по всем четырём компонентам одновременно.
func (v Vector) Covers(cost Vector) bool {
	return v.Fire >= cost.Fire &&
		v.Water >= cost.Water &&
		v.Earth >= cost.Earth &&
		v.Air >= cost.Air
}

// Deduct списывает cost из запаса. Вызывающий обязан заранее проверить
// Covers: списание непокрытой стоимости — ошибка программиста, и чтобы
// инвариант неотрицательности не нарушился молча, компоненты
// дополнительно прижимаются к нулю.
func (v Vector) Deduct(cost Vector) Vector {
	return Vector{
		Fire:  floorZero(v.Fire - cost.Fire),
		Water: floorZero(v.Water - cost.Water),
		Earth: floorZero(v.Earth - cost.Earth),
		Air:   floorZero(v.Air - cost.Air),
	}
}

func floorZero(x int) int {
	if x < 0 {
		return 0
	}
	return x
}

// IsZero — истина, если все компоненты равны нулю.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Total — сумма всех компонент (используется нарративом и балансом).
func (v Vector) Total() int {
	return v.Fire + v.Water + v.Earth + v.Air
}

// String форматирует вектор в компактную строку вида "F30 W10 E15 A5".
func (v Vector) String() string {
	return fmt.Sprintf("F%d W%d E%d A%d", v.Fire, v.Water, v.Earth, v.Air)
}
