package domain

import "github.com/tripstych/elemental/internal/essence"

// Extraction — профиль извлечения растворителя: доля эссенции каждой
// стихии, которую он способен вытянуть из предмета. Ноль означает, что
// стихия растворителю недоступна (маска), значение в (0,1] — КПД.
type Extraction struct {
	Fire  float64 `json:"fire"`
	Water float64 `json:"water"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
}

// Factor возвращает КПД извлечения для стихии.
func (x Extraction) Factor(e essence.Element) float64 {
	switch e {
	case essence.Fire:
		return x.Fire
	case essence.Water:
		return x.Water
	case essence.Earth:
		return x.Earth
	default:
		return x.Air
	}
}

// Item — экземпляр предмета в инвентаре или на полу.
//
// Предмет либо материальный объект (Kind == ItemKindObject) с фиксированным
// составом эссенции, либо растворитель (Kind == ItemKindSolvent) с профилем
// извлечения и счётчиком оставшихся применений. Данные контента
// денормализованы в экземпляр при создании, чтобы игровые системы не
// тянули таблицы за собой.
type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	Kind  string `json:"kind"`

	// Для объектов: состав и массогабарит.
	Composition essence.Vector `json:"composition"`
	Weight      int            `json:"weight"`
	Category    string         `json:"category"`

	// HP — прочность, которую заклинания create_object выводят из
	// формулы. Ноль у обычных предметов: прочность им не нужна.
	HP int `json:"hp,omitempty"`

	// Для растворителей: профиль извлечения и остаток применений.
	Extraction Extraction `json:"extraction,omitempty"`
	Uses       int        `json:"uses,omitempty"`
}

// IsSolvent — предмет является растворителем.
func (i *Item) IsSolvent() bool {
	return i.Kind == ItemKindSolvent
}
