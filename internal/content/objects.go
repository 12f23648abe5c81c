// Package content держит статические таблицы игры — материалы,
// растворители, архетипы существ — и загрузчик заклинаний из data/.
// Таблицы неизменяемы; экземпляры для мира собираются функциями New*.
package content

import (
	"sort"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
)

// ObjectSpec — материал из таблицы контента.
//
// Composition фиксирует, сколько эссенции каждой стихии заперто в
// предмете; Weight управляет величиной эффекта применения (еда лечит
// weight*2, камень даёт weight*10 доминирующей стихии).
type ObjectSpec struct {
	Class       string
	Name        string
	Composition essence.Vector
	Weight      int
	Category    string
}

// GenericClass — класс-заглушка для предметов, не описанных таблицей.
const GenericClass = "generic"

var objectTable = map[string]ObjectSpec{
	// Природные материалы
	"wood":    {Class: "wood", Name: "Wood", Composition: essence.New(30, 10, 15, 5), Weight: 5, Category: domain.CategoryMisc},
	"stone":   {Class: "stone", Name: "Stone", Composition: essence.New(5, 5, 50, 3), Weight: 10, Category: domain.CategoryMisc},
	"water":   {Class: "water", Name: "Spring Water", Composition: essence.New(0, 40, 5, 10), Weight: 2, Category: domain.CategoryLiquid},
	"sap":     {Class: "sap", Name: "Tree Sap", Composition: essence.New(12, 30, 15, 8), Weight: 1, Category: domain.CategoryLiquid},
	"flesh":   {Class: "flesh", Name: "Raw Meat", Composition: essence.New(12, 35, 20, 8), Weight: 4, Category: domain.CategoryFood},
	"root":    {Class: "root", Name: "Bitter Root", Composition: essence.New(8, 18, 30, 5), Weight: 2, Category: domain.CategoryFood},
	"leaf":    {Class: "leaf", Name: "Waxy Leaf", Composition: essence.New(15, 20, 10, 15), Weight: 1, Category: domain.CategoryFood},
	"flower":  {Class: "flower", Name: "Pale Flower", Composition: essence.New(10, 25, 8, 20), Weight: 1, Category: domain.CategoryFood},
	"feather": {Class: "feather", Name: "Feather", Composition: essence.New(5, 8, 5, 35), Weight: 1, Category: domain.CategoryMisc},
	"bone":    {Class: "bone", Name: "Bone", Composition: essence.New(8, 12, 35, 8), Weight: 2, Category: domain.CategoryMisc},

	// Источники огня
	"flame": {Class: "flame", Name: "Captured Flame", Composition: essence.New(45, 0, 3, 20), Weight: 1, Category: domain.CategoryMisc},
	"ember": {Class: "ember", Name: "Ember", Composition: essence.New(35, 0, 8, 12), Weight: 1, Category: domain.CategoryMisc},
	"coal":  {Class: "coal", Name: "Coal", Composition: essence.New(40, 2, 25, 8), Weight: 3, Category: domain.CategoryMisc},

	// Камни и кристаллы
	"crystal":   {Class: "crystal", Name: "Crystal Shard", Composition: essence.New(15, 20, 30, 25), Weight: 4, Category: domain.CategoryGem},
	"moonstone": {Class: "moonstone", Name: "Moonstone", Composition: essence.New(5, 35, 20, 30), Weight: 3, Category: domain.CategoryGem},
	"sunstone":  {Class: "sunstone", Name: "Sunstone", Composition: essence.New(45, 8, 20, 20), Weight: 3, Category: domain.CategoryGem},

	// Создаваемые заклинаниями
	"fortress":       {Class: "fortress", Name: "Stone Fortress", Composition: essence.New(10, 5, 55, 3), Weight: 40, Category: domain.CategoryMisc},
	"mountain":       {Class: "mountain", Name: "Raised Mountain", Composition: essence.New(15, 8, 63, 5), Weight: 99, Category: domain.CategoryMisc},
	"crystal_statue": {Class: "crystal_statue", Name: "Crystal Statue", Composition: essence.New(18, 22, 35, 25), Weight: 20, Category: domain.CategoryMisc},
	"light_source":   {Class: "light_source", Name: "Mote of Light", Composition: essence.New(25, 2, 2, 18), Weight: 1, Category: domain.CategoryMisc},

	// Заглушка
	GenericClass: {Class: GenericClass, Name: "Odd Trinket", Composition: essence.New(10, 10, 10, 10), Weight: 2, Category: domain.CategoryMisc},
}

// ObjectSpecFor возвращает описание материала по классу.
func ObjectSpecFor(class string) (ObjectSpec, bool) {
	spec, ok := objectTable[class]
	return spec, ok
}

// ObjectClasses — отсортированный список классов таблицы.
func ObjectClasses() []string {
	out := make([]string, 0, len(objectTable))
	for class := range objectTable {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// NewObject собирает экземпляр предмета мира из описания материала.
// Неизвестный класс — дефект контента: ссылки проверяются при загрузке.
func NewObject(id int, class string) (*domain.Item, error) {
	spec, ok := objectTable[class]
	if !ok {
		return nil, domain.Validation("Неизвестный материал %q.", class)
	}
	return &domain.Item{
		ID:          id,
		Name:        spec.Name,
		Class:       spec.Class,
		Kind:        domain.ItemKindObject,
		Composition: spec.Composition,
		Weight:      spec.Weight,
		Category:    spec.Category,
	}, nil
}
