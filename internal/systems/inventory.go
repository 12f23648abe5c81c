package systems

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/logger"
)

// --- PICKUP ---

// PickupAll забирает все предметы с клетки существа.
// Пустой пол — ошибка валидации, ход не тратится.
func PickupAll(actor *domain.Creature, w *domain.World) ([]string, error) {
	items := w.TakeAllAt(actor.Pos)
	if len(items) == 0 {
		return nil, domain.Validation("Здесь нечего подбирать.")
	}

	actor.Inventory = append(actor.Inventory, items...)

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     actor.Name,
		"picked_up": len(items),
	}).Info("Items picked up.")

	return []string{fmt.Sprintf("%s подбирает: %s.", actor.Name, strings.Join(names, ", "))}, nil
}

// --- DROP ---

// DropItem выбрасывает предмет по индексу на клетку существа.
func DropItem(actor *domain.Creature, index int, w *domain.World) (string, error) {
	item, err := itemAt(actor, index)
	if err != nil {
		return "", err
	}

	actor.Inventory = append(actor.Inventory[:index], actor.Inventory[index+1:]...)
	w.DropAt(actor.Pos, item)

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     actor.Name,
		"item":      item.Class,
	}).Info("Item dropped.")

	return fmt.Sprintf("%s выбрасывает %s.", actor.Name, item.Name), nil
}

// --- USE ---

// UseItem применяет предмет по его категории:
//   - еда лечит пропорционально весу;
//   - самоцвет рассыпается эссенцией доминирующей стихии;
//   - жидкость восстанавливает силы;
//   - всё остальное применению не подлежит (ошибка, предмет цел).
func UseItem(actor *domain.Creature, index int) (string, error) {
	item, err := itemAt(actor, index)
	if err != nil {
		return "", err
	}

	var msg string
	switch {
	case item.IsSolvent():
		return "", domain.Validation("%s — растворитель: им растворяют, а не закусывают.", item.Name)

	case item.Category == domain.CategoryFood:
		amount := item.Weight * 2
		if amount < domain.UseFoodHealMin {
			amount = domain.UseFoodHealMin
		}
		if amount > domain.UseFoodHealMax {
			amount = domain.UseFoodHealMax
		}
		healed := actor.Heal(amount)
		msg = fmt.Sprintf("%s съедает %s и восстанавливает %d здоровья.", actor.Name, item.Name, healed)

	case item.Category == domain.CategoryGem:
		element := dominantElement(item.Composition)
		amount := item.Weight * domain.UseGemEssenceFactor
		gained := actor.GainEssence(essence.Vector{}.WithComponent(element, amount))
		msg = fmt.Sprintf("%s раскрошил %s: +%d %s в запас.",
			actor.Name, item.Name, gained.Component(element), element)

	case item.Category == domain.CategoryLiquid:
		actor.RestoreStamina(domain.UseLiquidStamina)
		msg = fmt.Sprintf("%s выпивает %s и чувствует прилив сил.", actor.Name, item.Name)

	default:
		return "", domain.Validation("Вы вертите %s в руках. Ничего не происходит.", item.Name)
	}

	// Предмет расходуется только при сработавшем эффекте.
	actor.Inventory = append(actor.Inventory[:index], actor.Inventory[index+1:]...)

	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     actor.Name,
		"item":      item.Class,
		"category":  item.Category,
	}).Info("Item used.")

	return msg, nil
}

// dominantElement — стихия с наибольшей компонентой состава.
// При равенстве побеждает более ранняя в порядке огонь-вода-земля-воздух.
func dominantElement(v essence.Vector) essence.Element {
	best := essence.Fire
	for _, e := range []essence.Element{essence.Water, essence.Earth, essence.Air} {
		if v.Component(e) > v.Component(best) {
			best = e
		}
	}
	return best
}
