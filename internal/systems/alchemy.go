// Package systems содержит игровые правила поверх домена: алхимию,
// бой, инвентарь, статусы и поведение монстров. Функции пакета мутируют
// переданные сущности и возвращают нарратив; решения о ходе и порядке
// фаз принимает движок.
package systems

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/logger"
)

// Dissolve растворяет предмет инвентаря растворителем: состав предмета
// пропускается через маску и КПД растворителя, извлечённое добавляется
// в запас (с потолком), предмет исчезает, у растворителя минус одно
// применение.
//
// Операция атомарна: любая проверка проваливается ДО первой мутации,
// после неё все изменения применяются целиком.
func Dissolve(actor *domain.Creature, itemIndex, solventIndex int) ([]string, error) {
	if itemIndex == solventIndex {
		return nil, domain.Validation("Нельзя растворить растворитель им же самим.")
	}
	item, err := itemAt(actor, itemIndex)
	if err != nil {
		return nil, err
	}
	solvent, err := itemAt(actor, solventIndex)
	if err != nil {
		return nil, err
	}

	if item.IsSolvent() {
		return nil, domain.Validation("%s — растворитель, а не материал для растворения.", item.Name)
	}
	if !solvent.IsSolvent() {
		return nil, domain.Validation("%s не является растворителем.", solvent.Name)
	}
	if solvent.Uses <= 0 {
		return nil, domain.InsufficientResource("Колба %s пуста.", solvent.Name)
	}

	// --- Извлечение ---

	extracted := extractEssence(item.Composition, solvent.Extraction)
	added := actor.GainEssence(extracted)

	// --- Расход ресурсов ---

	solvent.Uses--
	solventDrained := solvent.Uses == 0

	// Сначала убираем больший индекс, чтобы меньший не сместился.
	hi, lo := itemIndex, solventIndex
	if hi < lo {
		hi, lo = lo, hi
	}
	removeAt(actor, hi, hi == itemIndex || solventDrained)
	removeAt(actor, lo, lo == itemIndex || solventDrained)

	logger.Log.WithFields(logrus.Fields{
		"component": "alchemy_system",
		"actor":     actor.Name,
		"item":      item.Class,
		"solvent":   solvent.Class,
		"extracted": extracted.String(),
		"banked":    added.String(),
		"uses_left": solvent.Uses,
	}).Info("Dissolution resolved.")

	messages := []string{fmt.Sprintf("%s растворяет %s: извлечено %s.", solvent.Name, item.Name, extracted)}
	if lost := extracted.Subtract(added); !lost.IsZero() {
		messages = append(messages, fmt.Sprintf("Запас переполнен, рассеялось %s.", lost))
	}
	if solventDrained {
		messages = append(messages, fmt.Sprintf("Колба %s опустела и выброшена.", solvent.Name))
	} else {
		messages = append(messages, fmt.Sprintf("В колбе %s осталось применений: %d.", solvent.Name, solvent.Uses))
	}
	return messages, nil
}

// extractEssence — покомпонентное произведение состава на профиль
// растворителя, округлённое до целых. Закрытые стихии дают ноль.
func extractEssence(comp essence.Vector, profile domain.Extraction) essence.Vector {
	return essence.FromFloats(
		float64(comp.Fire)*profile.Fire,
		float64(comp.Water)*profile.Water,
		float64(comp.Earth)*profile.Earth,
		float64(comp.Air)*profile.Air,
	)
}

// Distill перегоняет эссенцию: жертвует до amount из каждой из трёх
// прочих стихий и записывает 60% суммы в целевую (с потолком запаса).
func Distill(actor *domain.Creature, target essence.Element, amount int) ([]string, error) {
	if amount <= 0 {
		return nil, domain.Validation("Объём перегонки должен быть положительным.")
	}

	sacrificed := essence.Vector{}
	total := 0
	for _, e := range []essence.Element{essence.Fire, essence.Water, essence.Earth, essence.Air} {
		if e == target {
			continue
		}
		take := actor.Pool.Component(e)
		if take > amount {
			take = amount
		}
		sacrificed = sacrificed.WithComponent(e, take)
		total += take
	}
	if total == 0 {
		return nil, domain.InsufficientEssence("Нечего перегонять: прочие стихии пусты.")
	}

	yield := int(math.Floor(float64(total) * domain.DistillEfficiency))

	actor.Pool = actor.Pool.Deduct(sacrificed)
	added := actor.GainEssence(essence.Vector{}.WithComponent(target, yield))

	logger.Log.WithFields(logrus.Fields{
		"component":  "alchemy_system",
		"actor":      actor.Name,
		"target":     target.String(),
		"sacrificed": sacrificed.String(),
		"yield":      yield,
		"banked":     added.Component(target),
	}).Info("Distillation resolved.")

	messages := []string{fmt.Sprintf(
		"Перегонка: пожертвовано %s, получено %d %s.", sacrificed, yield, target)}
	if added.Component(target) < yield {
		messages = append(messages, fmt.Sprintf(
			"Запас %s полон, часть выхода рассеялась.", target))
	}
	return messages, nil
}

// --- ОБЩИЕ ПОМОЩНИКИ ИНВЕНТАРЯ ---

// itemAt возвращает предмет по индексу или ошибку валидации.
func itemAt(actor *domain.Creature, index int) (*domain.Item, error) {
	if index < 0 || index >= len(actor.Inventory) {
		return nil, domain.Validation("В инвентаре нет предмета с номером %d.", index)
	}
	return actor.Inventory[index], nil
}

// removeAt убирает предмет по индексу, если remove истинно.
// Помощник для парных удалений, где одна из позиций может остаться.
func removeAt(actor *domain.Creature, index int, remove bool) {
	if !remove {
		return
	}
	actor.Inventory = append(actor.Inventory[:index], actor.Inventory[index+1:]...)
}
