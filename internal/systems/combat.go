package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

// Melee разрешает удар ближнего боя. Урон считается от эффективных
// характеристик (с учётом статусов): max(1, атака − защита/2).
// Возвращает нарратив и признак гибели цели.
func Melee(attacker, target *domain.Creature) (string, bool) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
	})

	if !target.Alive() {
		combatLogger.Info("Attack ineffective: target is already dead.")
		return fmt.Sprintf("%s пинает труп %s.", attacker.Name, target.Name), false
	}

	// --- Расчёт урона ---

	damage := attacker.EffectiveAttack() - target.EffectiveDefense()/2
	if damage < 1 {
		damage = 1 // Удар в ближнем бою всегда оставляет след.
	}

	hpBefore := target.HP
	died := target.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"attack":    attacker.EffectiveAttack(),
		"defense":   target.EffectiveDefense(),
		"damage":    damage,
		"hp_before": hpBefore,
		"hp_after":  target.HP,
		"died":      died,
	}).Info("Melee attack resolved.")

	return fmt.Sprintf("%s наносит %d урона по %s.", attacker.Name, damage, target.Name), died
}

// ResolveDeath убирает погибшее существо из мира и вываливает его
// инвентарь на клетку смерти. Начисление опыта — отдельная забота
// (AwardKill): смерть от статуса тоже проходит здесь, но опыт за неё
// начисляется лишь когда погиб монстр.
func ResolveDeath(w *domain.World, victim *domain.Creature) []string {
	messages := []string{fmt.Sprintf("%s погибает.", victim.Name)}

	if len(victim.Inventory) > 0 {
		w.DropAt(victim.Pos, victim.Inventory...)
		messages = append(messages, fmt.Sprintf(
			"%s роняет добычу (%d предм.).", victim.Name, len(victim.Inventory)))
		victim.Inventory = nil
	}

	w.RemoveCreature(victim.ID)

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"victim_id": victim.ID,
		"victim":    victim.Name,
		"kind":      victim.Kind,
		"pos":       victim.Pos,
	}).Info("Creature removed from world.")

	return messages
}

// AwardKill начисляет игроку опыт за убийство: база жертвы плюс бонус
// за способ (XPMeleeKill или XPSpellKill). Опыт дают только монстры —
// за развеянных призванных союзников награды нет.
//
// Переход порога level*LevelXPStep поднимает уровень; накопленный опыт
// не сгорает, поэтому одно жирное убийство может дать несколько уровней.
func AwardKill(player, victim *domain.Creature, methodBonus int) []string {
	if victim.Kind != domain.CreatureKindMonster {
		return nil
	}

	gained := victim.XPValue + methodBonus
	player.XP += gained
	messages := []string{fmt.Sprintf("Получено %d опыта.", gained)}

	for player.XP >= player.Level*domain.LevelXPStep {
		player.Level++
		player.MaxHP += domain.LevelUpHP
		player.Heal(domain.LevelUpHP)
		player.MaxEssence += domain.LevelUpEssence
		player.Attack += domain.LevelUpAttack
		player.Defense += domain.LevelUpDefense

		logger.Log.WithFields(logrus.Fields{
			"component": "combat_system",
			"player":    player.Name,
			"level":     player.Level,
			"xp":        player.XP,
		}).Info("Level up.")

		messages = append(messages, fmt.Sprintf(
			"Вы достигаете уровня %d! Здоровье, запас эссенции и характеристики выросли.",
			player.Level))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"player":    player.Name,
		"victim":    victim.Name,
		"xp_gained": gained,
		"xp_total":  player.XP,
	}).Info("Kill XP awarded.")

	return messages
}
