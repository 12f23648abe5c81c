package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

// TickStatuses прокручивает один цикл статусов существа: периодический
// урон применяется, длительность уменьшается на единицу, истёкшие
// статусы снимаются. Вызывается ровно один раз за полный ход.
//
// Периодический урон идёт мимо защиты: яд и горение точат изнутри.
// Возвращает нарратив и признак гибели от статуса.
func TickStatuses(c *domain.Creature) ([]string, bool) {
	if len(c.Statuses) == 0 || !c.Alive() {
		return nil, false
	}

	var messages []string
	died := false

	kept := c.Statuses[:0]
	for _, st := range c.Statuses {
		if st.PeriodicDamage > 0 && !died {
			if c.TakeDamage(st.PeriodicDamage) {
				died = true
			}
			messages = append(messages, fmt.Sprintf(
				"%s страдает от «%s» (−%d здоровья).", c.Name, st.Name, st.PeriodicDamage))
		}

		st.Remaining--
		if st.Remaining <= 0 {
			messages = append(messages, fmt.Sprintf(
				"Эффект «%s» на %s рассеивается.", st.Name, c.Name))
			continue
		}
		kept = append(kept, st)
	}
	c.Statuses = kept

	if died {
		logger.Log.WithFields(logrus.Fields{
			"component": "status_system",
			"creature":  c.Name,
		}).Info("Creature killed by status damage.")
	}

	return messages, died
}

// TickSummonDuration уменьшает срок жизни призванного существа.
// Возвращает true, когда срок истёк и существо пора развеять.
// Существа с нулевым сроком живут, пока их не убьют.
func TickSummonDuration(c *domain.Creature) bool {
	if c.Kind != domain.CreatureKindSummon || c.Duration <= 0 {
		return false
	}
	c.Duration--
	return c.Duration == 0
}
