package engine

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// resolveWorldTurn докручивает мир после успешно разрешённого действия
// игрока: сначала ходят союзные призывы, затем монстры, затем ровно один
// раз тикают статусы и сроки призыва, и в конце проверяется исход партии.
// Порядок фаз фиксирован; все они проходят синхронно под замком сессии,
// поэтому наблюдаемая фаза меняется сразу с PLAYER_TURN на итоговую.
func (s *Session) resolveWorldTurn() []string {
	var messages []string

	messages = append(messages, s.summonPhase()...)
	if s.player.Alive() {
		messages = append(messages, s.monsterPhase()...)
	}
	messages = append(messages, s.statusPhase()...)
	messages = append(messages, s.checkOutcome()...)

	return messages
}

// statusPhase прокручивает статусы всех живых существ в порядке появления
// и уменьшает сроки призванных. Существо, убитое периодическим уроном,
// умирает как от заклинания: статусы - отложенное действие слова.
func (s *Session) statusPhase() []string {
	var messages []string

	for _, c := range s.creaturesSnapshot() {
		if !c.Alive() {
			continue
		}
		ticked, died := systems.TickStatuses(c)
		messages = append(messages, ticked...)
		if died && c.Kind != domain.CreatureKindPlayer {
			messages = append(messages, systems.ResolveDeath(s.world, c)...)
			messages = append(messages, systems.AwardKill(s.player, c, domain.XPSpellKill)...)
		}
	}

	for _, c := range s.creaturesSnapshot() {
		if !c.Alive() || !systems.TickSummonDuration(c) {
			continue
		}
		s.world.RemoveCreature(c.ID)
		messages = append(messages, c.Name+" растворяется в воздухе: срок призыва истёк.")
	}

	return messages
}

// checkOutcome переводит сессию в терминальную фазу, когда партия решена:
// гибель игрока - поражение, пустое от монстров подземелье - победа.
// Иначе ход возвращается игроку.
func (s *Session) checkOutcome() []string {
	if !s.player.Alive() {
		s.phase = api.PhaseGameOverDefeat
		return []string{"Тьма смыкается над вами. Партия окончена."}
	}
	if s.monstersRemaining() == 0 {
		s.phase = api.PhaseGameOverVictory
		return []string{"Последний враг повержен. Подземелье очищено!"}
	}
	s.phase = api.PhasePlayerTurn
	return nil
}

func (s *Session) monstersRemaining() int {
	n := 0
	for _, c := range s.world.Creatures {
		if c.Kind == domain.CreatureKindMonster && c.Alive() {
			n++
		}
	}
	return n
}
