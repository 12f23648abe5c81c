package engine

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/systems"
)

// summonPhase - ходы призванных союзников: каждый бьёт смежного
// монстра или делает шаг к ближайшему видимому. Союзники ходят до
// монстров, поэтому призыв успевает прикрыть игрока.
func (s *Session) summonPhase() []string {
	var messages []string

	for _, ally := range s.creaturesSnapshot() {
		if ally.Kind != domain.CreatureKindSummon || !ally.Alive() {
			continue
		}

		target := s.nearestMonster(ally.Pos)
		if target == nil {
			continue
		}

		action, dx, dy := systems.ComputeMonsterAction(ally, target, s.world)
		switch action {
		case domain.ActionAttack:
			msg, died := systems.Melee(ally, target)
			messages = append(messages, msg)
			if died {
				messages = append(messages, systems.ResolveDeath(s.world, target)...)
				// Добыча союзника - добыча хозяина.
				messages = append(messages, systems.AwardKill(s.player, target, domain.XPMeleeKill)...)
			}
		case domain.ActionMove:
			systems.ApplyMove(ally, systems.CalculateMove(ally, dx, dy, s.world))
		}
	}
	return messages
}

// monsterPhase - ходы монстров в порядке появления в мире: смежный
// с игроком бьёт, видящий игрока делает жадный шаг к нему, остальные
// выжидают. Гибель игрока обрывает фазу.
func (s *Session) monsterPhase() []string {
	var messages []string

	for _, m := range s.creaturesSnapshot() {
		if m.Kind != domain.CreatureKindMonster || !m.Alive() {
			continue
		}
		if !s.player.Alive() {
			break
		}

		action, dx, dy := systems.ComputeMonsterAction(m, s.player, s.world)
		switch action {
		case domain.ActionAttack:
			msg, _ := systems.Melee(m, s.player)
			messages = append(messages, msg)
		case domain.ActionMove:
			systems.ApplyMove(m, systems.CalculateMove(m, dx, dy, s.world))
		}
	}
	return messages
}

// nearestMonster возвращает ближайшего живого монстра; при равенстве
// дистанций побеждает появившийся раньше.
func (s *Session) nearestMonster(from domain.Position) *domain.Creature {
	var best *domain.Creature
	bestDist := 0

	for _, c := range s.world.Creatures {
		if c.Kind != domain.CreatureKindMonster || !c.Alive() {
			continue
		}
		d := from.DistanceSquaredTo(c.Pos)
		if best == nil || d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// creaturesSnapshot копирует список существ: фазы убирают погибших
// из мира прямо во время обхода.
func (s *Session) creaturesSnapshot() []*domain.Creature {
	out := make([]*domain.Creature, len(s.world.Creatures))
	copy(out, s.world.Creatures)
	return out
}
