package spells

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/logger"
)

// World — операции над состоянием сессии, которые нужны эффектам каста.
// Исполнитель не знает про карту и очередь ходов, он просит мир сделать
// ровно то, что описывает эффект.
type World interface {
	// CreaturesWithin возвращает живых существ в радиусе от точки,
	// включая кастера, если он попадает в область.
	CreaturesWithin(center domain.Position, radius int) []*domain.Creature

	// PlaceObject материализует предмет контента на клетке.
	PlaceObject(objectKey string, hp int, at domain.Position) (*domain.Item, error)

	// SpawnSummon создаёт временного союзника рядом с точкой.
	SpawnSummon(creatureKey string, hp, duration int, near domain.Position) (*domain.Creature, error)

	// ReplaceWithObject убирает существо из мира и оставляет на его
	// клетке инертный предмет контента.
	ReplaceWithObject(victim *domain.Creature, objectKey string) (*domain.Item, error)
}

// CastContext — всё, что нужно для одного каста.
type CastContext struct {
	Caster *domain.Creature
	Target *domain.Creature // nil для самонаправленных заклинаний
	World  World
}

// CastResult — нарратив и последствия успешного каста.
type CastResult struct {
	Messages []string
	// Kills — существа, погибшие от эффектов этого каста,
	// в порядке гибели. Опыт начисляет боевая система, не исполнитель.
	Kills []*domain.Creature
}

// Cast исполняет заклинание: проверяет цель, атомарно списывает
// стоимость и применяет дерево эффектов в порядке объявления.
//
// До списания стоимости состояние не меняется вовсе. После списания
// откатов нет: частично применённое дерево — штатный исход, отдельные
// неудачи эффектов превращаются в нарратив, а не в ошибку.
func Cast(sp *Spell, ctx CastContext) (*CastResult, error) {
	if sp.NeedsTarget() && ctx.Target == nil {
		return nil, domain.InvalidTarget("Слову «%s» нужна цель, но рядом никого нет.", sp.Word)
	}

	// --- Оплата ---

	if err := ctx.Caster.PayEssence(sp.Cost()); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "spell_executor",
		"word":      sp.Word,
		"caster":    ctx.Caster.Name,
		"cost":      sp.Vector.String(),
		"pool":      ctx.Caster.Pool.String(),
	}).Info("Spell cost paid, resolving effects.")

	// --- Применение дерева эффектов ---

	res := &CastResult{
		Messages: []string{fmt.Sprintf("Вы произносите слово «%s».", sp.Word)},
	}
	x := &execution{sp: sp, ctx: ctx, res: res}
	for _, eff := range sp.Effects {
		x.apply(eff, nil)
	}
	return res, nil
}

// execution — состояние одного каста: заклинание задаёт действующий
// вектор для всех формул дерева, результат накапливает нарратив.
type execution struct {
	sp  *Spell
	ctx CastContext
	res *CastResult
}

// apply применяет один узел дерева. subject задан только внутри области:
// там каждый попавший под эффект сам становится целью вложенных узлов.
// На верхнем уровне subject == nil, и адресат выбирается по виду эффекта.
func (x *execution) apply(eff Effect, subject *domain.Creature) {
	switch e := eff.(type) {
	case DamageEffect:
		victim := subject
		if victim == nil {
			victim = x.ctx.Target
		}
		if victim == nil || !victim.Alive() {
			return
		}
		x.applyDamage(e, victim)

	case HealEffect:
		patient := subject
		if patient == nil {
			patient = x.ctx.Caster
		}
		healed := patient.Heal(x.magnitude(e.Amount))
		msg := fmt.Sprintf("%s восстанавливает %d здоровья.", patient.Name, healed)
		if removed := patient.RemoveStatuses(e.Cleanse...); len(removed) > 0 {
			msg += fmt.Sprintf(" Сняты статусы: %v.", removed)
		}
		x.say(msg)

	case StatusEffectSpec:
		victim := subject
		if victim == nil {
			if e.ToSelf {
				victim = x.ctx.Caster
			} else {
				victim = x.ctx.Target
			}
		}
		if victim == nil || !victim.Alive() {
			return
		}
		st := domain.StatusEffect{
			Name:           e.Status,
			Remaining:      x.duration(e.Duration),
			AttackDelta:    e.AttackDelta,
			DefenseDelta:   e.DefenseDelta,
			PeriodicDamage: e.PeriodicDamage,
		}
		if victim.ApplyStatus(st) {
			x.say(fmt.Sprintf("Статус «%s» на %s обновлён (%d ходов).", st.Name, victim.Name, st.Remaining))
		} else {
			x.say(fmt.Sprintf("%s получает статус «%s» (%d ходов).", victim.Name, st.Name, st.Remaining))
		}

	case AreaEffect:
		radius := x.magnitude(e.Radius)
		if radius < 0 {
			radius = 0
		}
		center := x.ctx.Caster.Pos
		if !e.CenterSelf && x.ctx.Target != nil {
			center = x.ctx.Target.Pos
		}
		caught := x.ctx.World.CreaturesWithin(center, radius)
		x.say(fmt.Sprintf("Волна силы накрывает область (радиус %d, существ: %d).", radius, len(caught)))
		for _, cr := range caught {
			for _, nested := range e.Effects {
				x.apply(nested, cr)
			}
		}

	case CreateObjectEffect:
		at := x.ctx.Caster.Pos
		if x.ctx.Target != nil {
			at = x.ctx.Target.Pos
		}
		hp := x.magnitude(e.HP)
		item, err := x.ctx.World.PlaceObject(e.Object, hp, at)
		if err != nil {
			x.fizzle("create_object", err)
			return
		}
		x.say(fmt.Sprintf("Из воздуха возникает %s.", item.Name))

	case SummonEffect:
		hp := x.magnitude(e.HP)
		if hp < 1 {
			hp = 1
		}
		dur := x.duration(e.Duration)
		ally, err := x.ctx.World.SpawnSummon(e.Creature, hp, dur, x.ctx.Caster.Pos)
		if err != nil {
			x.fizzle("summon", err)
			return
		}
		x.say(fmt.Sprintf("%s отвечает на зов (%d HP, %d ходов).", ally.Name, ally.HP, dur))

	case BuffEffect:
		amount := x.magnitude(e.Amount)
		st := domain.StatusEffect{Name: e.Status, Remaining: x.duration(e.Duration)}
		switch e.Stat {
		case BuffAttack:
			st.AttackDelta = amount
		case BuffDefense:
			st.DefenseDelta = amount
		}
		x.ctx.Caster.ApplyStatus(st)
		x.say(fmt.Sprintf("На вас ложится «%s» (%+d, %d ходов).", st.Name, amount, st.Remaining))

	case TransformTargetEffect:
		victim := subject
		if victim == nil {
			victim = x.ctx.Target
		}
		if victim == nil || !victim.Alive() {
			return
		}
		item, err := x.ctx.World.ReplaceWithObject(victim, e.Into)
		if err != nil {
			x.fizzle("transform", err)
			return
		}
		// Превращение необратимо и не считается убийством: опыта нет.
		x.say(fmt.Sprintf("%s обращается в %s.", victim.Name, item.Name))

	default:
		logger.Log.WithFields(logrus.Fields{
			"component": "spell_executor",
			"word":      x.sp.Word,
			"effect":    fmt.Sprintf("%T", eff),
		}).Error("Unhandled effect kind, content loader let it through.")
	}
}

// applyDamage — урон формулы, смягчённый защитой цели (но не ниже нуля).
func (x *execution) applyDamage(e DamageEffect, victim *domain.Creature) {
	dmg := x.magnitude(e.Amount) - victim.EffectiveDefense()/2
	if dmg < 0 {
		dmg = 0
	}
	died := victim.TakeDamage(dmg)

	msg := fmt.Sprintf("%s получает %d урона (%s).", victim.Name, dmg, e.Element)
	if died {
		msg += fmt.Sprintf(" %s погибает.", victim.Name)
		x.res.Kills = append(x.res.Kills, victim)
	}
	x.say(msg)

	logger.Log.WithFields(logrus.Fields{
		"component": "spell_executor",
		"word":      x.sp.Word,
		"target":    victim.Name,
		"element":   e.Element.String(),
		"damage":    dmg,
		"died":      died,
	}).Debug("Damage effect resolved.")
}

// magnitude вычисляет формулу относительно подписи заклинания
// и усекает к целому.
func (x *execution) magnitude(f *essence.Formula) int {
	return int(f.Eval(x.sp.Vector))
}

// duration — длительность в целых ходах, не меньше одного.
func (x *execution) duration(f *essence.Formula) int {
	d := x.magnitude(f)
	if d < 1 {
		d = 1
	}
	return d
}

func (x *execution) say(msg string) {
	x.res.Messages = append(x.res.Messages, msg)
}

// fizzle — эффект не смог примениться уже после оплаты. Откатов нет:
// игрок видит, что слово ушло в пустоту, а детали остаются в логе.
func (x *execution) fizzle(kind string, err error) {
	logger.Log.WithFields(logrus.Fields{
		"component": "spell_executor",
		"word":      x.sp.Word,
		"effect":    kind,
	}).WithError(err).Warn("Effect fizzled after payment.")
	x.say("Часть силы рассеивается впустую.")
}
