// Package spells реализует магическую систему: реестр слов силы,
// трансформации элементного состава и исполнитель деревьев эффектов.
package spells

import (
	"github.com/tripstych/elemental/internal/essence"
)

// Spell — заклинание из таблицы контента.
//
// Vector — его элементная подпись: одновременно стоимость каста,
// контекст вычисления формул эффектов и ключ поиска при открытии
// новых слов трансформацией.
type Spell struct {
	Word       string
	Synset     string
	Spirit     string
	Definition string
	Vector     essence.Vector
	Effects    []Effect
}

// Cost — вектор, который списывается с запаса кастера.
func (s *Spell) Cost() essence.Vector {
	return s.Vector
}

// NeedsTarget — true, если хотя бы один эффект заклинания требует
// живого противника (урон, превращение, вражеский статус).
func (s *Spell) NeedsTarget() bool {
	for _, e := range s.Effects {
		switch eff := e.(type) {
		case DamageEffect, TransformTargetEffect:
			return true
		case StatusEffectSpec:
			if !eff.ToSelf {
				return true
			}
		}
	}
	return false
}

// Effect — узел дерева эффектов заклинания.
//
// Закрытое объединение: каждый вид обрабатывается своей веткой switch
// в исполнителе. Новый вид эффекта требует и нового варианта здесь,
// и новой ветки там.
type Effect interface {
	isEffect()
}

// DamageEffect наносит цели урон, сниженный её защитой.
type DamageEffect struct {
	Amount  *essence.Formula
	Element essence.Element // стихия урона, попадает в нарратив
}

// HealEffect восстанавливает здоровье кастеру и опционально
// снимает перечисленные статусы.
type HealEffect struct {
	Amount  *essence.Formula
	Cleanse []string
}

// StatusEffectSpec вешает именованный статус с длительностью из формулы.
// Повторное наложение активного статуса обновляет его, не стакает.
type StatusEffectSpec struct {
	Status         string
	Duration       *essence.Formula
	AttackDelta    int
	DefenseDelta   int
	PeriodicDamage int
	ToSelf         bool // статус вешается на кастера, а не на врага
}

// AreaEffect применяет вложенные эффекты ко всем существам в радиусе
// от опорной точки (цель или сам кастер).
type AreaEffect struct {
	Radius     *essence.Formula
	CenterSelf bool
	Effects    []Effect
}

// CreateObjectEffect материализует предмет на клетке цели или кастера.
type CreateObjectEffect struct {
	Object string // ключ из таблицы объектов
	HP     *essence.Formula
}

// SummonEffect призывает временного союзника рядом с кастером.
type SummonEffect struct {
	Creature string
	HP       *essence.Formula
	Duration *essence.Formula
}

// BuffEffect временно сдвигает атаку или защиту цели. Отрицательная
// величина — ослабление; снимается автоматически по истечении срока.
type BuffEffect struct {
	Status   string // имя статуса, под которым живёт бафф
	Stat     BuffStat
	Amount   *essence.Formula
	Duration *essence.Formula
}

// TransformTargetEffect необратимо превращает цель в инертный объект.
type TransformTargetEffect struct {
	Into string // ключ объекта, в который обращается цель
}

// BuffStat — какая характеристика сдвигается баффом.
type BuffStat uint8

const (
	BuffAttack BuffStat = iota
	BuffDefense
)

func (DamageEffect) isEffect()          {}
func (HealEffect) isEffect()            {}
func (StatusEffectSpec) isEffect()      {}
func (AreaEffect) isEffect()            {}
func (CreateObjectEffect) isEffect()    {}
func (SummonEffect) isEffect()          {}
func (BuffEffect) isEffect()            {}
func (TransformTargetEffect) isEffect() {}
