package domain

import "github.com/tripstych/elemental/internal/essence"

// Creature — живая сущность сессии: игрок, монстр или призванный союзник.
//
// Идентификатор монотонно растёт в пределах сессии и задаёт
// детерминированный порядок ходов монстров (порядок появления).
type Creature struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Archetype string   `json:"archetype,omitempty"`
	Pos       Position `json:"pos"`

	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`

	// Pool — текущий запас эссенции; каждая компонента ограничена
	// MaxEssence (персональный потолок, растёт с уровнем).
	Pool       essence.Vector `json:"pool"`
	MaxEssence int            `json:"maxEssence"`

	Inventory []*Item         `json:"inventory,omitempty"`
	Grimoire  []string        `json:"grimoire,omitempty"`
	Statuses  []*StatusEffect `json:"statuses,omitempty"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	// XPValue — опыт, который получает игрок за убийство этого существа
	// (для монстров; складывается с бонусом за способ убийства).
	XPValue int `json:"-"`

	// Duration — оставшиеся ходы жизни призванного существа.
	// Ноль означает «живёт, пока не убьют».
	Duration int `json:"duration,omitempty"`

	// Stamina — запас сил; в ядре боя не участвует, но восстанавливается
	// зельями и показывается игроку.
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"maxStamina"`
}

// Alive — существо ещё в игре.
func (c *Creature) Alive() bool {
	return c.HP > 0
}

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (c *Creature) TakeDamage(amount int) bool {
	if !c.Alive() {
		return false
	}
	if amount < 0 {
		amount = 0
	}

	c.HP -= amount
	if c.HP <= 0 {
		c.HP = 0
		return true
	}
	return false
}

// Heal лечит существо, не превышая максимум.
// Возвращает фактически восстановленное здоровье.
func (c *Creature) Heal(amount int) int {
	if !c.Alive() {
		return 0 // Не лечим трупы! Нет некромантии!
	}
	if amount < 0 {
		amount = 0
	}

	before := c.HP
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c.HP - before
}

// RestoreStamina восстанавливает силы, не превышая максимум.
func (c *Creature) RestoreStamina(amount int) {
	c.Stamina += amount
	if c.Stamina > c.MaxStamina {
		c.Stamina = c.MaxStamina
	}
}

// --- ГРИМУАР ---

// KnowsSpell — слово уже есть в гримуаре.
func (c *Creature) KnowsSpell(word string) bool {
	for _, w := range c.Grimoire {
		if w == word {
			return true
		}
	}
	return false
}

// LearnSpell добавляет слово в гримуар. Возвращает false, если слово
// уже было известно (порядок изучения сохраняется, дубликатов нет).
func (c *Creature) LearnSpell(word string) bool {
	if c.KnowsSpell(word) {
		return false
	}
	c.Grimoire = append(c.Grimoire, word)
	return true
}

// --- ЭССЕНЦИЯ ---

// GainEssence добавляет эссенцию в запас с учётом потолка.
// Возвращает фактически добавленный вектор.
func (c *Creature) GainEssence(delta essence.Vector) essence.Vector {
	pool, added := c.Pool.AddCapped(delta, c.MaxEssence)
	c.Pool = pool
	return added
}

// PayEssence атомарно списывает стоимость каста: либо покрыты все четыре
// компоненты и запас уменьшается, либо запас не меняется вовсе.
func (c *Creature) PayEssence(cost essence.Vector) error {
	if !c.Pool.Covers(cost) {
		return InsufficientEssence(
			"Не хватает эссенции: нужно %s, в запасе %s.", cost, c.Pool)
	}
	c.Pool = c.Pool.Deduct(cost)
	return nil
}

// --- СТАТУСЫ ---

// FindStatus возвращает активный статус по имени или nil.
func (c *Creature) FindStatus(name string) *StatusEffect {
	for _, st := range c.Statuses {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// ApplyStatus вешает статус на существо. Повторное применение активного
// статуса ОБНОВЛЯЕТ его длительность и параметры, а не складывает два
// независимых таймера: стакающиеся эффекты моделируются отдельными
// именами статусов.
// Возвращает true, если статус был обновлён, а не добавлен.
func (c *Creature) ApplyStatus(st StatusEffect) bool {
	if existing := c.FindStatus(st.Name); existing != nil {
		*existing = st
		return true
	}
	applied := st
	c.Statuses = append(c.Statuses, &applied)
	return false
}

// RemoveStatuses снимает статусы с перечисленными именами.
// Возвращает имена фактически снятых.
func (c *Creature) RemoveStatuses(names ...string) []string {
	if len(names) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	var removed []string
	kept := c.Statuses[:0]
	for _, st := range c.Statuses {
		if drop[st.Name] {
			removed = append(removed, st.Name)
			continue
		}
		kept = append(kept, st)
	}
	c.Statuses = kept
	return removed
}

// EffectiveAttack — атака с учётом активных статусов, не ниже нуля.
func (c *Creature) EffectiveAttack() int {
	v := c.Attack
	for _, st := range c.Statuses {
		v += st.AttackDelta
	}
	if v < 0 {
		v = 0
	}
	return v
}

// EffectiveDefense — защита с учётом активных статусов, не ниже нуля.
func (c *Creature) EffectiveDefense() int {
	v := c.Defense
	for _, st := range c.Statuses {
		v += st.DefenseDelta
	}
	if v < 0 {
		v = 0
	}
	return v
}
