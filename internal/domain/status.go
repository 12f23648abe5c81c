package domain

// StatusEffect — временный модификатор на существе.
//
// Статус тикает ровно один раз за полный цикл хода: применяется
// периодический урон, длительность уменьшается на единицу, на нуле
// статус снимается. Дельты характеристик действуют, пока статус активен;
// эффективные характеристики существа вычисляются от базы, поэтому
// снятие статуса не требует обратной записи.
type StatusEffect struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`

	AttackDelta  int `json:"attackDelta,omitempty"`
	DefenseDelta int `json:"defenseDelta,omitempty"`

	// PeriodicDamage — урон в конце каждого цикла (яд, горение).
	PeriodicDamage int `json:"periodicDamage,omitempty"`
}
