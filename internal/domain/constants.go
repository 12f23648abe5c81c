package domain

// Виды существ
const (
	CreatureKindPlayer  = "PLAYER"
	CreatureKindMonster = "MONSTER"
	CreatureKindSummon  = "SUMMON"
)

// Виды предметов в инвентаре
const (
	ItemKindObject  = "OBJECT"
	ItemKindSolvent = "SOLVENT"
)

// Категории предметов (определяют поведение действия USE)
const (
	CategoryFood   = "food"
	CategoryGem    = "gem"
	CategoryLiquid = "liquid"
	CategoryMisc   = "misc"
)

// Параметры восприятия
const (
	VisionRadius = 8
)

// Запас эссенции
const (
	// DefaultMaxEssence — стартовый потолок каждой компоненты запаса.
	// Растёт с уровнем, в отличие от границы словаря заклинаний.
	DefaultMaxEssence = 100

	// DistillEfficiency — КПД перегонки: какая доля пожертвованной
	// эссенции превращается в целевую стихию.
	DistillEfficiency = 0.6
)

// Прогрессия
const (
	XPMeleeKill = 25
	XPSpellKill = 30

	// Порог следующего уровня: level * LevelXPStep.
	LevelXPStep = 100

	LevelUpHP      = 10
	LevelUpEssence = 25
	LevelUpAttack  = 2
	LevelUpDefense = 1
)

// Эффекты применения предметов
const (
	UseFoodHealMin      = 5
	UseFoodHealMax      = 50
	UseGemEssenceFactor = 10
	UseLiquidStamina    = 25
)
