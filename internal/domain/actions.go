package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionAttack
	ActionWait
	ActionPickup
	ActionCast
	ActionUse
	ActionDrop
	ActionDissolve
	ActionTransform
	ActionPermute
	ActionDistill
	ActionReset
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":      ActionMove,
	"ATTACK":    ActionAttack,
	"WAIT":      ActionWait,
	"PICKUP":    ActionPickup,
	"CAST":      ActionCast,
	"USE":       ActionUse,
	"DROP":      ActionDrop,
	"DISSOLVE":  ActionDissolve,
	"TRANSFORM": ActionTransform,
	"PERMUTE":   ActionPermute,
	"DISTILL":   ActionDistill,
	"RESET":     ActionReset,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:      "MOVE",
	ActionAttack:    "ATTACK",
	ActionWait:      "WAIT",
	ActionPickup:    "PICKUP",
	ActionCast:      "CAST",
	ActionUse:       "USE",
	ActionDrop:      "DROP",
	ActionDissolve:  "DISSOLVE",
	ActionTransform: "TRANSFORM",
	ActionPermute:   "PERMUTE",
	ActionDistill:   "DISTILL",
	ActionReset:     "RESET",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
