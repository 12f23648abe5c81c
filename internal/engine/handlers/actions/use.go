package actions

import (
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleUse применяет предмет по индексу инвентаря: еда лечит,
// самоцветы пополняют эссенцию, жидкости восстанавливают силы.
// Что применить нельзя, то и не тратится.
func HandleUse(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.UseItem(ctx.Actor, p.Index)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Messages: []string{msg}}, nil
}
