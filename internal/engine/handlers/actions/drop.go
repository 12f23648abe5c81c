package actions

import (
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleDrop выбрасывает предмет из инвентаря на клетку игрока.
func HandleDrop(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	msg, err := systems.DropItem(ctx.Actor, p.Index, ctx.World)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Messages: []string{msg}}, nil
}
