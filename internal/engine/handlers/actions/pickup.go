package actions

import (
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
)

// HandlePickup подбирает всё, что лежит на клетке игрока.
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	messages, err := systems.PickupAll(ctx.Actor, ctx.World)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Messages: messages}, nil
}
