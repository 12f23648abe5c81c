package actions

import (
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleDissolve растворяет предмет инвентаря выбранным растворителем
// и вливает извлечённую эссенцию в запас игрока.
func HandleDissolve(ctx handlers.Context, p api.DissolvePayload) (handlers.Result, error) {
	messages, err := systems.Dissolve(ctx.Actor, p.ItemIndex, p.SolventIndex)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Messages: messages}, nil
}
