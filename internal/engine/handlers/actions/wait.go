package actions

import (
	"fmt"

	"github.com/tripstych/elemental/internal/engine/handlers"
)

// HandleWait пропускает ход. Мир всё равно сделает свой.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Messages: []string{fmt.Sprintf("%s пропускает ход.", ctx.Actor.Name)},
	}, nil
}
