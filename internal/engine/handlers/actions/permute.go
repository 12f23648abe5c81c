package actions

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/pkg/api"
)

// HandlePermute применяет именованную перестановку стихий к подписи
// известного слова. Как и TRANSFORM - чистый запрос ценой хода.
func HandlePermute(ctx handlers.Context, p api.PermutePayload) (handlers.Result, error) {
	base, err := knownSpell(ctx, p.Word)
	if err != nil {
		return handlers.Result{}, err
	}

	out, err := ctx.Library.Registry.Permute(base, essence.Permutation(p.Permutation))
	if err != nil {
		return handlers.Result{}, domain.Validation("Перестановка %q никому не известна.", p.Permutation)
	}

	return discoveryResult(ctx, base, out), nil
}
