package actions

import (
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine/handlers"
	"github.com/tripstych/elemental/internal/essence"
	"github.com/tripstych/elemental/internal/systems"
	"github.com/tripstych/elemental/pkg/api"
)

// HandleDistill перегоняет эссенцию: жертвует до amount из каждой
// из остальных стихий и превращает 60% пожертвованного в целевую.
func HandleDistill(ctx handlers.Context, p api.DistillPayload) (handlers.Result, error) {
	target, err := essence.ParseElement(p.Element)
	if err != nil {
		return handlers.Result{}, domain.Validation("Стихия %q неизвестна алхимии.", p.Element)
	}

	messages, err := systems.Distill(ctx.Actor, target, p.Amount)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Messages: messages}, nil
}
