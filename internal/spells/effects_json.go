package spells

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tripstych/elemental/internal/essence"
)

// Контент описывает эффекты тегированными JSON-объектами:
//
//	{"type": "damage", "amount": "fire * 0.6", "element": "fire"}
//	{"type": "area_effect", "radius": 3, "effects": [ ... ]}
//
// Величины (amount, duration, radius, hp) принимают и число, и строку
// формулы — контент исторически смешивает оба вида. Разбор происходит
// один раз при загрузке; любая ошибка валит старт сервера, а не каст.

// DecodeEffects разбирает список эффектов заклинания.
func DecodeEffects(raw []json.RawMessage) ([]Effect, error) {
	effects := make([]Effect, 0, len(raw))
	for i, r := range raw {
		eff, err := DecodeEffect(r)
		if err != nil {
			return nil, fmt.Errorf("effect #%d: %w", i, err)
		}
		effects = append(effects, eff)
	}
	return effects, nil
}

// DecodeEffect разбирает один узел дерева эффектов по полю "type".
func DecodeEffect(raw json.RawMessage) (Effect, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("effect envelope: %w", err)
	}

	switch head.Type {
	case "damage":
		var spec struct {
			Amount  json.RawMessage `json:"amount"`
			Element string          `json:"element"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		amount, err := decodeFormula(spec.Amount, "amount")
		if err != nil {
			return nil, err
		}
		elem, err := essence.ParseElement(spec.Element)
		if err != nil {
			return nil, err
		}
		return DamageEffect{Amount: amount, Element: elem}, nil

	case "heal":
		var spec struct {
			Amount  json.RawMessage `json:"amount"`
			Cleanse []string        `json:"cleanse"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		amount, err := decodeFormula(spec.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return HealEffect{Amount: amount, Cleanse: spec.Cleanse}, nil

	case "apply_status":
		var spec struct {
			Status        string          `json:"status"`
			Duration      json.RawMessage `json:"duration"`
			AttackDelta   int             `json:"attack_delta"`
			DefenseDelta  int             `json:"defense_delta"`
			DamagePerTurn int             `json:"damage_per_turn"`
			ToSelf        bool            `json:"to_self"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Status == "" {
			return nil, fmt.Errorf("apply_status: empty status name")
		}
		duration, err := decodeFormula(spec.Duration, "duration")
		if err != nil {
			return nil, err
		}
		return StatusEffectSpec{
			Status:         spec.Status,
			Duration:       duration,
			AttackDelta:    spec.AttackDelta,
			DefenseDelta:   spec.DefenseDelta,
			PeriodicDamage: spec.DamagePerTurn,
			ToSelf:         spec.ToSelf,
		}, nil

	case "area_effect":
		var spec struct {
			Radius     json.RawMessage   `json:"radius"`
			CenterSelf bool              `json:"center_self"`
			Effects    []json.RawMessage `json:"effects"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		radius, err := decodeFormula(spec.Radius, "radius")
		if err != nil {
			return nil, err
		}
		if len(spec.Effects) == 0 {
			return nil, fmt.Errorf("area_effect: empty nested effect list")
		}
		nested, err := DecodeEffects(spec.Effects)
		if err != nil {
			return nil, fmt.Errorf("area_effect: %w", err)
		}
		return AreaEffect{Radius: radius, CenterSelf: spec.CenterSelf, Effects: nested}, nil

	case "create_object":
		var spec struct {
			Object string          `json:"object"`
			HP     json.RawMessage `json:"hp"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Object == "" {
			return nil, fmt.Errorf("create_object: empty object key")
		}
		hp, err := decodeFormula(spec.HP, "hp")
		if err != nil {
			return nil, err
		}
		return CreateObjectEffect{Object: spec.Object, HP: hp}, nil

	case "summon":
		var spec struct {
			Creature string          `json:"creature"`
			HP       json.RawMessage `json:"hp"`
			Duration json.RawMessage `json:"duration"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Creature == "" {
			return nil, fmt.Errorf("summon: empty creature key")
		}
		hp, err := decodeFormula(spec.HP, "hp")
		if err != nil {
			return nil, err
		}
		duration, err := decodeFormula(spec.Duration, "duration")
		if err != nil {
			return nil, err
		}
		return SummonEffect{Creature: spec.Creature, HP: hp, Duration: duration}, nil

	case "buff":
		var spec struct {
			Status   string          `json:"status"`
			Stat     string          `json:"stat"`
			Amount   json.RawMessage `json:"amount"`
			Duration json.RawMessage `json:"duration"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Status == "" {
			return nil, fmt.Errorf("buff: empty status name")
		}
		stat, err := parseBuffStat(spec.Stat)
		if err != nil {
			return nil, err
		}
		amount, err := decodeFormula(spec.Amount, "amount")
		if err != nil {
			return nil, err
		}
		duration, err := decodeFormula(spec.Duration, "duration")
		if err != nil {
			return nil, err
		}
		return BuffEffect{Status: spec.Status, Stat: stat, Amount: amount, Duration: duration}, nil

	case "transform":
		var spec struct {
			Into string `json:"into"`
		}
		if err := json.Unmarshal(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Into == "" {
			return nil, fmt.Errorf("transform: empty object key")
		}
		return TransformTargetEffect{Into: spec.Into}, nil

	case "":
		return nil, fmt.Errorf("effect without a type")
	default:
		return nil, fmt.Errorf("unknown effect type %q", head.Type)
	}
}

// decodeFormula принимает число или строку формулы.
// Отсутствующее поле — дефект контента, а не нулевая величина.
func decodeFormula(raw json.RawMessage, field string) (*essence.Formula, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing %q", field)
	}
	if raw[0] == '"' {
		src, err := strconv.Unquote(string(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		f, err := essence.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		return f, nil
	}
	// Числовой литерал — та же грамматика, что и у формул.
	f, err := essence.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return f, nil
}

func parseBuffStat(s string) (BuffStat, error) {
	switch s {
	case "attack":
		return BuffAttack, nil
	case "defense":
		return BuffDefense, nil
	default:
		return 0, fmt.Errorf("unknown buff stat %q", s)
	}
}
