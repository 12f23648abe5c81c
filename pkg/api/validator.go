package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	return nil
}

func (p TargetPayload) Validate() error {
	if p.TargetID < 0 {
		return errors.New("targetId cannot be negative")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.Index < 0 {
		return errors.New("item index cannot be negative")
	}
	return nil
}

func (p CastPayload) Validate() error {
	if p.Word == "" {
		return errors.New("word is required")
	}
	if p.TargetID < 0 {
		return errors.New("targetId cannot be negative")
	}
	return nil
}

func (p DissolvePayload) Validate() error {
	if p.ItemIndex < 0 || p.SolventIndex < 0 {
		return errors.New("inventory index cannot be negative")
	}
	return nil
}

func (p TransformPayload) Validate() error {
	if p.Word == "" {
		return errors.New("word is required")
	}
	return nil
}

func (p PermutePayload) Validate() error {
	if p.Word == "" {
		return errors.New("word is required")
	}
	if p.Permutation == "" {
		return errors.New("permutation name is required")
	}
	return nil
}

func (p DistillPayload) Validate() error {
	if p.Element == "" {
		return errors.New("element is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}
