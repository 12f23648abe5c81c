package domain

import (
	"errors"
	"fmt"
)

// ErrorKind — класс отказа игрового действия.
//
// Все классы восстановимы: сессия остаётся ровно в том состоянии,
// в каком была до неудачного действия, счётчик ходов не двигается,
// а игрок получает текст ошибки как нарративное сообщение.
type ErrorKind uint8

const (
	// ErrValidation — неизвестное действие, кривой payload, индекс вне границ.
	ErrValidation ErrorKind = iota + 1
	// ErrInsufficientEssence — стоимость каста не покрыта запасом.
	ErrInsufficientEssence
	// ErrInsufficientResource — растворитель исчерпан, предмет отсутствует.
	ErrInsufficientResource
	// ErrInvalidTarget — нет допустимой цели (не с кем драться рядом).
	ErrInvalidTarget
	// ErrState — действие после конца игры.
	ErrState
)

var errorKindNames = map[ErrorKind]string{
	ErrValidation:           "VALIDATION",
	ErrInsufficientEssence:  "INSUFFICIENT_ESSENCE",
	ErrInsufficientResource: "INSUFFICIENT_RESOURCE",
	ErrInvalidTarget:        "INVALID_TARGET",
	ErrState:                "STATE",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// GameError несёт класс отказа и готовый нарратив для игрока.
type GameError struct {
	Kind ErrorKind
	Msg  string
}

func (e *GameError) Error() string {
	return e.Msg
}

// Validation создаёт ошибку валидации ввода.
func Validation(format string, args ...any) *GameError {
	return &GameError{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// InsufficientEssence — запаса эссенции не хватает на каст.
func InsufficientEssence(format string, args ...any) *GameError {
	return &GameError{Kind: ErrInsufficientEssence, Msg: fmt.Sprintf(format, args...)}
}

// InsufficientResource — в инвентаре нет нужного предмета или растворителя.
func InsufficientResource(format string, args ...any) *GameError {
	return &GameError{Kind: ErrInsufficientResource, Msg: fmt.Sprintf(format, args...)}
}

// InvalidTarget — для действия нет допустимой цели.
func InvalidTarget(format string, args ...any) *GameError {
	return &GameError{Kind: ErrInvalidTarget, Msg: fmt.Sprintf(format, args...)}
}

// StateFailure — действие невозможно в текущем состоянии сессии.
func StateFailure(format string, args ...any) *GameError {
	return &GameError{Kind: ErrState, Msg: fmt.Sprintf(format, args...)}
}

// KindOf извлекает класс отказа из цепочки ошибок.
// Возвращает 0, если ошибка не является игровой.
func KindOf(err error) ErrorKind {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

// IsGameError — истина для восстановимых игровых отказов.
// Всё остальное — дефект движка, а не пользовательская ситуация.
func IsGameError(err error) bool {
	return KindOf(err) != 0
}
