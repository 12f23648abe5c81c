package domain

import "encoding/json"

// ReplayAction - это запись одного действия извне (от игрока)
type ReplayAction struct {
	Turn    int             `json:"turn"`    // Номер хода, на котором действие применено
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplayLog - полная запись партии
type ReplayLog struct {
	SessionID string         `json:"sessionId"`
	Seed      int64          `json:"seed"` // Зерно генерации мира и рандома
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}
