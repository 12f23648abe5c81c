package handlers

import (
	"encoding/json"

	"github.com/tripstych/elemental/internal/content"
	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/spells"
	"github.com/tripstych/elemental/internal/systems"
)

// Context передает хендлеру состояние сессии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World   *domain.World
	Actor   *domain.Creature // Тот, кто выполняет команду (игрок)
	Library *content.Library

	// Finder находит живых существ по ID для валидации целей.
	// Сессия реализует этот интерфейс.
	Finder systems.CreatureFinder

	// Effects - операции сессии, которые нужны эффектам каста:
	// материализация объектов, призыв союзников, превращение целей.
	Effects spells.World
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает повествование:
// сообщения игроку в порядке возникновения.
type Result struct {
	Messages []string
}

// HandlerFunc - это контракт для любой команды (MOVE, ATTACK, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
