package api

import (
	"encoding/json"
)

// Типы ответов сервера.
const (
	ResponseUpdate   = "UPDATE"
	ResponseError    = "ERROR"
	ResponseGameOver = "GAME_OVER"
)

// Фазы сессии, видимые клиенту. Промежуточные фазы разрешения хода
// (ходы монстров, тики статусов) снаружи не наблюдаемы: клиент всегда
// получает сессию либо в ожидании хода игрока, либо законченной.
const (
	PhasePlayerTurn      = "PLAYER_TURN"
	PhaseGameOverDefeat  = "GAME_OVER_DEFEAT"
	PhaseGameOverVictory = "GAME_OVER_VICTORY"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" сессии после разрешения действия
// (или по запросу состояния) плюс повествование, накопленное за ход.
type ServerResponse struct {
	// Type тип сообщения: UPDATE после успешного действия, GAME_OVER
	// когда действие закончило партию, ERROR при отклонённом действии.
	Type string `json:"type"`

	// SessionID идентификатор сессии, к которой относится снимок.
	SessionID string `json:"sessionId"`

	// Turn номер текущего хода. Растёт ровно на единицу за каждое
	// успешно разрешённое действие; отклонённое действие его не двигает.
	Turn int `json:"turn"`

	// Phase фаза конечного автомата сессии:
	// PLAYER_TURN, GAME_OVER_DEFEAT или GAME_OVER_VICTORY.
	Phase string `json:"phase"`

	// State снимок мира, видимый игроку. В ответах-ошибках отсутствует:
	// отклонённое действие ничего не меняет, у клиента уже есть
	// актуальный снимок.
	State *StateView `json:"state,omitempty"`

	// Messages повествование этого хода в порядке возникновения:
	// сначала результат действия игрока, затем ходы союзников и
	// монстров, затем тики статусов.
	Messages []string `json:"messages,omitempty"`

	// Error машинно-читаемый отказ. Заполнен только при Type == ERROR.
	Error *ErrorView `json:"error,omitempty"`
}

// ErrorView - типизированный отказ. Kind - категория из таксономии движка
// (VALIDATION, INSUFFICIENT_ESSENCE, INSUFFICIENT_RESOURCE, INVALID_TARGET,
// STATE), Message - текст для игрока.
type ErrorView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StateView это снимок мира, видимый для конкретного игрока.
type StateView struct {
	Player PlayerView `json:"player"`

	// Entities существа в поле зрения игрока: радиус 8 по Чебышеву,
	// спрятанные за стенами не видны. Порядок - порядок появления в мире.
	Entities []EntityView `json:"entities"`

	// FloorHere предметы на клетке игрока - кандидаты на PICKUP.
	FloorHere []ItemView `json:"floorHere,omitempty"`
}

// PositionView координаты на карте.
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// VectorView четвёрка стихий: запас эссенции, состав предмета
// или подпись заклинания.
type VectorView struct {
	Fire  int `json:"fire"`
	Water int `json:"water"`
	Earth int `json:"earth"`
	Air   int `json:"air"`
}

// PlayerView это DTO для состояния игрока. В отличие от EntityView
// содержит всё, что игрок знает о себе: запас эссенции, опыт, статусы.
type PlayerView struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Pos  PositionView `json:"pos"`

	HP         int `json:"hp"`
	MaxHP      int `json:"maxHp"`
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"maxStamina"`

	// Attack и Defense эффективные значения с учётом активных статусов.
	Attack  int `json:"attack"`
	Defense int `json:"defense"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	// NextLevelXP порог опыта следующего уровня.
	NextLevelXP int `json:"nextLevelXp"`

	Essence    VectorView `json:"essence"`
	MaxEssence int        `json:"maxEssence"`

	Statuses []StatusView `json:"statuses,omitempty"`

	// Grimoire известные слова силы. Полные данные заклинаний
	// отдаёт GET .../spells.
	Grimoire []string `json:"grimoire"`
}

// StatusView активный эффект на существе.
type StatusView struct {
	Name           string `json:"name"`
	Remaining      int    `json:"remaining"`
	AttackDelta    int    `json:"attackDelta,omitempty"`
	DefenseDelta   int    `json:"defenseDelta,omitempty"`
	PeriodicDamage int    `json:"periodicDamage,omitempty"`
}

// EntityView это DTO для существа в поле зрения: монстра или
// призванного союзника.
type EntityView struct {
	ID        int          `json:"id"`
	Kind      string       `json:"kind"` // MONSTER, SUMMON
	Name      string       `json:"name"`
	Archetype string       `json:"archetype,omitempty"`
	Pos       PositionView `json:"pos"`
	HP        int          `json:"hp"`
	MaxHP     int          `json:"maxHp"`

	// Adjacent true, если существо на соседней клетке (дистанция
	// Чебышева <= 1), то есть допустимая цель для удара.
	Adjacent bool `json:"adjacent"`

	// Duration оставшиеся ходы жизни призванного союзника.
	// Ноль - живёт, пока не убьют.
	Duration int `json:"duration,omitempty"`
}

// ItemView это DTO для предмета в инвентаре или на полу.
type ItemView struct {
	// Index позиция в инвентаре; именно её принимают USE, DROP
	// и DISSOLVE. Для предметов на полу поле отсутствует.
	Index *int `json:"index,omitempty"`

	Name  string `json:"name"`
	Class string `json:"class"`
	Kind  string `json:"kind"` // OBJECT, SOLVENT

	// Для материальных объектов: состав, масса и категория USE.
	Category    string      `json:"category,omitempty"`
	Weight      int         `json:"weight,omitempty"`
	Composition *VectorView `json:"composition,omitempty"`

	// Для растворителей: остаток применений и профиль извлечения.
	Uses       int             `json:"uses,omitempty"`
	Extraction *ExtractionView `json:"extraction,omitempty"`
}

// ExtractionView профиль извлечения растворителя: доля эссенции
// каждой стихии, которую он вытягивает при растворении.
type ExtractionView struct {
	Fire  float64 `json:"fire"`
	Water float64 `json:"water"`
	Earth float64 `json:"earth"`
	Air   float64 `json:"air"`
}

// SpellView известное слово силы. Cost совпадает с элементной
// подписью слова: подпись и есть цена каста.
type SpellView struct {
	Word        string     `json:"word"`
	Spirit      string     `json:"spirit,omitempty"`
	Definition  string     `json:"definition,omitempty"`
	Cost        VectorView `json:"cost"`
	NeedsTarget bool       `json:"needsTarget"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// IsWall true, если тайл является непроходимым препятствием.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется
	// для "тумана войны": IsExplored без IsVisible рендерится тускло.
	IsExplored bool `json:"isExplored"`
}

// --- Ответы отдельных REST-запросов ---

// InventoryResponse ответ GET /api/session/{id}/inventory.
type InventoryResponse struct {
	Items      []ItemView `json:"items"`
	Essence    VectorView `json:"essence"`
	MaxEssence int        `json:"maxEssence"`
}

// SpellsResponse ответ GET /api/session/{id}/spells.
type SpellsResponse struct {
	Known []SpellView `json:"known"`
}

// MapResponse ответ GET /api/session/{id}/map: только исследованные
// тайлы, чтобы не выдавать клиенту план всего подземелья.
type MapResponse struct {
	Grid  GridMeta   `json:"grid"`
	Tiles []TileView `json:"tiles"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех команд от клиента:
// тело POST .../action и кадры WebSocket.
type ClientCommand struct {
	// Action название действия: MOVE, ATTACK, WAIT, PICKUP, CAST, USE,
	// DROP, DISSOLVE, TRANSFORM, PERMUTE, DISTILL, RESET.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура
	// зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CreateSessionRequest тело POST /api/session.
type CreateSessionRequest struct {
	// PlayerName имя персонажа; пустое заменяется именем по умолчанию.
	PlayerName string `json:"playerName,omitempty"`

	// Seed зерно генерации мира. Ноль - выбрать случайное.
	Seed int64 `json:"seed,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для действия MOVE.
// Шаг строго ортогонален: по одной из осей и ровно на одну клетку.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// TargetPayload используется для действия ATTACK.
// TargetID 0 означает "выбери первого соседнего монстра сам".
type TargetPayload struct {
	TargetID int `json:"targetId,omitempty"`
}

// ItemPayload используется для действий с предметами (USE, DROP).
type ItemPayload struct {
	Index int `json:"index"`
}

// CastPayload используется для действия CAST. TargetID обязателен
// только для заклинаний, которым нужна цель.
type CastPayload struct {
	Word     string `json:"word"`
	TargetID int    `json:"targetId,omitempty"`
}

// DissolvePayload используется для действия DISSOLVE: индекс
// растворяемого предмета и индекс растворителя в инвентаре.
type DissolvePayload struct {
	ItemIndex    int `json:"itemIndex"`
	SolventIndex int `json:"solventIndex"`
}

// TransformPayload используется для действия TRANSFORM: знаковый сдвиг
// подписи известного слова по каждой стихии.
type TransformPayload struct {
	Word   string `json:"word"`
	DFire  int    `json:"dFire"`
	DWater int    `json:"dWater"`
	DEarth int    `json:"dEarth"`
	DAir   int    `json:"dAir"`
}

// PermutePayload используется для действия PERMUTE: именованная
// перестановка компонент подписи (swap_fw, swap_ea, swap_fe, swap_wa,
// rotate_left, rotate_right, reverse).
type PermutePayload struct {
	Word        string `json:"word"`
	Permutation string `json:"permutation"`
}

// DistillPayload используется для действия DISTILL: целевая стихия
// и сколько эссенции пожертвовать из каждой из остальных.
type DistillPayload struct {
	Element string `json:"element"` // fire, water, earth, air
	Amount  int    `json:"amount"`
}

// ResetPayload используется для действия RESET. Нулевое зерно
// означает "выбери новое случайное".
type ResetPayload struct {
	Seed int64 `json:"seed,omitempty"`
}
