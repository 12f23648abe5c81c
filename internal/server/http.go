// Package server поднимает транспорт поверх игрового сервиса: REST для
// снимков и действий, WebSocket для потоковой игры, служебные эндпоинты.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	_ "net/http/pprof" // Profiling
	"sort"

	"github.com/gorilla/mux"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/internal/engine"
	"github.com/tripstych/elemental/internal/version"
	"github.com/tripstych/elemental/pkg/api"
	"github.com/tripstych/elemental/pkg/logger"
)

type Server struct {
	Engine *engine.GameService
	Addr   string
}

func New(engine *engine.GameService, addr string) *Server {
	return &Server{
		Engine: engine,
		Addr:   addr,
	}
}

// Run запускает HTTP сервер.
func (s *Server) Run() error {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	// Жизненный цикл сессии.
	r.HandleFunc("/api/session", s.handleCreateSession).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/session/{id}/action", s.handleAction).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/session/{id}/reset", s.handleReset).
		Methods(http.MethodPost, http.MethodOptions)

	// Снимки состояния.
	r.HandleFunc("/api/session/{id}/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/api/session/{id}/inventory", s.handleInventory).Methods(http.MethodGet)
	r.HandleFunc("/api/session/{id}/spells", s.handleSpells).Methods(http.MethodGet)
	r.HandleFunc("/api/session/{id}/map", s.handleMap).Methods(http.MethodGet)

	// Потоковый режим: те же команды и ответы, что и REST.
	r.HandleFunc("/ws/{id}", s.handleWS).Methods(http.MethodGet)

	// Служебные роуты.
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	r.HandleFunc("/debug/sessions", s.handleDebugSessions).Methods(http.MethodGet)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	logger.Log.Infof("🧪 Elemental server running on %s", s.Addr)
	return http.ListenAndServe(s.Addr, r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- СЕССИИ ---

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSessionRequest
	// Пустое тело допустимо: имя и зерно по умолчанию.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, "", domain.Validation("Не удалось разобрать тело запроса: %v.", err))
		return
	}

	session, err := s.Engine.CreateSession(req.PlayerName, req.Seed)
	if err != nil {
		s.writeError(w, "", err)
		return
	}

	writeJSON(w, http.StatusCreated, session.Snapshot())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var cmd api.ClientCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		s.writeError(w, session.ID, domain.Validation("Не удалось разобрать команду: %v.", err))
		return
	}

	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		s.writeError(w, session.ID, domain.Validation("Неизвестное действие %q.", cmd.Action))
		return
	}

	resp, err := session.Perform(action, cmd.Payload)
	if err != nil {
		s.writeError(w, session.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleReset — отдельный роут для перезапуска партии; эквивалентен
// действию RESET через .../action, но удобнее для клиентов.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, session.ID, domain.Validation("Не удалось прочитать тело запроса: %v.", err))
		return
	}

	resp, err := session.Perform(domain.ActionReset, payload)
	if err != nil {
		s.writeError(w, session.ID, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- СНИМКИ ---

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.lookupSession(w, r); ok {
		writeJSON(w, http.StatusOK, session.Snapshot())
	}
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.lookupSession(w, r); ok {
		writeJSON(w, http.StatusOK, session.InventorySnapshot())
	}
}

func (s *Server) handleSpells(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.lookupSession(w, r); ok {
		writeJSON(w, http.StatusOK, session.SpellsSnapshot())
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.lookupSession(w, r); ok {
		writeJSON(w, http.StatusOK, session.MapSnapshot())
	}
}

// --- WEBSOCKET ---

// handleWS обрабатывает подключение по WebSocket. Сессию ищем до
// апгрейда: после него HTTP-ответы уже не отправить.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(session, conn)
	go client.writePump()
	go client.readPump()
}

// --- СЛУЖЕБНЫЕ ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Engine.Count(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}

// handleDebugSessions отдаёт снимки всех живых сессий, включая скрытое
// от игрока состояние. Только для отладки.
func (s *Server) handleDebugSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.Engine.SessionIDs()
	sort.Strings(ids)

	snapshots := make([]*api.ServerResponse, 0, len(ids))
	for _, id := range ids {
		if session, ok := s.Engine.Session(id); ok {
			snapshots = append(snapshots, session.Snapshot())
		}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// --- ХЕЛПЕРЫ ---

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*engine.Session, bool) {
	id := mux.Vars(r)["id"]
	session, ok := s.Engine.Session(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, &api.ServerResponse{
			Type:      api.ResponseError,
			SessionID: id,
			Error:     &api.ErrorView{Kind: domain.ErrValidation.String(), Message: "Сессия не найдена."},
		})
		return nil, false
	}
	return session, true
}

// writeError конвертирует отказ в HTTP-ответ. Игровой отказ — нормальный
// исход: сессия не изменилась, клиент получает класс и нарратив.
func (s *Server) writeError(w http.ResponseWriter, sessionID string, err error) {
	writeJSON(w, statusFor(err), errorResponse(sessionID, err))
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrValidation, domain.ErrInvalidTarget:
		return http.StatusBadRequest
	case domain.ErrInsufficientEssence, domain.ErrInsufficientResource, domain.ErrState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse собирает ERROR-конверт. Не-игровые ошибки наружу не
// выдаются: в лог уходит причина, клиенту — общий текст.
func errorResponse(sessionID string, err error) *api.ServerResponse {
	kind := domain.KindOf(err)
	msg := err.Error()
	if kind == 0 {
		logger.Log.WithError(err).Error("Unhandled engine error")
		msg = "Внутренняя ошибка движка."
	}
	return &api.ServerResponse{
		Type:      api.ResponseError,
		SessionID: sessionID,
		Error:     &api.ErrorView{Kind: kind.String(), Message: msg},
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}
