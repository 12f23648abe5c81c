// Package storage пишет и читает журналы повторов партий.
//
// Движок детерминирован: зерно плюс последовательность действий полностью
// определяют партию, поэтому журнал - это компактный бинарный файл,
// а не дамп состояния.
package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/tripstych/elemental/internal/domain"
	"github.com/tripstych/elemental/pkg/logger"
)

const (
	MagicHeader string = `ELRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader — это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк,
// только массивы и числа. Идентификатор сессии пишется сразу за заголовком.
type ReplayFileHeader struct {
	Magic        [4]byte // 4 байта
	Version      uint32  // 4 байта
	Seed         int64   // 8 байт
	Timestamp    int64   // 8 байт
	ActionCount  int32   // 4 байта
	SessionIDLen uint8   // 1 байт
}

// ActionHeader — заголовок каждой записи действия.
type ActionHeader struct {
	Turn       int32  // 4
	ActionType uint8  // 1
	PayloadLen uint16 // 2
}

// ReplayService — файловое хранилище повторов. Реализует engine.Recorder.
type ReplayService struct {
	SaveDir string
}

// NewReplayService создаёт каталог повторов, если его ещё нет.
func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет журнал завершённой партии в отдельный файл.
func (s *ReplayService) Save(journal *domain.ReplayLog) error {
	filename := fmt.Sprintf("replay_%s_%d.elrp", journal.SessionID, journal.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeBinary(f, journal); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "replay_storage",
		"session_id": journal.SessionID,
		"actions":    len(journal.Actions),
		"path":       path,
	}).Info("Replay saved.")
	return nil
}

func writeBinary(w io.Writer, journal *domain.ReplayLog) error {
	idBytes := []byte(journal.SessionID)
	if len(idBytes) > 255 {
		return fmt.Errorf("session id too long: %d", len(idBytes))
	}

	// 1. Глобальный заголовок + идентификатор сессии.
	header := ReplayFileHeader{
		Version:      Version1,
		Seed:         journal.Seed,
		Timestamp:    journal.Timestamp,
		ActionCount:  int32(len(journal.Actions)),
		SessionIDLen: uint8(len(idBytes)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(idBytes); err != nil {
		return err
	}

	// 2. Действия.
	for _, act := range journal.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Turn:       int32(act.Turn),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
