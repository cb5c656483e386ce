package storage

import (
	"context"
	"sync"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий, по одной на чат
type MemorySessionRepository struct {
	mu              sync.RWMutex
	sessions        map[int64]*entity.Session
	defaultLanguage entity.Language
}

// NewMemorySessionRepository создаёт новое in-memory хранилище.
// Новые сессии получают язык defaultLanguage.
func NewMemorySessionRepository(defaultLanguage entity.Language) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions:        make(map[int64]*entity.Session),
		defaultLanguage: defaultLanguage,
	}
}

// Get возвращает сессию чата, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, chatID int64) (*entity.Session, error) {
	r.mu.RLock()
	session, exists := r.sessions[chatID]
	r.mu.RUnlock()

	if exists {
		return session, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пока ждали блокировку, сессию мог создать другой запрос
	if session, exists := r.sessions[chatID]; exists {
		return session, nil
	}

	session = entity.NewSession(chatID)
	if r.defaultLanguage != "" {
		session.SetLanguage(r.defaultLanguage)
	}
	r.sessions[chatID] = session

	return session, nil
}

// Save сохраняет сессию
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	r.sessions[session.ChatID] = session
	r.mu.Unlock()

	return nil
}

// Delete удаляет сессию чата
func (r *MemorySessionRepository) Delete(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	delete(r.sessions, chatID)
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
