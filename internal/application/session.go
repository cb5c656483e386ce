package app

import (
	"context"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/domain/port"
)

type SessionService struct {
	repo port.SessionRepository
}

func NewSessionService(repo port.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

func (s *SessionService) Get(ctx context.Context, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, chatID)
}

func (s *SessionService) Save(ctx context.Context, session *entity.Session) error {
	return s.repo.Save(ctx, session)
}

func (s *SessionService) SetLanguage(ctx context.Context, chatID int64, code string) (*entity.Session, error) {
	lang, err := entity.ParseLanguage(code)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	session.SetLanguage(lang)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Reset забывает сессию чата целиком, вместе с выбранным языком.
func (s *SessionService) Reset(ctx context.Context, chatID int64) error {
	return s.repo.Delete(ctx, chatID)
}
