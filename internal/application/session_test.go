package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"scan-ocr/internal/domain/entity"
	"scan-ocr/internal/infrastructure/storage"
)

func TestSessionService_SetLanguage(t *testing.T) {
	repo := storage.NewMemorySessionRepository(entity.DefaultLanguage)
	svc := NewSessionService(repo)
	ctx := context.Background()

	session, err := svc.SetLanguage(ctx, 1, "eng")
	require.NoError(t, err)
	require.Equal(t, entity.LanguageEnglish, session.Language)

	_, err = svc.SetLanguage(ctx, 1, "fra")
	require.ErrorIs(t, err, entity.ErrUnsupportedLanguage)

	session, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.LanguageEnglish, session.Language)
}

func TestSessionService_Reset(t *testing.T) {
	repo := storage.NewMemorySessionRepository(entity.LanguageRussian)
	svc := NewSessionService(repo)
	ctx := context.Background()

	session, err := svc.SetLanguage(ctx, 2, "eng")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, 2))

	fresh, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	require.NotEqual(t, session.ID, fresh.ID)
	require.Equal(t, entity.LanguageRussian, fresh.Language)
}
