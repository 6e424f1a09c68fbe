package session

import (
	"context"
	"fmt"
	"seriesArchitect/domain"
	"seriesArchitect/pkg/logger"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists rating sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *domain.RatingSession) error
	Get(ctx context.Context, sessionID string) (*domain.RatingSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{
		store: store,
	}
}

func (s *SessionService) Create(ctx context.Context) (*domain.RatingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	now := time.Now().UTC()
	session := &domain.RatingSession{
		SessionID: uuid.NewString(),
		Ratings:   []domain.Rating{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		logger.Error("failed to create session", err)
		return nil, err
	}

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*domain.RatingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// AddRating records one rating in the session, replacing any earlier rating
// of the same series so a user can change their mind.
func (s *SessionService) AddRating(ctx context.Context, sessionID string, rating domain.Rating) (*domain.RatingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if rating.Rating != domain.RatingLike && rating.Rating != domain.RatingDislike {
		return nil, fmt.Errorf("invalid rating value %d", rating.Rating)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range session.Ratings {
		if session.Ratings[i].TMDBID == rating.TMDBID {
			session.Ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		session.Ratings = append(session.Ratings, rating)
	}
	session.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, session); err != nil {
		logger.Error("failed to save session", err)
		return nil, err
	}

	return session, nil
}

// RemoveRating drops the rating for one series, if present.
func (s *SessionService) RemoveRating(ctx context.Context, sessionID string, tmdbID uint64) (*domain.RatingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := session.Ratings[:0]
	for _, r := range session.Ratings {
		if r.TMDBID != tmdbID {
			kept = append(kept, r)
		}
	}
	session.Ratings = kept
	session.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, session); err != nil {
		logger.Error("failed to save session", err)
		return nil, err
	}

	return session, nil
}

func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.Error("failed to delete session", err)
		return err
	}

	return nil
}
