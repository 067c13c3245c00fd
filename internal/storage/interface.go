package storage

import (
	"context"

	"github.com/mcoot/blockgame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListSessionIDs(ctx context.Context) ([]model.SessionID, error)

	// Best score operations, keyed by variant
	GetBestScore(ctx context.Context, variant model.Variant) (int, error)
	// SaveBestScore stores score if it beats the stored value and returns
	// the best score after the call
	SaveBestScore(ctx context.Context, variant model.Variant, score int) (int, error)
}
