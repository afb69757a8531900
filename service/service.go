package service

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dapamarket/dapa/types"
)

const (
	handleCacheSize = 512
	handleCacheTTL  = time.Minute
)

// Store is the contract the service needs from the relational store.
// *postgres.Postgres satisfies it; tests substitute an in-memory fake.
type Store interface {
	User(ctx context.Context, userID string) (types.User, error)
	UserHandles(ctx context.Context, userIDs []string) (map[string]string, error)

	Products(ctx context.Context, in types.ListProducts) (types.Page[types.Product], error)
	Product(ctx context.Context, productID string) (types.Product, error)
	CreateProduct(ctx context.Context, in types.CreateProduct) (types.Product, error)
	ProductOwners(ctx context.Context, productIDs []string) (map[string]string, error)

	ConversationsForUser(ctx context.Context, userID string) ([]types.Conversation, error)
	SetConversationLastMessage(ctx context.Context, conversationID, text string, at time.Time) error

	Messages(ctx context.Context, conversationID string) ([]types.Message, error)
	LatestMessage(ctx context.Context, conversationID string) (types.Message, error)
	CreateMessage(ctx context.Context, in types.CreateMessage) (types.Message, error)
	MessageFlags(ctx context.Context, conversationID string) ([]types.MessageFlag, error)
	MarkConversationRead(ctx context.Context, conversationID string) (int64, error)
}

type Service struct {
	Store  Store
	Logger *slog.Logger

	handleCache *lru.LRU[string, string]
}

func New(store Store, logger *slog.Logger) *Service {
	return &Service{
		Store:       store,
		Logger:      logger,
		handleCache: lru.NewLRU[string, string](handleCacheSize, nil, handleCacheTTL),
	}
}
