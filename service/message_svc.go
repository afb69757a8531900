package service

import (
	"context"
	"fmt"

	"github.com/dapamarket/dapa/types"
)

func (svc *Service) Messages(ctx context.Context, in types.ListMessages) ([]types.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return svc.Store.Messages(ctx, in.ConversationID)
}

// CreateMessage stores the message and then records it as the
// conversation's last message. The record step is the sole writer of the
// conversation's cache fields; firing it synchronously after every insert
// is what keeps the backfill branch of ensureLastMessage a legacy-data
// path. Two rapid sends may race here and the later write wins.
func (svc *Service) CreateMessage(ctx context.Context, in types.CreateMessage) (types.Message, error) {
	var out types.Message

	if err := in.Validate(); err != nil {
		return out, err
	}

	msg, err := svc.Store.CreateMessage(ctx, in)
	if err != nil {
		return out, fmt.Errorf("create message: %w", err)
	}

	svc.recordNewMessage(ctx, msg)

	return msg, nil
}

// recordNewMessage unconditionally overwrites the conversation's
// last-message cache fields with the freshly stored message. The message
// itself is already durable, so a failed cache write is logged and the
// send still succeeds; the stale cache self-heals on the next send.
func (svc *Service) recordNewMessage(ctx context.Context, msg types.Message) {
	err := svc.Store.SetConversationLastMessage(ctx, msg.ConversationID, msg.Body, msg.CreatedAt)
	if err != nil {
		svc.Logger.Error("record new message", "conversation_id", msg.ConversationID, "error", err)
	}
}
