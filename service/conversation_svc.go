package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nicolasparada/go-errs"
	"golang.org/x/sync/errgroup"

	"github.com/dapamarket/dapa/types"
)

// conversationConcurrency bounds the per-conversation backfill/count
// fan-out so one list request cannot drain the store connection pool.
const conversationConcurrency = 8

// Conversations lists every conversation in which the user holds either
// role, newest activity first, each summary carrying the opponent's
// display name, reconciled last-message state and an unread count.
//
// Only the initial conversation fetch is fatal. Everything after it
// degrades per conversation: a broken ownership chain renders a sentinel
// name, a failed backfill leaves the cache fields null, a failed unread
// scan counts zero. Summaries keep the fetched order; a backfilled
// conversation is not promoted.
func (svc *Service) Conversations(ctx context.Context, in types.ListConversations) ([]types.ConversationSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	convs, err := svc.Store.ConversationsForUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch conversations: %w", err)
	}

	names := svc.resolveOpponentNames(ctx, convs, in.UserID)

	summaries := make([]types.ConversationSummary, len(convs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(conversationConcurrency)
	for i, conv := range convs {
		g.Go(func() error {
			conv = svc.ensureLastMessage(gctx, conv)
			summaries[i] = types.ConversationSummary{
				Conversation: conv,
				OpponentName: names[conv.ID],
				UnreadCount:  svc.countUnread(gctx, conv.ID, in.UserID),
			}
			return nil
		})
	}

	// Workers absorb their own store errors; Wait only orders completion.
	_ = g.Wait()

	return summaries, nil
}

// ensureLastMessage reconciles the conversation's denormalized
// last-message fields. Populated fields are trusted as-is and cost no
// query. Null fields are backfilled from message history and written back,
// which makes this read path a writer; rows created before the cache
// maintenance logic existed are the only ones that take this branch.
func (svc *Service) ensureLastMessage(ctx context.Context, conv types.Conversation) types.Conversation {
	if conv.LastMessageAt != nil {
		return conv
	}

	msg, err := svc.Store.LatestMessage(ctx, conv.ID)
	if errors.Is(err, errs.NotFound) {
		// No messages yet; both fields stay null.
		return conv
	}

	if err != nil {
		svc.Logger.Error("backfill last message", "conversation_id", conv.ID, "error", err)
		return conv
	}

	if err := svc.Store.SetConversationLastMessage(ctx, conv.ID, msg.Body, msg.CreatedAt); err != nil {
		// The summary still gets the fields we read; only the persisted
		// cache stays stale until the next backfill.
		svc.Logger.Error("persist backfilled last message", "conversation_id", conv.ID, "error", err)
	}

	conv.LastMessageText = new(msg.Body)
	conv.LastMessageAt = new(msg.CreatedAt)
	return conv
}

// countUnread counts messages not authored by userID and not yet read.
// A message is never unread relative to its own author, whatever its flag
// says. O(messages in conversation); fine at typical conversation sizes.
func (svc *Service) countUnread(ctx context.Context, conversationID, userID string) int {
	flags, err := svc.Store.MessageFlags(ctx, conversationID)
	if err != nil {
		svc.Logger.Error("count unread messages", "conversation_id", conversationID, "error", err)
		return 0
	}

	var n int
	for _, f := range flags {
		if f.AuthorID != userID && !f.Read {
			n++
		}
	}
	return n
}

func (svc *Service) MarkConversationRead(ctx context.Context, in types.MarkConversationRead) (types.MarkedRead, error) {
	var out types.MarkedRead

	if err := in.Validate(); err != nil {
		return out, err
	}

	count, err := svc.Store.MarkConversationRead(ctx, in.ConversationID)
	if err != nil {
		return out, fmt.Errorf("mark conversation read: %w", err)
	}

	out.Success = true
	out.Count = count
	return out, nil
}
