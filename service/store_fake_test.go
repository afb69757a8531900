package service

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/nicolasparada/go-errs"

	"github.com/dapamarket/dapa/id"
	"github.com/dapamarket/dapa/types"
)

// fakeStore is an in-memory Store with call counters, so tests can assert
// not just what the service returns but which queries it issued.
type fakeStore struct {
	mu sync.Mutex

	users         map[string]types.User
	products      map[string]types.Product
	conversations map[string]types.Conversation
	messages      map[string][]types.Message

	userHandlesCalls    int
	productOwnersCalls  int
	latestMessageCalls  int
	setLastMessageCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         map[string]types.User{},
		products:      map[string]types.Product{},
		conversations: map[string]types.Conversation{},
		messages:      map[string][]types.Message{},
	}
}

func (s *fakeStore) addUser(userID, handle string) {
	s.users[userID] = types.User{ID: userID, Handle: handle}
}

func (s *fakeStore) addProduct(productID, ownerID string) {
	s.products[productID] = types.Product{ID: productID, Name: productID, OwnerID: ownerID, Active: true}
}

func (s *fakeStore) addConversation(conv types.Conversation) {
	s.conversations[conv.ID] = conv
}

func (s *fakeStore) addMessage(conversationID, authorID, body string, at time.Time, read bool) types.Message {
	msg := types.Message{
		ID:             id.Generate(),
		ConversationID: conversationID,
		AuthorID:       authorID,
		Body:           body,
		Read:           read,
		CreatedAt:      at,
	}
	s.messages[conversationID] = append(s.messages[conversationID], msg)
	return msg
}

func (s *fakeStore) User(_ context.Context, userID string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return u, errs.NotFoundError("user not found")
	}
	return u, nil
}

func (s *fakeStore) UserHandles(_ context.Context, userIDs []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userHandlesCalls++
	out := map[string]string{}
	for _, userID := range userIDs {
		if u, ok := s.users[userID]; ok {
			out[userID] = u.Handle
		}
	}
	return out, nil
}

func (s *fakeStore) Products(_ context.Context, _ types.ListProducts) (types.Page[types.Product], error) {
	return types.Page[types.Product]{}, nil
}

func (s *fakeStore) Product(_ context.Context, productID string) (types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return p, errs.NotFoundError("product not found")
	}
	return p, nil
}

func (s *fakeStore) CreateProduct(_ context.Context, in types.CreateProduct) (types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := types.Product{
		ID:        id.Generate(),
		Name:      in.Name,
		Price:     in.Price,
		OwnerID:   in.OwnerID,
		Active:    true,
		CreatedAt: time.Now(),
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *fakeStore) ProductOwners(_ context.Context, productIDs []string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.productOwnersCalls++
	out := map[string]string{}
	for _, productID := range productIDs {
		if p, ok := s.products[productID]; ok {
			out[productID] = p.OwnerID
		}
	}
	return out, nil
}

func (s *fakeStore) ConversationsForUser(_ context.Context, userID string) ([]types.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.Conversation
	for _, conv := range s.conversations {
		isSeller := false
		if p, ok := s.products[conv.ProductID]; ok {
			isSeller = p.OwnerID == userID
		}
		if conv.CounterpartID == userID || isSeller {
			out = append(out, conv)
		}
	}

	// Newest activity first, nulls last, ties on ascending ID: same order
	// the store's index walk produces.
	slices.SortFunc(out, func(a, b types.Conversation) int {
		switch {
		case a.LastMessageAt == nil && b.LastMessageAt == nil:
			return cmp.Compare(a.ID, b.ID)
		case a.LastMessageAt == nil:
			return 1
		case b.LastMessageAt == nil:
			return -1
		}
		if !a.LastMessageAt.Equal(*b.LastMessageAt) {
			return b.LastMessageAt.Compare(*a.LastMessageAt)
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return out, nil
}

func (s *fakeStore) SetConversationLastMessage(_ context.Context, conversationID, text string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLastMessageCalls++
	conv, ok := s.conversations[conversationID]
	if !ok {
		return errs.NotFoundError("conversation not found")
	}
	conv.LastMessageText = &text
	conv.LastMessageAt = &at
	s.conversations[conversationID] = conv
	return nil
}

func (s *fakeStore) Messages(_ context.Context, conversationID string) ([]types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := slices.Clone(s.messages[conversationID])
	slices.SortFunc(out, func(a, b types.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *fakeStore) LatestMessage(_ context.Context, conversationID string) (types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latestMessageCalls++
	msgs := s.messages[conversationID]
	if len(msgs) == 0 {
		return types.Message{}, errs.NotFoundError("message not found")
	}

	latest := msgs[0]
	for _, msg := range msgs[1:] {
		if msg.CreatedAt.After(latest.CreatedAt) {
			latest = msg
		}
	}
	return latest, nil
}

func (s *fakeStore) CreateMessage(_ context.Context, in types.CreateMessage) (types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[in.ConversationID]; !ok {
		return types.Message{}, errs.NotFoundError("conversation not found")
	}

	msg := types.Message{
		ID:             id.Generate(),
		ConversationID: in.ConversationID,
		AuthorID:       in.AuthorID,
		Body:           in.Body,
		CreatedAt:      time.Now(),
	}
	s.messages[in.ConversationID] = append(s.messages[in.ConversationID], msg)
	return msg, nil
}

func (s *fakeStore) MessageFlags(_ context.Context, conversationID string) ([]types.MessageFlag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.MessageFlag
	for _, msg := range s.messages[conversationID] {
		out = append(out, types.MessageFlag{AuthorID: msg.AuthorID, Read: msg.Read})
	}
	return out, nil
}

func (s *fakeStore) MarkConversationRead(_ context.Context, conversationID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	msgs := s.messages[conversationID]
	for i := range msgs {
		if !msgs[i].Read {
			msgs[i].Read = true
			count++
		}
	}
	return count, nil
}

var errStoreDown = errors.New("store unavailable")

// failingStore wraps fakeStore so tests can make individual lookups fail
// and assert how far the damage spreads.
type failingStore struct {
	*fakeStore

	failProductOwners  bool
	failUserHandles    bool
	failLatestMessage  bool
	failSetLastMessage bool
}

func (s *failingStore) ProductOwners(ctx context.Context, productIDs []string) (map[string]string, error) {
	if s.failProductOwners {
		return nil, errStoreDown
	}
	return s.fakeStore.ProductOwners(ctx, productIDs)
}

func (s *failingStore) UserHandles(ctx context.Context, userIDs []string) (map[string]string, error) {
	if s.failUserHandles {
		return nil, errStoreDown
	}
	return s.fakeStore.UserHandles(ctx, userIDs)
}

func (s *failingStore) LatestMessage(ctx context.Context, conversationID string) (types.Message, error) {
	if s.failLatestMessage {
		return types.Message{}, errStoreDown
	}
	return s.fakeStore.LatestMessage(ctx, conversationID)
}

func (s *failingStore) SetConversationLastMessage(ctx context.Context, conversationID, text string, at time.Time) error {
	if s.failSetLastMessage {
		return errStoreDown
	}
	return s.fakeStore.SetConversationLastMessage(ctx, conversationID, text, at)
}
