package service

import (
	"context"

	"github.com/dapamarket/dapa/types"
)

// Sentinel names rendered when the ownership chain behind a conversation
// cannot be resolved. A broken chain degrades that one summary; it never
// fails the whole list.
const (
	nameListingUnavailable = "listing unavailable"
	nameUnavailable        = "name unavailable"
)

// resolveOpponentNames maps each conversation to the display handle of the
// participant facing userID.
//
// Conversations split in two groups. Where userID is the counterpart, the
// opponent is the seller, reached through the listing: one batched lookup
// for product → owner, then one for owner → handle. Where userID is the
// seller, the opponent's user ID is already on the row. Both groups share
// the single handle lookup, so the whole list costs at most two queries.
func (svc *Service) resolveOpponentNames(ctx context.Context, convs []types.Conversation, userID string) map[string]string {
	names := make(map[string]string, len(convs))

	// product ID → conversations whose opponent is that product's seller
	sellerSide := map[string][]string{}
	// conversation ID → opponent user ID, once known
	opponents := map[string]string{}

	for _, conv := range convs {
		if conv.CounterpartID == userID {
			sellerSide[conv.ProductID] = append(sellerSide[conv.ProductID], conv.ID)
		} else {
			opponents[conv.ID] = conv.CounterpartID
		}
	}

	if len(sellerSide) != 0 {
		productIDs := make([]string, 0, len(sellerSide))
		for productID := range sellerSide {
			productIDs = append(productIDs, productID)
		}

		owners, err := svc.Store.ProductOwners(ctx, productIDs)
		if err != nil {
			svc.Logger.Error("resolve product owners", "error", err)
			owners = map[string]string{}
		}

		for productID, convIDs := range sellerSide {
			ownerID, ok := owners[productID]
			for _, convID := range convIDs {
				if !ok {
					names[convID] = nameListingUnavailable
					continue
				}
				opponents[convID] = ownerID
			}
		}
	}

	svc.attachHandles(ctx, opponents, names)

	return names
}

func (svc *Service) attachHandles(ctx context.Context, opponents map[string]string, names map[string]string) {
	handles := map[string]string{}
	var missing []string

	for _, opponentID := range opponents {
		if _, seen := handles[opponentID]; seen {
			continue
		}
		if handle, ok := svc.handleCache.Get(opponentID); ok {
			handles[opponentID] = handle
			continue
		}
		missing = append(missing, opponentID)
		handles[opponentID] = ""
	}

	if len(missing) != 0 {
		fetched, err := svc.Store.UserHandles(ctx, missing)
		if err != nil {
			svc.Logger.Error("resolve user handles", "error", err)
			fetched = map[string]string{}
		}

		for _, opponentID := range missing {
			handle, ok := fetched[opponentID]
			if !ok {
				delete(handles, opponentID)
				continue
			}
			if handle == "" {
				// Row exists but carries no handle: a data-integrity
				// condition worth a diagnostic, not a request failure.
				svc.Logger.Warn("user row has empty handle", "user_id", opponentID)
				delete(handles, opponentID)
				continue
			}
			handles[opponentID] = handle
			svc.handleCache.Add(opponentID, handle)
		}
	}

	for convID, opponentID := range opponents {
		handle, ok := handles[opponentID]
		if !ok || handle == "" {
			names[convID] = nameUnavailable
			continue
		}
		names[convID] = handle
	}
}
