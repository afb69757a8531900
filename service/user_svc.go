package service

import (
	"context"
	"net/url"

	"github.com/dapamarket/dapa/types"
)

const avatarPlaceholderBase = "https://api.dicebear.com/9.x/identicon/svg"

func (svc *Service) User(ctx context.Context, userID string) (types.User, error) {
	out, err := svc.Store.User(ctx, userID)
	if err != nil {
		return out, err
	}

	ensureAvatar(&out)

	return out, nil
}

// ensureAvatar fills a missing profile image with a deterministic
// placeholder keyed by the user's handle, so the same user always renders
// the same image.
func ensureAvatar(u *types.User) {
	if u.Avatar != nil {
		return
	}

	u.Avatar = new(avatarPlaceholderBase + "?seed=" + url.QueryEscape(u.Handle))
}
