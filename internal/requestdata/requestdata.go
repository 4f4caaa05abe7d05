package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/types"
)

type contextKey struct{}

var requestDataKey contextKey

// RequestData carries the authenticated principal for the current call.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Role        types.UserRole
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// CurrentUserID returns the acting user's id, or uuid.Nil when the call is
// unauthenticated.
func CurrentUserID(ctx context.Context) uuid.UUID {
	rd := GetRequestData(ctx)
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}
