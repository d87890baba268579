package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID аутентифицированного пользователя, выставляется шлюзом
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "требуется заголовок X-User-ID с ID пользователя"

type userIDKey struct{}

// Auth достаёт ID пользователя из заголовка и кладёт его в контекст.
// Аутентификацию выполняет шлюз, здесь только разбор идентификатора.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
