package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop/internal/session"
)

// Auth не пускает дальше запросы без живой сессии. Интерфейс тут нужен,
// чтобы в тестах хендлеров подсовывать мок вместо настоящего менеджера.
func Auth(sm session.SessionManagerRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Проверка сессии пользователя
			sess, err := sm.Check(r)
			if err != nil {
				// Упавшая база - не повод отвечать "не авторизован"
				status := http.StatusUnauthorized
				if !errors.Is(err, session.ErrNoAuth) {
					status = http.StatusInternalServerError
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}

			// Добавляем сессию в контекст и передаем дальше
			ctx := session.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
