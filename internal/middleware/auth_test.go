package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/session"

	"github.com/golang/mock/gomock"
)

func TestAuth(t *testing.T) {
	tests := map[string]func(t *testing.T){
		"valid session passes through with context": func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sm := session.NewMockSessionManagerRepo(ctrl)
			sess := &session.Session{ID: "session1", UserID: "user1"}
			sm.EXPECT().Check(gomock.Any()).Return(sess, nil).Times(1)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := session.SessionFromContext(r.Context())
				if !ok || got.UserID != "user1" {
					t.Errorf("expected session for user1 in context, got %v", got)
				}
			})

			req := httptest.NewRequest("GET", "/api/user/me", nil)
			w := httptest.NewRecorder()

			Auth(sm)(next).ServeHTTP(w, req)

			if !called {
				t.Error("expected next handler to be called")
			}
		},

		"no auth is 401": func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sm := session.NewMockSessionManagerRepo(ctrl)
			sm.EXPECT().Check(gomock.Any()).Return(nil, session.ErrNoAuth).Times(1)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not be called")
			})

			req := httptest.NewRequest("GET", "/api/user/me", nil)
			w := httptest.NewRecorder()

			Auth(sm)(next).ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected status code %d, got %d", http.StatusUnauthorized, resp.StatusCode)
			}
		},

		"database error is 500": func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sm := session.NewMockSessionManagerRepo(ctrl)
			sm.EXPECT().Check(gomock.Any()).Return(nil, session.ErrInternalDB).Times(1)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler must not be called")
			})

			req := httptest.NewRequest("GET", "/api/user/me", nil)
			w := httptest.NewRecorder()

			Auth(sm)(next).ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusInternalServerError {
				t.Errorf("expected status code %d, got %d", http.StatusInternalServerError, resp.StatusCode)
			}
		},
	}

	for name, test := range tests {
		t.Run(name, test)
	}
}
