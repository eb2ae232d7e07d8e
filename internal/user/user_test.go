package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"shop/internal/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newTestDBRepository создает мок базы данных и репозиторий для тестов
func newTestDBRepository(t *testing.T) (*UserDBRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Не удалось создать мок базу данных: %v", err)
	}

	logger := zap.NewNop().Sugar()

	return NewUserDBRepository(db, logger), mock
}

func TestUserDBRepository_Register(t *testing.T) {
	// Тестовые случаи
	tests := []struct {
		name          string
		email         string
		username      string
		password      string
		mockDBSetup   func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:     "Success",
			email:    "new@mail.com",
			username: "newbie",
			password: "secret123",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1`).
					WithArgs("new@mail.com").
					WillReturnError(sql.ErrNoRows)

				mock.ExpectQuery(`SELECT id FROM users WHERE username = \$1`).
					WithArgs("newbie").
					WillReturnError(sql.ErrNoRows)

				mock.ExpectExec(`INSERT INTO users \(id, username, email, password, balance\) VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
					WithArgs(sqlmock.AnyArg(), "newbie", "new@mail.com", sqlmock.AnyArg(), startBalance).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedError: nil,
		},
		{
			name:     "EmailTaken",
			email:    "old@mail.com",
			username: "newbie",
			password: "secret123",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1`).
					WithArgs("old@mail.com").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user1"))
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:     "UsernameTaken",
			email:    "new@mail.com",
			username: "oldtimer",
			password: "secret123",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1`).
					WithArgs("new@mail.com").
					WillReturnError(sql.ErrNoRows)

				mock.ExpectQuery(`SELECT id FROM users WHERE username = \$1`).
					WithArgs("oldtimer").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user2"))
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:     "DatabaseError",
			email:    "new@mail.com",
			username: "newbie",
			password: "secret123",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \$1`).
					WithArgs("new@mail.com").
					WillReturnError(errors.New("database error"))
			},
			expectedError: ErrInternalDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestDBRepository(t)
			tt.mockDBSetup(mock)

			u, err := repo.Register(context.Background(), tt.email, tt.username, tt.password)

			assert.Equal(t, tt.expectedError, err)
			if tt.expectedError == nil {
				assert.Equal(t, tt.username, u.Username)
				assert.Equal(t, tt.email, u.Email)
				assert.Equal(t, startBalance, u.Balance)
				// id и хэш должны были сгенерироваться
				assert.NotEmpty(t, u.UserID)
				assert.NotEmpty(t, u.passwordHash)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDBRepository_Login(t *testing.T) {
	// Генерируем реальный хэш пароля для теста
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to generate hashed password: %v", err)
	}

	tests := []struct {
		name          string
		email         string
		password      string
		mockDBSetup   func(sqlmock.Sqlmock)
		expectedUser  User
		expectedError error
	}{
		{
			name:     "Success",
			email:    "user@mail.com",
			password: "correct_password",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password, balance FROM users WHERE email = \$1`).
					WithArgs("user@mail.com").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "balance"}).
						AddRow("user1", "existing", "user@mail.com", hashedPassword, 700))
			},
			expectedUser: User{
				UserID:       "user1",
				Username:     "existing",
				Email:        "user@mail.com",
				passwordHash: string(hashedPassword),
				Balance:      700,
			},
			expectedError: nil,
		},
		{
			name:     "UnknownEmail",
			email:    "ghost@mail.com",
			password: "whatever",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password, balance FROM users WHERE email = \$1`).
					WithArgs("ghost@mail.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedUser:  User{},
			expectedError: ErrBadCredentials,
		},
		{
			name:     "WrongPassword",
			email:    "user@mail.com",
			password: "wrong_password",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password, balance FROM users WHERE email = \$1`).
					WithArgs("user@mail.com").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "balance"}).
						AddRow("user1", "existing", "user@mail.com", hashedPassword, 700))
			},
			expectedUser:  User{},
			expectedError: ErrBadCredentials,
		},
		{
			name:     "DatabaseError",
			email:    "user@mail.com",
			password: "correct_password",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, password, balance FROM users WHERE email = \$1`).
					WithArgs("user@mail.com").
					WillReturnError(errors.New("database error"))
			},
			expectedUser:  User{},
			expectedError: ErrInternalDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestDBRepository(t)
			tt.mockDBSetup(mock)

			u, err := repo.Login(context.Background(), tt.email, tt.password)

			assert.Equal(t, tt.expectedError, err)
			assert.Equal(t, tt.expectedUser, u)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDBRepository_Info(t *testing.T) {
	tests := []struct {
		name            string
		userID          string
		mockDBSetup     func(sqlmock.Sqlmock)
		expectedProfile types.Profile
		expectedError   error
	}{
		{
			name:   "Success",
			userID: "user1",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, balance FROM users WHERE id = \$1`).
					WithArgs("user1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "balance"}).
						AddRow("user1", "existing", "user@mail.com", 700))
			},
			expectedProfile: types.Profile{
				UserID:   "user1",
				Username: "existing",
				Email:    "user@mail.com",
				Balance:  700,
			},
			expectedError: nil,
		},
		{
			name:   "UserNotFound",
			userID: "ghost",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, email, balance FROM users WHERE id = \$1`).
					WithArgs("ghost").
					WillReturnError(sql.ErrNoRows)
			},
			expectedProfile: types.Profile{},
			expectedError:   ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestDBRepository(t)
			tt.mockDBSetup(mock)

			p, err := repo.Info(context.Background(), tt.userID)

			assert.Equal(t, tt.expectedError, err)
			assert.Equal(t, tt.expectedProfile, p)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserDBRepository_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		userID        string
		newUsername   string
		newPassword   string
		mockDBSetup   func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:        "ChangeBoth",
			userID:      "user1",
			newUsername: "renamed",
			newPassword: "newsecret",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()

				mock.ExpectQuery(`SELECT id FROM users WHERE username = \$1 AND id <> \$2`).
					WithArgs("renamed", "user1").
					WillReturnError(sql.ErrNoRows)

				mock.ExpectExec(`UPDATE users SET username = \$1 WHERE id = \$2`).
					WithArgs("renamed", "user1").
					WillReturnResult(sqlmock.NewResult(0, 1))

				mock.ExpectExec(`UPDATE users SET password = \$1 WHERE id = \$2`).
					WithArgs(sqlmock.AnyArg(), "user1").
					WillReturnResult(sqlmock.NewResult(0, 1))

				mock.ExpectCommit()
			},
			expectedError: nil,
		},
		{
			name:        "ChangePasswordOnly",
			userID:      "user1",
			newPassword: "newsecret",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()

				mock.ExpectExec(`UPDATE users SET password = \$1 WHERE id = \$2`).
					WithArgs(sqlmock.AnyArg(), "user1").
					WillReturnResult(sqlmock.NewResult(0, 1))

				mock.ExpectCommit()
			},
			expectedError: nil,
		},
		{
			name:        "UsernameTaken",
			userID:      "user1",
			newUsername: "occupied",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()

				mock.ExpectQuery(`SELECT id FROM users WHERE username = \$1 AND id <> \$2`).
					WithArgs("occupied", "user1").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user2"))

				mock.ExpectRollback()
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:        "DatabaseError",
			userID:      "user1",
			newUsername: "renamed",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()

				mock.ExpectQuery(`SELECT id FROM users WHERE username = \$1 AND id <> \$2`).
					WithArgs("renamed", "user1").
					WillReturnError(errors.New("database error"))

				mock.ExpectRollback()
			},
			expectedError: ErrInternalDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestDBRepository(t)
			tt.mockDBSetup(mock)

			err := repo.UpdateProfile(context.Background(), tt.userID, tt.newUsername, tt.newPassword)

			assert.Equal(t, tt.expectedError, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
