package user

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Стартовый баланс, чтобы новому пользователю было на что покупать
const startBalance = 1000

var (
	ErrInternalDB     = errors.New("database internal error")
	ErrInternalGo     = errors.New("go internal error")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrUserNotFound   = errors.New("user not found")
)

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

/*
Регистрация нового пользователя:
  - занят ли email
  - занят ли username
  - хэшируем пароль и создаем запись со стартовым балансом

Длину username/password проверяет http-слой, тут только уникальность.
*/
func (ur *UserDBRepository) Register(ctx context.Context, email, username, password string) (User, error) {
	taken, err := ur.exists(ctx, "email", email)
	if err != nil {
		return User{}, err
	}
	if taken {
		ur.Logger.Errorf("%v. More details: email - %s -", ErrEmailTaken, email)
		return User{}, ErrEmailTaken
	}

	taken, err = ur.exists(ctx, "username", username)
	if err != nil {
		return User{}, err
	}
	if taken {
		ur.Logger.Errorf("%v. More details: username - %s -", ErrUsernameTaken, username)
		return User{}, ErrUsernameTaken
	}

	// кодируем пароль
	hp, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Errorf("%v. More details: %v", ErrInternalGo, err)
		return User{}, ErrInternalGo
	}

	q := `
	INSERT INTO users (id, username, email, password, balance)
	VALUES ($1, $2, $3, $4, $5)
	`
	newID := uuid.New().String()
	_, err = ur.DB.ExecContext(ctx, q, newID, username, email, hp, startBalance)
	if err != nil {
		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return User{}, ErrInternalDB
	}

	ur.Logger.Infof("new user - %s - created", username)
	return User{
		UserID:       newID,
		Username:     username,
		Email:        email,
		passwordHash: string(hp),
		Balance:      startBalance,
	}, nil
}

// Проверка занятости email/username. Колонка приходит только из
// нашего кода, от клиента сюда строки не попадают.
func (ur *UserDBRepository) exists(ctx context.Context, column, value string) (bool, error) {
	q := `SELECT id FROM users WHERE ` + column + ` = $1`

	var id string
	err := ur.DB.QueryRowContext(ctx, q, value).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return false, ErrInternalDB
	}

	return true, nil
}

// Вход по email и паролю. Чтобы не подсказывать перебором, какой
// email зарегистрирован, "нет такого" и "пароль не тот" - одна ошибка.
func (ur *UserDBRepository) Login(ctx context.Context, email, password string) (User, error) {
	var u User

	q := `
	SELECT id, username, email, password, balance
	FROM users
	WHERE email = $1
	`
	err := ur.DB.QueryRowContext(ctx, q, email).Scan(
		&u.UserID, &u.Username, &u.Email, &u.passwordHash, &u.Balance,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ur.Logger.Errorf("%v. More details: unknown email - %s -", ErrBadCredentials, email)
			return User{}, ErrBadCredentials
		}

		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return User{}, ErrInternalDB
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		ur.Logger.Errorf("%v. More details: user - %s - enter invalid password",
			ErrBadCredentials, email,
		)
		return User{}, ErrBadCredentials
	}

	ur.Logger.Infof("user - %s - logged in", u.Username)
	return u, nil
}

// Профиль для личного кабинета.
func (ur *UserDBRepository) Info(ctx context.Context, userID string) (types.Profile, error) {
	var p types.Profile

	q := `
	SELECT id, username, email, balance
	FROM users
	WHERE id = $1
	`
	err := ur.DB.QueryRowContext(ctx, q, userID).Scan(&p.UserID, &p.Username, &p.Email, &p.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ur.Logger.Errorf("%v. More details: %v", ErrUserNotFound, err)
			return types.Profile{}, ErrUserNotFound
		}

		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return types.Profile{}, ErrInternalDB
	}

	return p, nil
}

/*
Смена username и/или пароля. Пустое поле = не меняем. Идет в своей
транзакции: проверка уникальности username и оба апдейта должны
примениться вместе или никак.
*/
func (ur *UserDBRepository) UpdateProfile(ctx context.Context, userID, newUsername, newPassword string) error {
	tx, err := ur.DB.BeginTx(ctx, nil)
	if err != nil {
		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}
	defer tx.Rollback()

	if newUsername != "" {
		if err = changeUsername(tx, userID, newUsername, ur.Logger); err != nil {
			return err
		}
	}

	if newPassword != "" {
		if err = changePassword(tx, userID, newPassword, ur.Logger); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		ur.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	ur.Logger.Infof("profile updated for userID - %s -", userID)
	return nil
}

func changeUsername(tx *sql.Tx, userID, newUsername string, l *zap.SugaredLogger) error {
	// имя не должно быть занято кем-то другим
	q := `
	SELECT id
	FROM users
	WHERE username = $1 AND id <> $2
	`
	var otherID string
	err := tx.QueryRow(q, newUsername, userID).Scan(&otherID)
	if err == nil {
		l.Errorf("%v. More details: username - %s -", ErrUsernameTaken, newUsername)
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	q = `
	UPDATE users
	SET username = $1
	WHERE id = $2
	`
	if _, err = tx.Exec(q, newUsername, userID); err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

func changePassword(tx *sql.Tx, userID, newPassword string, l *zap.SugaredLogger) error {
	hp, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalGo, err)
		return ErrInternalGo
	}

	q := `
	UPDATE users
	SET password = $1
	WHERE id = $2
	`
	if _, err = tx.Exec(q, hp, userID); err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}
