package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Service struct {
	DB       *pgxpool.Pool
	Secret   string
	TokenTTL time.Duration
}

func NewService(db *pgxpool.Pool, secret string) *Service {
	return &Service{DB: db, Secret: secret, TokenTTL: 12 * time.Hour}
}

// Login checks the credentials against the users table and mints a token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, UserContext, error) {
	var (
		user         UserContext
		passwordHash string
		employeeID   *int64
		fullName     *string
		active       bool
	)
	err := s.DB.QueryRow(ctx, `
    SELECT u.user_id, u.employee_id, u.username, u.password_hash, u.role_name, u.active,
           e.first_name || ' ' || e.last_name
    FROM users u
    LEFT JOIN employees e ON e.employee_id = u.employee_id
    WHERE u.username = $1
  `, username).Scan(&user.UserID, &employeeID, &user.Username, &passwordHash,
		&user.RoleName, &active, &fullName)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", UserContext{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", UserContext{}, err
	}
	if !active {
		return "", UserContext{}, ErrInvalidCredentials
	}
	if err := CheckPassword(passwordHash, password); err != nil {
		return "", UserContext{}, ErrInvalidCredentials
	}

	if employeeID != nil {
		user.EmployeeID = *employeeID
	}
	if fullName != nil {
		user.FullName = *fullName
	} else {
		user.FullName = user.Username
	}

	token, err := GenerateToken(s.Secret, Claims{
		UserID:     user.UserID,
		EmployeeID: user.EmployeeID,
		Username:   user.Username,
		FullName:   user.FullName,
		RoleName:   user.RoleName,
	}, s.TokenTTL)
	if err != nil {
		return "", UserContext{}, err
	}
	return token, user, nil
}
