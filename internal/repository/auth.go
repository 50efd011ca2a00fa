package repository

import (
	"youtube-sentiment/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AuthRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateLastLogin(userID int64) error
	RecordLogin(record *models.LoginRecord) error
	RecentLogins(userID int64, limit int) ([]models.LoginRecord, error)
}

type authRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAuthRepository(db *sqlx.DB, logger *zap.Logger) AuthRepository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at, is_active`
	return r.db.QueryRowx(query, user.Username, user.Email, user.PasswordHash).StructScan(user)
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, created_at, last_login, is_active FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, created_at, last_login, is_active FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) UpdateLastLogin(userID int64) error {
	_, err := r.db.Exec(`UPDATE users SET last_login = now() WHERE id = $1`, userID)
	return err
}

func (r *authRepository) RecordLogin(record *models.LoginRecord) error {
	query := `INSERT INTO login_history (user_id, ip_address, user_agent) VALUES ($1, $2, $3) RETURNING id, login_time`
	return r.db.QueryRowx(query, record.UserID, record.IPAddress, record.UserAgent).StructScan(record)
}

func (r *authRepository) RecentLogins(userID int64, limit int) ([]models.LoginRecord, error) {
	records := []models.LoginRecord{}
	query := `SELECT id, user_id, login_time, ip_address, user_agent FROM login_history WHERE user_id = $1 ORDER BY login_time DESC LIMIT $2`
	if err := r.db.Select(&records, query, userID, limit); err != nil {
		return nil, err
	}
	return records, nil
}
