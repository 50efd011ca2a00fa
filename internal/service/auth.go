package service

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"youtube-sentiment/internal/models"
	"youtube-sentiment/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Argon2id parameters for password hashing.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

const uniqueViolation = "23505"

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	// Login returns a signed JWT and its expiration time. The ip and
	// userAgent of the request are kept in the login history.
	Login(username, password, ip, userAgent string) (string, time.Time, error)
	Logout(username string) error
	Profile(userID int64, username string) (*models.User, []models.LoginRecord, error)
	JWTSecret() []byte
}

type authService struct {
	repo   repository.AuthRepository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, secret string, ttl time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

func (s *authService) JWTSecret() []byte {
	return s.secret
}

func (s *authService) Register(username, email, password string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Email:    email,
	}

	passwordHash, err := s.hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = passwordHash

	if err := s.repo.CreateUser(user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, ErrEmailAlreadyUsed
			}
			return nil, ErrUserAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", username))
	return user, nil
}

func (s *authService) Login(username, password, ip, userAgent string) (string, time.Time, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !user.IsActive {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if !s.verifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expirationTime := time.Now().Add(s.ttl)
	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	record := &models.LoginRecord{UserID: user.ID}
	if ip != "" {
		record.IPAddress = &ip
	}
	if userAgent != "" {
		record.UserAgent = &userAgent
	}
	if err := s.repo.RecordLogin(record); err != nil {
		// Login history is best effort; the login itself succeeded.
		s.logger.Warn("Failed to record login history", zap.Error(err))
	}
	if err := s.repo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Warn("Failed to update last login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully.", zap.String("username", user.Username))
	return tokenString, expirationTime, nil
}

func (s *authService) Logout(username string) error {
	// Tokens are stateless; expiry does the invalidation.
	s.logger.Info("User logged out.", zap.String("username", username))
	return nil
}

func (s *authService) Profile(userID int64, username string) (*models.User, []models.LoginRecord, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	logins, err := s.repo.RecentLogins(userID, 10)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve login history: %w", err)
	}

	return user, logins, nil
}

// hashPassword uses Argon2id and encodes parameters, salt and hash into a
// single string: $argon2id$v=19$m=65536,t=1,p=4$BASE64_SALT$BASE64_HASH
func (s *authService) hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, encodedSalt, encodedHash), nil
}

// verifyPassword re-hashes the candidate password with the stored salt and
// parameters and compares in constant time.
func (s *authService) verifyPassword(hashedPassword, password string) bool {
	sections := strings.Split(strings.TrimPrefix(hashedPassword, "$"), "$")
	// Expected: ["argon2id", "v=19", "m=65536,t=1,p=4", salt, hash]
	if len(sections) != 5 || sections[0] != "argon2id" {
		s.logger.Error("Invalid hash format", zap.Int("sections", len(sections)))
		return false
	}

	var version int
	if _, err := fmt.Sscanf(sections[1], "v=%d", &version); err != nil {
		return false
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}

	decodedSalt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		s.logger.Error("Failed to decode salt", zap.Error(err))
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		s.logger.Error("Failed to decode hash", zap.Error(err))
		return false
	}

	comparisonHash := argon2.IDKey([]byte(password), decodedSalt, t, m, p, uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(comparisonHash, decodedHash) == 1
}
