package user_service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"time"

	"file-vault/conf"
	"file-vault/database"
	"file-vault/model"
	"file-vault/model/dao"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
)

const (
	maxLoginFailures   = 5
	loginFailureWindow = 15 * time.Minute
)

// UserService account registration, login and password management
type UserService struct {
	users  *dao.UserDAO
	mailer Mailer
}

// NewUserService create user service instance
func NewUserService() *UserService {
	return &UserService{
		users:  dao.NewUserDAO(),
		mailer: logMailer{},
	}
}

// SetMailer replace the reset code transport
func (s *UserService) SetMailer(m Mailer) {
	s.mailer = m
}

// Register create a new account and return it
func (s *UserService) Register(name, email, password string) (*model.User, error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		UUID:         uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verify credentials and issue an access token. Failed attempts per
// email are counted in Redis; past the threshold logins are refused for the
// rest of the window.
func (s *UserService) Login(email, password string) (*model.User, string, error) {
	if stored, err := database.GetString(loginFailKey(email)); err == nil {
		if n, convErr := strconv.Atoi(stored); convErr == nil && n >= maxLoginFailures {
			return nil, "", ErrTooManyAttempts
		}
	}

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		s.recordLoginFailure(email)
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLoginFailure(email)
		return nil, "", ErrInvalidCredentials
	}

	if err := database.Delete(loginFailKey(email)); err != nil {
		log.Printf("Failed to clear login failure counter for %s: %v", email, err)
	}

	token, err := IssueToken(user.ID, user.UUID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// GetByUUID fetch an account by UUID
func (s *UserService) GetByUUID(userUuid string) (*model.User, error) {
	user, err := s.users.GetByUUID(userUuid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// ChangePassword verify the current password and store a new hash
func (s *UserService) ChangePassword(userUuid, currentPassword, newPassword string) error {
	user, err := s.users.GetByUUID(userUuid)
	if errors.Is(err, database.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.UpdatePassword(userUuid, string(hash))
}

// ForgotPassword generate a one-time reset code and send it to the account
// email. Unknown emails are ignored so the endpoint does not reveal which
// addresses exist.
func (s *UserService) ForgotPassword(email string) error {
	if _, err := s.users.GetByEmail(email); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return err
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	ttl := time.Duration(conf.Cfg.Auth.ResetCodeTTLMins) * time.Minute
	if err := database.SetWithTTL(resetCodeKey(email), code, ttl); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.mailer.SendPasswordResetCode(email, code); err != nil {
		log.Printf("Failed to send reset code to %s: %v", email, err)
		return fmt.Errorf("failed to send reset code")
	}
	return nil
}

// ResetPassword verify the one-time code and store a new password hash
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	stored, err := database.GetString(resetCodeKey(email))
	if errors.Is(err, redis.Nil) || (err == nil && stored != code) {
		return ErrInvalidResetCode
	}
	if err != nil {
		return fmt.Errorf("failed to read reset code: %w", err)
	}

	user, err := s.users.GetByEmail(email)
	if errors.Is(err, database.ErrNotFound) {
		return ErrInvalidResetCode
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(user.UUID, string(hash)); err != nil {
		return err
	}

	if err := database.Delete(resetCodeKey(email)); err != nil {
		log.Printf("Failed to delete reset code for %s: %v", email, err)
	}
	return nil
}

func (s *UserService) recordLoginFailure(email string) {
	if _, err := database.Incr(loginFailKey(email), loginFailureWindow); err != nil {
		log.Printf("Failed to record login failure for %s: %v", email, err)
	}
}

func resetCodeKey(email string) string {
	return "pwdreset:" + email
}

func loginFailKey(email string) string {
	return "loginfail:" + email
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func bcryptCost() int {
	if conf.Cfg != nil && conf.Cfg.Auth.BcryptCost > 0 {
		return conf.Cfg.Auth.BcryptCost
	}
	return bcrypt.DefaultCost
}
