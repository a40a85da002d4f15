package services

import (
	"github.com/mroshb/debate_arena/internal/models"
	"github.com/mroshb/debate_arena/internal/security"
	"github.com/mroshb/debate_arena/pkg/errors"
	"github.com/mroshb/debate_arena/pkg/logger"
)

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

// LoginResult is the session payload returned on successful login.
type LoginResult struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	Ideology            string `json:"inferredIdeology,omitempty"`
	Token               string `json:"token,omitempty"`
}

// Signup registers a new user. Duplicate emails are a conflict.
func (s *AuthService) Signup(name, email, password string) error {
	name = security.SanitizeString(security.SanitizeHTML(name))
	email = security.SanitizeString(email)

	if name == "" || email == "" || password == "" {
		return errors.New(errors.ErrCodeValidation, "name, email and password are required")
	}
	if !security.ValidateEmail(email) {
		return errors.New(errors.ErrCodeValidation, "invalid email address")
	}

	exists, err := s.users.UserExists(email)
	if err != nil {
		return err
	}
	if exists {
		return errors.New(errors.ErrCodeAlreadyExists, "user already exists")
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	}

	if err := s.users.CreateUser(user); err != nil {
		return err
	}

	logger.Info("User signed up", "email", email)
	return nil
}

// Login checks credentials and issues a session token. Passwords are
// compared as opaque strings.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.CodeOf(err) == errors.ErrCodeNotFound {
			return nil, errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if user.Password != password {
		return nil, errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := security.GenerateJWT(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to issue session token")
	}

	return &LoginResult{
		Name:                user.Name,
		Email:               user.Email,
		OnboardingCompleted: user.OnboardingCompleted,
		Ideology:            user.Ideology,
		Token:               token,
	}, nil
}

// CompleteOnboarding scores the quiz answers and stores the inferred
// ideology on the user record.
func (s *AuthService) CompleteOnboarding(email string, answers map[string]string) (string, map[string]int, error) {
	if len(answers) == 0 {
		return "", nil, errors.New(errors.ErrCodeValidation, "onboarding answers are required")
	}

	ideology, score := InferIdeology(answers)

	if _, err := s.users.CompleteOnboarding(email, ideology); err != nil {
		return "", nil, err
	}

	logger.Info("Onboarding completed", "email", email, "ideology", ideology)
	return ideology, score, nil
}

// ListUsers returns all users for the public scoreboard.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.users.ListUsers()
}

// DeleteUser removes one user.
func (s *AuthService) DeleteUser(id uint) error {
	return s.users.DeleteUser(id)
}

// DeleteAllUsers removes every user.
func (s *AuthService) DeleteAllUsers() error {
	return s.users.DeleteAllUsers()
}
