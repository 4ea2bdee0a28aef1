// Package auth implements registration and login: credential checks happen
// here, token issuance is delegated to the credential codec.
package auth

import (
	"context"

	"exptrack/internal/user"
	dErrors "exptrack/pkg/domain-errors"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer mints a signed credential token for an identity.
type TokenIssuer interface {
	IssueToken(userID uuid.UUID, email string) (string, error)
}

// Service handles account lifecycle operations.
type Service struct {
	users  user.Store
	tokens TokenIssuer
}

func NewService(users user.Store, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// RegisterRequest carries the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result pairs the account with a freshly issued token.
type Result struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Register validates the payload, rejects duplicate emails, and creates the
// account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	if len(req.Name) < 2 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name min length 2")
	}
	if len(req.Password) < 8 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password min length 8")
	}
	if !govalidator.IsEmail(req.Email) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "not a valid email")
	}

	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "user already exists")
	}
	if dErrors.CodeOf(err) != dErrors.CodeNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to hash password")
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Token: token}, nil
}

// Login checks the password against the stored hash and issues a token.
// Unknown emails and wrong passwords fail identically so the response does
// not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeNotFound {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}

	token, err := s.tokens.IssueToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Result{User: u, Token: token}, nil
}
