package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/universe-backend/internal/users"
	"github.com/angelmondragon/universe-backend/pkg/auth/session"
	"github.com/angelmondragon/universe-backend/pkg/config"
	"github.com/angelmondragon/universe-backend/pkg/docstore"
	pkgerrors "github.com/angelmondragon/universe-backend/pkg/errors"
	"github.com/angelmondragon/universe-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "Invalid credentials"
	accountExistsMessage      = "Account already exists"
	signupSuccessMessage      = "Signup successful"
)

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, req LoginRequest, client session.Client) (*LoginResponse, error)
}

type service struct {
	users       userRepository
	session     sessionManager
	passwordCfg config.PasswordConfig
	exposeHash  bool
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (docstore.ID, error)
	FindByIdentifier(ctx context.Context, identifier string) (docstore.Document, error)
	ExistsByStudentIDOrEmail(ctx context.Context, studentID, email string) (bool, error)
}

type sessionManager interface {
	Issue(ctx context.Context, userID string, client session.Client) (session.Session, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	PasswordConfig config.PasswordConfig
	// ExposePasswordHash keeps password_hash in the login response user.
	ExposePasswordHash bool
}

// NewService constructs the signup/login service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		passwordCfg: params.PasswordConfig,
		exposeHash:  params.ExposePasswordHash,
	}, nil
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	exists, err := s.users.ExistsByStudentIDOrEmail(ctx, req.StudentID, req.Email)
	if err != nil {
		return nil, storeError(err, "check existing account")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, accountExistsMessage)
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	id, err := s.users.Create(ctx, users.CreateUserDTO{
		StudentID:    req.StudentID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, storeError(err, "create user")
	}

	return &SignupResponse{ID: id.Hex(), Message: signupSuccessMessage}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, client session.Client) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}

	userID, ok := user.ID()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stored user has no id")
	}

	sess, err := s.session.Issue(ctx, userID.Hex(), client)
	if err != nil {
		return nil, storeError(err, "create session")
	}

	return &LoginResponse{
		Token: sess.Token,
		User:  users.ToWire(user, s.exposeHash),
	}, nil
}

// authenticate collapses "no such user" and "wrong password" into the same
// Unauthorized error.
func (s *service) authenticate(ctx context.Context, identifier, password string) (docstore.Document, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, storeError(err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.String(users.FieldPasswordHash))
	if err != nil && !errors.Is(err, security.ErrInvalidHash) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func storeError(err error, message string) error {
	if errors.Is(err, docstore.ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "database not configured")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
