// Package account implements registration, login, and account management on
// top of the credential hasher, the token service, and the account registry.
package account

import (
	"context"
	"errors"

	"github.com/skillsenselab/storeapi/auth/password"
	"github.com/skillsenselab/storeapi/auth/token"
	apperrors "github.com/skillsenselab/storeapi/errors"
	"github.com/skillsenselab/storeapi/logger"
	"github.com/skillsenselab/storeapi/store"
)

// Registry is the persistence surface the service needs. *store.AccountStore
// satisfies it; tests substitute a fake.
type Registry interface {
	Insert(ctx context.Context, account *store.Account) error
	FindByUsername(ctx context.Context, username string) (*store.Account, error)
	FindByID(ctx context.Context, id string) (*store.Account, error)
	UpdateUsername(ctx context.Context, id, username string) (*store.Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]store.Account, error)
}

// Account is the service-level view of an account. The credential digest
// never leaves the service.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResult carries the authenticated account and its signed token.
type LoginResult struct {
	Account Account
	Token   string
}

// Service wires the registry, hasher, and token service together.
type Service struct {
	registry Registry
	hasher   password.Hasher
	tokens   *token.Service
	log      *logger.Logger
}

// NewService creates an account service.
func NewService(registry Registry, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	return &Service{
		registry: registry,
		hasher:   hasher,
		tokens:   tokens,
		log:      log.WithComponent("account"),
	}
}

// Register creates a new account from a username and plaintext password.
// The password is hashed before anything touches the registry; a username
// collision surfaces as ALREADY_EXISTS regardless of which writer won.
func (s *Service) Register(ctx context.Context, username, plaintext string) (*Account, error) {
	digest, err := s.hasher.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrSecretPolicy) {
			return nil, apperrors.InvalidInput("password", err.Error())
		}
		s.log.Error("Password hashing failed", map[string]interface{}{
			logger.FieldError: err.Error(),
		})
		return nil, apperrors.Internal(err)
	}

	record := &store.Account{Username: username, PasswordHash: digest}
	if err := s.registry.Insert(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.AlreadyExists("username")
		}
		return nil, apperrors.Database("insert account", err)
	}

	s.log.Info("Account registered", map[string]interface{}{
		logger.FieldUserID: record.ID.String(),
	})
	return &Account{ID: record.ID.String(), Username: record.Username}, nil
}

// Login authenticates a username/password pair and issues a token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*LoginResult, error) {
	record, err := s.registry.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, apperrors.Database("find account", err)
	}

	if err := s.hasher.Verify(plaintext, record.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, apperrors.InvalidCredentials()
		}
		s.log.Error("Credential verification failed", map[string]interface{}{
			logger.FieldUserID: record.ID.String(),
			logger.FieldError:  err.Error(),
		})
		return nil, apperrors.Internal(err)
	}

	signed, err := s.tokens.Issue(record.ID.String(), record.Username)
	if err != nil {
		s.log.Error("Token issuance failed", map[string]interface{}{
			logger.FieldUserID: record.ID.String(),
			logger.FieldError:  err.Error(),
		})
		return nil, apperrors.Internal(err)
	}

	s.log.Info("Login succeeded", map[string]interface{}{
		logger.FieldUserID: record.ID.String(),
	})
	return &LoginResult{
		Account: Account{ID: record.ID.String(), Username: record.Username},
		Token:   signed,
	}, nil
}

// Get returns a single account by id.
func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	record, err := s.registry.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("account", id)
		}
		return nil, apperrors.Database("find account", err)
	}
	return &Account{ID: record.ID.String(), Username: record.Username}, nil
}

// UpdateUsername renames an account. The credential digest is immutable
// after registration.
func (s *Service) UpdateUsername(ctx context.Context, id, username string) (*Account, error) {
	record, err := s.registry.UpdateUsername(ctx, id, username)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, apperrors.NotFound("account", id)
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperrors.AlreadyExists("username")
		default:
			return nil, apperrors.Database("update account", err)
		}
	}
	return &Account{ID: record.ID.String(), Username: record.Username}, nil
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.registry.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("account", id)
		}
		return apperrors.Database("delete account", err)
	}
	s.log.Info("Account deleted", map[string]interface{}{
		logger.FieldUserID: id,
	})
	return nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	records, err := s.registry.List(ctx)
	if err != nil {
		return nil, apperrors.Database("list accounts", err)
	}
	accounts := make([]Account, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, Account{ID: r.ID.String(), Username: r.Username})
	}
	return accounts, nil
}
