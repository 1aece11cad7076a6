package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"notestack-be/internal/dto"
	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/pkg/logger"
	"notestack-be/internal/pkg/mailer"
	"notestack-be/internal/repository/contract"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/specification"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/pkg/credential"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
)

const (
	minPasswordLength = 6
	emailTakenMessage = "User with this email already exists"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
}

type authService struct {
	uowFactory          unitofwork.RepositoryFactory
	hasher              *credential.PasswordHasher
	issuer              *credential.TokenIssuer
	emailService        mailer.IEmailService
	publisherService    IPublisherService
	defaultNotebooks    *memory.DefaultNotebookCache
	defaultNotebookName string
	logger              logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	hasher *credential.PasswordHasher,
	issuer *credential.TokenIssuer,
	emailService mailer.IEmailService,
	publisherService IPublisherService,
	defaultNotebooks *memory.DefaultNotebookCache,
	defaultNotebookName string,
	log logger.ILogger,
) IAuthService {
	if defaultNotebookName == "" {
		defaultNotebookName = entity.DefaultNotebookName
	}
	return &authService{
		uowFactory:          uowFactory,
		hasher:              hasher,
		issuer:              issuer,
		emailService:        emailService,
		publisherService:    publisherService,
		defaultNotebooks:    defaultNotebooks,
		defaultNotebookName: defaultNotebookName,
		logger:              log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and its default notebook in one transaction.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperror.Validation("Password must be at least 6 characters")
	}
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if existing != nil {
		return nil, apperror.Validation(emailTakenMessage)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	notebook := &entity.Notebook{
		Id:        uuid.New(),
		Name:      s.defaultNotebookName,
		IsDefault: true,
		UserId:    user.Id,
		CreatedAt: now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// a concurrent signup committed the same email after the lookup
		if errors.Is(err, contract.ErrEmailTaken) {
			return nil, apperror.Validation(emailTakenMessage)
		}
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if err := uow.NotebookRepository().Create(ctx, notebook); err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}

	if s.defaultNotebooks != nil {
		s.defaultNotebooks.Save(user.Id, notebook.Id)
	}

	token, err := s.issuer.Issue(user.Id)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}

	go func() {
		if err := s.emailService.SendWelcome(user.Email, user.Name, notebook.Name); err != nil {
			s.logger.Warn("AuthService", "Failed to send welcome email", map[string]interface{}{"error": err.Error()})
		}
	}()

	s.publisherService.Publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"user_id":     user.Id.String(),
		"notebook_id": notebook.Id.String(),
	}))

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login reports unknown emails and wrong passwords with the same error.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: normalizeEmail(req.Email)})
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if user == nil || !s.hasher.Compare(req.Password, user.PasswordHash) {
		return nil, apperror.Validation("Invalid credentials")
	}

	token, err := s.issuer.Issue(user.Id)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}

	return &dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	return &dto.ProfileResponse{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{Id: user.Id, Name: user.Name, Email: user.Email}
}
