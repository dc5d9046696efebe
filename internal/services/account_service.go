package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fablink/internal/livefeed"
	"fablink/internal/models/db_models"
	"fablink/internal/models/request_models"
	"fablink/internal/models/response_models"
	"fablink/internal/repositories"
	"fablink/pkg/memcache"
	"fablink/pkg/utils"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.ProfileDetails, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileDetails, error)
	// GetUser returns the full account row for an authenticated caller.
	GetUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error
	ListManufacturers(ctx context.Context) ([]response_models.ProfileDetails, error)
	ForgotPassword(email string) error
	ResetPassword(req request_models.ForgotPasswordRequest) error
}

type AccountService struct {
	userRepo    repositories.UserRepository
	mailService IMailService
	resetTokens memcache.ResetTokenStore
	publisher   livefeed.Publisher
}

func NewAccountService(
	userRepo repositories.UserRepository,
	mailService IMailService,
	resetTokens memcache.ResetTokenStore,
	publisher livefeed.Publisher,
) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		mailService: mailService,
		resetTokens: resetTokens,
		publisher:   publisher,
	}
}

func (a *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.ProfileDetails, error) {
	existing, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	// The company fields only exist on the manufacturer variant of the
	// profile; consumer registrations silently drop them.
	if req.Role == db_models.RoleManufacturer {
		user.CompanyName = req.CompanyName
		user.Industry = req.Industry
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.ErrDatabaseError
	}

	if user.IsManufacturer() {
		a.publisher.Invalidate(livefeed.ManufacturersTopic())
	}

	profile := profileDetails(user)
	return &profile, nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.LoginResponse{
		Token: token,
		User:  profileDetails(user),
	}, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileDetails, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	profile := profileDetails(user)
	return &profile, nil
}

func (a *AccountService) GetUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Phone = req.Phone
	user.Bio = req.Bio
	if user.IsManufacturer() {
		user.CompanyName = req.CompanyName
		user.Industry = req.Industry
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	if user.IsManufacturer() {
		a.publisher.Invalidate(livefeed.ManufacturersTopic())
	}
	return nil
}

func (a *AccountService) ListManufacturers(ctx context.Context) ([]response_models.ProfileDetails, error) {
	users, err := a.userRepo.ListByRole(ctx, db_models.RoleManufacturer)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	profiles := make([]response_models.ProfileDetails, 0, len(users))
	for i := range users {
		profiles = append(profiles, profileDetails(&users[i]))
	}
	return profiles, nil
}

// ForgotPassword never reveals whether the email exists.
func (a *AccountService) ForgotPassword(email string) error {
	user, err := a.userRepo.FindByEmail(context.Background(), email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, email, resetTokenTTL)

	if err := a.mailService.SendPasswordReset(email, token); err != nil {
		log.Printf("ERROR: failed to send reset mail to %s: %v", email, err)
	}
	return nil
}

func (a *AccountService) ResetPassword(req request_models.ForgotPasswordRequest) error {
	email := a.resetTokens.Consume(req.Token)
	if email == "" || email != req.Email {
		return utils.ErrInvalidCredentials
	}

	ctx := context.Background()
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func profileDetails(u *db_models.User) response_models.ProfileDetails {
	return response_models.ProfileDetails{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		Industry:    u.Industry,
		Phone:       u.Phone,
		Bio:         u.Bio,
		Suspended:   u.Suspended,
		SuspendedAt: u.SuspendedAt,
		CreatedAt:   u.CreatedAt,
	}
}
