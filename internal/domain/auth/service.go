package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ventasapi/internal/core/apperror"
	appctx "ventasapi/internal/core/context"
	"ventasapi/pkg/logger"
)

// Service implements registration, login and user administration.
type Service struct {
	repo Repository
	jwt  *JWTService
	cost int
}

// NewService creates the auth service.
func NewService(repo Repository, jwt *JWTService) *Service {
	return &Service{repo: repo, jwt: jwt, cost: bcrypt.DefaultCost}
}

// RegisterInput is the self-service signup payload.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Branch    string
}

// Register creates an account. The very first account becomes an active
// admin so the system can be bootstrapped; everyone after that starts
// as a pending regular user awaiting admin approval.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" {
		return nil, apperror.NewValidation("usuario is required")
	}
	if len(in.Password) < 6 {
		return nil, apperror.NewValidation("password must be at least 6 characters")
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "usuario", username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     username,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: string(hash),
		Role:         appctx.RoleUser,
		Status:       StatusPending,
		Branch:       strings.TrimSpace(in.Branch),
	}
	if user.Branch == "" {
		user.Branch = appctx.BranchAll
	}
	if total == 0 {
		user.Role = appctx.RoleAdmin
		user.Status = StatusActive
		user.Branch = appctx.BranchAll
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	user.PasswordHash = ""

	logger.Info(ctx, "user registered",
		"user_id", id, "usuario", username, "estatus", user.Status)
	return user, nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string
	User  *User
}

// Login verifies credentials and account status, then issues a token.
// Unknown users and bad passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(strings.ToLower(username))

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	switch user.Status {
	case StatusActive:
	case StatusPending:
		return nil, apperror.NewForbidden("account pending approval")
	case StatusBlocked:
		return nil, apperror.NewForbidden("account blocked")
	default:
		return nil, apperror.NewForbidden("account not allowed to log in")
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordLogin(ctx, user.ID, s.jwt.now()); err != nil {
		logger.Warn(ctx, "failed to record last login", "user_id", user.ID, "error", err)
	}

	user.PasswordHash = ""
	return &LoginResult{Token: token, User: user}, nil
}

// GetByID returns one user without the password hash.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// List returns every account, pending ones first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateInput is the admin-side partial update payload.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Role      *string
	Status    *string
	Branch    *string
	Password  *string
}

// Update applies an admin edit to an account. A new password, when
// present, is hashed before it reaches storage.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*User, error) {
	if in.Role != nil && *in.Role != appctx.RoleAdmin && *in.Role != appctx.RoleUser {
		return nil, apperror.NewValidation("rol must be admin or usuario")
	}
	if in.Status != nil {
		switch *in.Status {
		case StatusPending, StatusActive, StatusBlocked:
		default:
			return nil, apperror.NewValidation("estatus must be pendiente, activo or bloqueado")
		}
	}

	upd := UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		Status:    in.Status,
		Branch:    in.Branch,
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, apperror.NewValidation("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.cost)
		if err != nil {
			return nil, apperror.NewInternal(err)
		}
		hashed := string(hash)
		upd.PasswordHash = &hashed
	}
	if upd.Empty() {
		return nil, apperror.NewValidation("no fields to update")
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user updated", "user_id", id)
	return s.GetByID(ctx, id)
}
