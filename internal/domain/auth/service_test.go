package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ventasapi/internal/core/apperror"
	appctx "ventasapi/internal/core/context"
)

type memRepo struct {
	users  map[int64]*User
	nextID int64
	logins map[int64]time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[int64]*User{}, nextID: 1, logins: map[int64]time.Time{}}
}

func (r *memRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memRepo) Create(_ context.Context, user *User) (int64, error) {
	id := r.nextID
	r.nextID++
	cp := *user
	cp.ID = id
	r.users[id] = &cp
	return id, nil
}

func (r *memRepo) List(context.Context) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id int64, upd UserUpdate) error {
	u, ok := r.users[id]
	if !ok {
		return apperror.NewNotFound("user", id)
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Status != nil {
		u.Status = *upd.Status
	}
	if upd.Branch != nil {
		u.Branch = *upd.Branch
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	return nil
}

func (r *memRepo) RecordLogin(_ context.Context, id int64, at time.Time) error {
	r.logins[id] = at
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo, NewJWTService("test-secret", time.Hour))
	svc.cost = bcrypt.MinCost
	return svc
}

func TestRegister_FirstUserIsActiveAdmin(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "Fundador", Password: "secret1", Branch: "Centro",
	})
	require.NoError(t, err)

	assert.Equal(t, "fundador", user.Username, "usernames are lower-cased")
	assert.Equal(t, appctx.RoleAdmin, user.Role)
	assert.Equal(t, StatusActive, user.Status)
	assert.Equal(t, appctx.BranchAll, user.Branch, "bootstrap admin is unrestricted")
	assert.Empty(t, user.PasswordHash)
}

func TestRegister_LaterUsersArePending(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "primero", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Register(ctx, RegisterInput{
		Username: "segundo", Password: "secret2", Branch: "Norte",
	})
	require.NoError(t, err)

	assert.Equal(t, appctx.RoleUser, user.Role)
	assert.Equal(t, StatusPending, user.Status)
	assert.Equal(t, "Norte", user.Branch)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "ANA", Password: "secret2"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.Register(context.Background(), RegisterInput{Username: "ana", Password: "abc"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.AsCode(err))
}

func TestLogin(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	admin, err := svc.Register(ctx, RegisterInput{Username: "admin", Password: "secret1"})
	require.NoError(t, err)

	t.Run("success issues token and records login", func(t *testing.T) {
		res, err := svc.Login(ctx, "admin", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Empty(t, res.User.PasswordHash)
		assert.Contains(t, repo.logins, admin.ID)

		identity, err := svc.jwt.Validate(res.Token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, identity.UserID)
		assert.Equal(t, appctx.RoleAdmin, identity.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "nope")
		assert.Equal(t, apperror.CodeUnauthorized, apperror.AsCode(err))
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "nadie", "secret1")
		assert.Equal(t, apperror.CodeUnauthorized, apperror.AsCode(err))
	})

	t.Run("pending account is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Username: "nuevo", Password: "secret1"})
		require.NoError(t, err)
		_, err = svc.Login(ctx, "nuevo", "secret1")
		assert.Equal(t, apperror.CodeForbidden, apperror.AsCode(err))
	})

	t.Run("blocked account is rejected", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterInput{Username: "malo", Password: "secret1"})
		require.NoError(t, err)
		blocked := StatusBlocked
		_, err = svc.Update(ctx, u.ID, UpdateInput{Status: &blocked})
		require.NoError(t, err)
		_, err = svc.Login(ctx, "malo", "secret1")
		assert.Equal(t, apperror.CodeForbidden, apperror.AsCode(err))
	})
}

func TestUpdate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Username: "ana", Password: "secret1"})
	require.NoError(t, err)

	t.Run("approve and reassign branch", func(t *testing.T) {
		status, branch := StatusActive, "Sur"
		got, err := svc.Update(ctx, u.ID, UpdateInput{Status: &status, Branch: &branch})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, got.Status)
		assert.Equal(t, "Sur", got.Branch)
	})

	t.Run("password reset is hashed", func(t *testing.T) {
		pw := "newpass1"
		_, err := svc.Update(ctx, u.ID, UpdateInput{Password: &pw})
		require.NoError(t, err)

		stored := repo.users[u.ID]
		assert.NotEqual(t, pw, stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(pw)))
	})

	t.Run("invalid role", func(t *testing.T) {
		role := "superuser"
		_, err := svc.Update(ctx, u.ID, UpdateInput{Role: &role})
		assert.Equal(t, apperror.CodeValidation, apperror.AsCode(err))
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := svc.Update(ctx, u.ID, UpdateInput{})
		assert.Equal(t, apperror.CodeValidation, apperror.AsCode(err))
	})
}
