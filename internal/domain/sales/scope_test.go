package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appctx "ventasapi/internal/core/context"
)

func restrictedUser(branch string) *appctx.UserContext {
	return &appctx.UserContext{UserID: 7, Username: "vendedor", Role: appctx.RoleUser, Branch: branch}
}

func TestApplyBranchScope(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		user      *appctx.UserContext
		want      string
	}{
		{
			name:      "restricted user is pinned to own branch",
			requested: "Norte",
			user:      restrictedUser("Centro"),
			want:      "Centro",
		},
		{
			name:      "restricted user requesting nothing still pinned",
			requested: "",
			user:      restrictedUser("Centro"),
			want:      "Centro",
		},
		{
			name:      "admin keeps the request",
			requested: "Norte",
			user:      &appctx.UserContext{UserID: 1, Role: appctx.RoleAdmin, Branch: "Centro"},
			want:      "Norte",
		},
		{
			name:      "unrestricted user keeps the request",
			requested: "Norte",
			user:      restrictedUser(appctx.BranchAll),
			want:      "Norte",
		},
		{
			name:      "missing identity keeps the request",
			requested: "Norte",
			user:      nil,
			want:      "Norte",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyBranchScope(tt.requested, tt.user))
		})
	}
}

func TestApplyBranchScope_Idempotent(t *testing.T) {
	users := []*appctx.UserContext{
		restrictedUser("Centro"),
		restrictedUser(appctx.BranchAll),
		{UserID: 1, Role: appctx.RoleAdmin, Branch: "Sur"},
		nil,
	}
	for _, u := range users {
		once := ApplyBranchScope("Norte", u)
		assert.Equal(t, once, ApplyBranchScope(once, u))
	}
}

func TestFilterBranchSales(t *testing.T) {
	items := []BranchSales{
		{Branch: "Centro", Total: 100},
		{Branch: "Norte", Total: 200},
	}

	t.Run("restricted user sees only own branch", func(t *testing.T) {
		got := FilterBranchSales(items, restrictedUser("Norte"))
		assert.Equal(t, []BranchSales{{Branch: "Norte", Total: 200}}, got)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		got := FilterBranchSales(items, &appctx.UserContext{Role: appctx.RoleAdmin})
		assert.Equal(t, items, got)
	})
}

func TestFilterBranches(t *testing.T) {
	branches := []string{"Centro", "Norte", "Sur"}

	got := FilterBranches(branches, restrictedUser("Sur"))
	assert.Equal(t, []string{"Sur"}, got)

	got = FilterBranches(branches, restrictedUser(appctx.BranchAll))
	assert.Equal(t, branches, got)
}
