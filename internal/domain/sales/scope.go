package sales

import (
	appctx "ventasapi/internal/core/context"
)

const branchAllSentinel = appctx.BranchAll

// ApplyBranchScope resolves the branch a query may actually use. Admins
// and unrestricted users keep whatever they requested; everyone else is
// silently pinned to their own branch, whatever they asked for. The
// function is pure and idempotent: applying it twice yields the same
// branch as applying it once.
func ApplyBranchScope(requested string, user *appctx.UserContext) string {
	if !user.BranchRestricted() {
		return requested
	}
	return user.Branch
}

// FilterBranchSales drops breakdown rows a restricted user must not see.
func FilterBranchSales(items []BranchSales, user *appctx.UserContext) []BranchSales {
	if !user.BranchRestricted() {
		return items
	}
	out := make([]BranchSales, 0, 1)
	for _, it := range items {
		if it.Branch == user.Branch {
			out = append(out, it)
		}
	}
	return out
}

// FilterBranches narrows the branch catalog for a restricted user.
func FilterBranches(branches []string, user *appctx.UserContext) []string {
	if !user.BranchRestricted() {
		return branches
	}
	out := make([]string, 0, 1)
	for _, b := range branches {
		if b == user.Branch {
			out = append(out, b)
		}
	}
	return out
}
