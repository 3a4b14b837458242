package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"ventasapi/pkg/logger"
)

func TestNewRouter_RegistersRoutes(t *testing.T) {
	router := NewRouter(RouterConfig{Logger: logger.Default()})

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	// Paths the frontend calls. User admin is served on /users with
	// PUT, matching the client; PATCH stays as an alias.
	want := []string{
		http.MethodGet + " /api/v1/users",
		http.MethodPut + " /api/v1/users/:id",
		http.MethodPatch + " /api/v1/users/:id",
		http.MethodGet + " /api/v1/tickets",
		http.MethodGet + " /api/v1/tickets/agentes",
		http.MethodGet + " /api/v1/ventas-producto/rows",
		http.MethodGet + " /api/v1/ventas-producto/export/excel",
		http.MethodGet + " /api/v1/dashboard/kpis",
		http.MethodPost + " /api/v1/auth/login",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
