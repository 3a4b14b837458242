// Package auth implements web-user accounts, credentials and JWT issuing.
package auth

import "time"

// Account statuses. New accounts start pending until an admin approves
// them; only active accounts may log in.
const (
	StatusPending = "pendiente"
	StatusActive  = "activo"
	StatusBlocked = "bloqueado"
)

// User is a web user of the reporting API. Distinct from the
// point-of-sale operators, which live in another system entirely.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"usuario" json:"usuario"`
	FirstName    string     `db:"nombre" json:"nombre"`
	LastName     string     `db:"apellido" json:"apellido"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"rol" json:"rol"`
	Status       string     `db:"estatus" json:"estatus"`
	Branch       string     `db:"sucursal_registro" json:"sucursal_registro"`
	LastLogin    *time.Time `db:"ultimo_login" json:"ultimo_login"`
	CreatedAt    time.Time  `db:"creado_en" json:"creado_en"`
}

// UserUpdate is a partial update; nil fields stay untouched.
type UserUpdate struct {
	FirstName    *string
	LastName     *string
	Role         *string
	Status       *string
	Branch       *string
	PasswordHash *string
}

// Empty reports whether the update carries no changes.
func (u UserUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Role == nil &&
		u.Status == nil && u.Branch == nil && u.PasswordHash == nil
}
