package entity

import "time"

// Roles válidos para User.
const (
	RoleManager   = "manager"
	RoleProducer  = "producer"
	RoleAssembler = "assembler"
)

// LastLoginLayout formato con el que se guarda last_login (mm/dd/yy hh:mm:ss).
const LastLoginLayout = "01/02/06 15:04:05"

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string // manager, producer, assembler
	IsActive     bool
	PasswordHash string // bcrypt hash, nunca plano
	LastLogin    string // texto en LastLoginLayout; puede estar vacío
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role pertenece al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleManager, RoleProducer, RoleAssembler:
		return true
	}
	return false
}

// FormatLastLogin formatea t en LastLoginLayout (UTC).
func FormatLastLogin(t time.Time) string {
	return t.UTC().Format(LastLoginLayout)
}

// RecomputeActive recalcula IsActive: activo si now-last_login <= window.
// Si last_login está vacío o no se puede parsear se conserva el valor guardado.
func (u *User) RecomputeActive(now time.Time, window time.Duration) {
	if u.LastLogin == "" {
		return
	}
	last, err := time.ParseInLocation(LastLoginLayout, u.LastLogin, time.UTC)
	if err != nil {
		return
	}
	u.IsActive = now.Sub(last) <= window
}
