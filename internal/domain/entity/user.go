package entity

import "time"

// User representa una cuenta del sistema. Inmutable después del registro.
type User struct {
	ID           string
	Email        string // identidad única (minúsculas)
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
}
