// seed_admin crea el primer usuario administrador en la base de datos configurada.
// Útil cuando AUTH_ALLOW_ADMIN_SIGNUP=false.
//
// Uso: go run ./cmd/seed_admin --email admin@example.com --password secreto [--username admin]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
)

func main() {
	email := pflag.StringP("email", "e", "", "email del administrador")
	password := pflag.StringP("password", "p", "", "password (6 a 72 caracteres)")
	username := pflag.StringP("username", "u", "", "nombre de usuario (por defecto el email)")
	pflag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "--email y --password son obligatorios")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "seed_admin requiere STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.Options{AllowAdminSignup: true})

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    *email,
		Username: *username,
		Password: *password,
		Role:     entity.RoleAdmin.String(),
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Printf("El usuario %s ya existe; nada que hacer.\n", *email)
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s (%s)\n", user.Email, user.ID)
}
