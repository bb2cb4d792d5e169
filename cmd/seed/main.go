// seed crea (o actualiza) el usuario manager inicial para poder administrar el resto.
//
// Uso: go run ./cmd/seed -email boss@factory.io -name "Plant Manager" -password '...'
// La conexión se toma de la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/factory-api/pkg/config"
	"github.com/jhoicas/factory-api/pkg/password"
)

func main() {
	email := flag.String("email", "", "email del manager (obligatorio)")
	name := flag.String("name", "Manager", "nombre visible")
	pass := flag.String("password", os.Getenv("SEED_PASSWORD"), "password (o SEED_PASSWORD)")
	flag.Parse()

	if *email == "" || len(*pass) < 8 {
		fmt.Fprintln(os.Stderr, "email y password (mínimo 8 caracteres) son requeridos")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := password.Hash(*pass)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewUserRepository(pool)
	existing, err := repo.GetByEmail(ctx, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	if existing != nil {
		existing.Role = entity.RoleManager
		existing.PasswordHash = hash
		existing.UpdatedAt = now
		if err := repo.Update(ctx, existing); err != nil {
			fmt.Fprintf(os.Stderr, "Actualizar usuario: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Usuario %s promovido a manager (%s)\n", existing.Email, existing.ID)
		return
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        *email,
		Name:         *name,
		Role:         entity.RoleManager,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Manager %s creado (%s)\n", user.Email, user.ID)
}
