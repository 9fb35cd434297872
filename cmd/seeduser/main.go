// cmd/seeduser/main.go: crea o actualiza el usuario administrador inicial.
// Uso: ADMIN_CORREO=... ADMIN_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"jerosmotos/internal/config"
	"jerosmotos/internal/infra"
	"jerosmotos/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	correo := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_CORREO")))
	password := os.Getenv("ADMIN_PASSWORD")
	nombre := os.Getenv("ADMIN_NOMBRE")
	if nombre == "" {
		nombre = "Administrador"
	}
	if correo == "" || len(password) < 8 {
		log.Fatal().Msg("ADMIN_CORREO y ADMIN_PASSWORD (mínimo 8 caracteres) son obligatorios")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (nombre, correo, password_hash, rol, activo, created_at, updated_at)
		VALUES (?, ?, ?, ?, true, NOW(), NOW())
		ON CONFLICT (correo) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    nombre = EXCLUDED.nombre,
		    rol = EXCLUDED.rol,
		    activo = true,
		    updated_at = NOW()
	`, nombre, correo, string(hash), model.RolAdministrador)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("insert error")
	}
	log.Info().Str("correo", correo).Msg("usuario administrador creado/actualizado")
}
