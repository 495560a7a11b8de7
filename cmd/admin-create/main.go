package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"partner-onboarding.backend/internal/config"
	"partner-onboarding.backend/internal/domain/entities"
	"partner-onboarding.backend/internal/infrastructure/datasources/postgres"
	"partner-onboarding.backend/internal/infrastructure/identity"
	"partner-onboarding.backend/internal/infrastructure/models"
)

// AdminPasswordEnv lets the password stay out of shell history
const AdminPasswordEnv = "ADMIN_PASSWORD"

var openAdminDB = postgres.Open

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminSeeder interface {
	Seed(ctx context.Context, params entities.NewIdentityUser, role entities.IdentityRole) (*entities.IdentityUser, error)
}

type adminCreateDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminSeeder, io.Closer, error)
	getenv  func(string) string
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminCreateDeps() adminCreateDeps {
	return adminCreateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminSeeder, io.Closer, error) {
			db, err := openAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			if err := db.AutoMigrate(&models.IdentityUser{}); err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to migrate identity users: %w", err)
			}

			return identity.NewProvider(db, cfg.Identity.BcryptCost, cfg.Onboarding.MinPasswordLength), sqlDB, nil
		},
		getenv: os.Getenv,
		out:    os.Stdout,
	}
}

type adminFlags struct {
	email    string
	password string
	name     string
}

func parseAdminFlags(args []string, getenv func(string) string) (adminFlags, error) {
	fs := flag.NewFlagSet("admin-create", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	passwordFlag := fs.String("password", "", "admin password (or "+AdminPasswordEnv+")")
	nameFlag := fs.String("name", "", "display name (optional)")
	if err := fs.Parse(args); err != nil {
		return adminFlags{}, err
	}

	f := adminFlags{
		email:    strings.TrimSpace(*emailFlag),
		password: *passwordFlag,
		name:     strings.TrimSpace(*nameFlag),
	}
	if f.email == "" {
		return adminFlags{}, fmt.Errorf("--email is required")
	}
	if f.password == "" {
		f.password = getenv(AdminPasswordEnv)
	}
	if f.password == "" {
		return adminFlags{}, fmt.Errorf("--password or %s is required", AdminPasswordEnv)
	}
	if f.name == "" {
		f.name = "Administrator"
	}
	return f, nil
}

func runAdminCreate(args []string, deps adminCreateDeps) error {
	def := defaultAdminCreateDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	flags, err := parseAdminFlags(args, deps.getenv)
	if err != nil {
		return err
	}

	cfg := deps.loadCfg()
	seeder, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	user, err := seeder.Seed(context.Background(), entities.NewIdentityUser{
		Email:       flags.email,
		Password:    flags.password,
		DisplayName: flags.name,
	}, entities.IdentityRoleAdmin)
	if err != nil {
		return fmt.Errorf("failed creating admin %s: %w", flags.email, err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin identity user")
	_, _ = fmt.Fprintf(deps.out, "uid=%s\n", user.UID)
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", user.Role)
	return nil
}

func main() {
	if err := runAdminCreate(os.Args[1:], defaultAdminCreateDeps()); err != nil {
		log.Fatal(err)
	}
}
