// Package main is the entry point for the catalog admin CLI.
// Admin accounts are never created through the public API; this tool
// seeds and manages them directly against the database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nutrisnack/catalog/internal/config"
	"github.com/nutrisnack/catalog/internal/domain"
	"github.com/nutrisnack/catalog/internal/repository"
	"github.com/nutrisnack/catalog/internal/repository/postgres"
	"github.com/nutrisnack/catalog/internal/repository/sqlite"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("NutriSnack Catalog Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user subcommand required (create, promote, demote)")
	}

	switch args[0] {
	case "create":
		return runUserCreate(args[1:])
	case "promote":
		return runUserSetAdmin(args[1:], true)
	case "demote":
		return runUserSetAdmin(args[1:], false)
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

func runUserCreate(args []string) error {
	fs := flag.NewFlagSet("user create", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	admin := fs.Bool("admin", false, "grant the admin role")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("--name, --email and --password are required")
	}
	if len(*password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	repos, cleanup, err := openDatabase(*configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(*name, *email, string(hash))
	user.IsAdmin = *admin

	if err := repos.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User created: id=%d email=%s admin=%v\n", user.ID, user.Email, user.IsAdmin)
	return nil
}

func runUserSetAdmin(args []string, isAdmin bool) error {
	fs := flag.NewFlagSet("user promote/demote", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	email := fs.String("email", "", "email of the user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	repos, cleanup, err := openDatabase(*configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := repos.Users.GetByEmail(ctx, *email)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.IsAdmin = isAdmin
	user.UpdatedAt = time.Now().UTC()

	if err := repos.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Printf("User updated: id=%d email=%s admin=%v\n", user.ID, user.Email, user.IsAdmin)
	return nil
}

// openDatabase connects to the configured backend, running migrations
// so the tool works against a fresh database.
func openDatabase(configPath string) (*repository.Repositories, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Database.Driver {
	case "sqlite":
		sqliteCfg := sqlite.DefaultConfig(cfg.Database.Path)
		db, err := sqlite.NewDB(ctx, sqliteCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewRepositories(db), func() { _ = db.Close() }, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewRepositories(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func printUsage() {
	fmt.Println(`NutriSnack Catalog Admin CLI

Usage:
  catalog-admin <command> [arguments]

Commands:
  user        Manage users (create, promote, demote)
  version     Print version information
  help        Show this help message

Examples:
  catalog-admin user create --name Admin --email admin@example.com --password secret123 --admin
  catalog-admin user promote --email user@example.com
  catalog-admin user demote --email user@example.com

Configuration is read the same way as the server: --config file or
CATALOG_* environment variables.`)
}
