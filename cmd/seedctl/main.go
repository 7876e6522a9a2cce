package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/models"
)

// seedctl provisions test accounts straight into the profile store, without
// a running server. Seeding is idempotent: accounts that already exist are
// reported as skipped, never modified.
//
//	seedctl seed -role manager -count 2 -org org-1 -password test123
//	seedctl all -org org-1 -password test123
//	seedctl operator -username platform.root -password secret
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	log := logger.NewLogger("mintid-seedctl")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err = storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	operators := identity.NewOperators([]identity.Operator{
		{Username: cfg.App.OperatorUsername, Email: cfg.App.OperatorEmail},
	})

	services, err := service.NewServices(storages, cfg.App, operators, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	switch os.Args[1] {
	case "seed":
		err = runSeed(ctx, services, os.Args[2:])
	case "all":
		err = runSeedAll(ctx, services, os.Args[2:])
	case "operator":
		err = runSeedOperator(ctx, services, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func runSeed(ctx context.Context, services *service.Services, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	role := fs.String("role", "", "role to seed (super_admin, org_admin, manager, employee)")
	count := fs.Int("count", 1, "number of accounts")
	org := fs.String("org", "", "organization ID")
	password := fs.String("password", "", "password for the seeded accounts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := services.SeedService.Seed(ctx, models.SeedPlan{
		Role:           models.Role(*role),
		Count:          *count,
		OrganizationID: *org,
		Password:       *password,
	})
	if err != nil {
		return err
	}

	printResult(string(models.Role(*role)), result)
	return nil
}

func runSeedAll(ctx context.Context, services *service.Services, args []string) error {
	fs := flag.NewFlagSet("all", flag.ExitOnError)
	count := fs.Int("count", 1, "number of accounts per role")
	org := fs.String("org", "", "organization ID")
	password := fs.String("password", "", "password for the seeded accounts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, role := range []models.Role{
		models.RoleSuperAdmin,
		models.RoleOrgAdmin,
		models.RoleManager,
		models.RoleEmployee,
	} {
		result, err := services.SeedService.Seed(ctx, models.SeedPlan{
			Role:           role,
			Count:          *count,
			OrganizationID: *org,
			Password:       *password,
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", role, err)
		}
		printResult(string(role), result)
	}

	return nil
}

func runSeedOperator(ctx context.Context, services *service.Services, args []string) error {
	fs := flag.NewFlagSet("operator", flag.ExitOnError)
	username := fs.String("username", "", "operator username (must be on the configured allow-list)")
	password := fs.String("password", "", "operator password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := services.SeedService.SeedOperator(ctx, *username, *password)
	if err != nil {
		return err
	}

	fmt.Printf("operator: %s (user_id %s)\n", profile.Username, profile.UserID)
	return nil
}

func printResult(role string, result models.SeedResult) {
	fmt.Printf("%s: created %v, skipped %v\n", role, result.Created, result.Skipped)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: seedctl <seed|all|operator> [flags]")
}
