package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// target names the Spanner database the migrations are applied to.
type target struct {
	project  string
	instance string
	database string
}

func (t target) projectPath() string  { return "projects/" + t.project }
func (t target) instancePath() string { return t.projectPath() + "/instances/" + t.instance }
func (t target) databasePath() string { return t.instancePath() + "/databases/" + t.database }

func main() {
	var t target
	flag.StringVar(&t.project, "project", envOr("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	flag.StringVar(&t.instance, "instance", envOr("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	flag.StringVar(&t.database, "database", envOr("SPANNER_DATABASE_ID", "menu-catalog-db"), "Spanner database ID")
	dir := flag.String("migrations", "migrations", "Directory containing migration SQL files")
	flag.Parse()

	emulator := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulator != "" {
		logger.Info("using spanner emulator", "host", emulator)
	}

	if err := migrate(context.Background(), t, *dir, emulator != ""); err != nil {
		logger.Error("migration failed", "database", t.databasePath(), "error", err)
		os.Exit(1)
	}
	logger.Info("migrations completed", "database", t.databasePath())
}

func migrate(ctx context.Context, t target, dir string, emulator bool) error {
	// Instances are only provisioned against the emulator; in a real project
	// they are managed outside this tool.
	if emulator {
		if err := ensureInstance(ctx, t); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	if err := ensureDatabase(ctx, admin, t); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	return applyMigrations(ctx, admin, t, dir)
}

func ensureInstance(ctx context.Context, t target) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: t.instancePath()})
	switch status.Code(err) {
	case codes.OK:
		logger.Info("instance exists", "instance", t.instance)
		return nil
	case codes.NotFound:
	default:
		return err
	}

	logger.Info("creating instance", "instance", t.instance)
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     t.projectPath(),
		InstanceId: t.instance,
		Instance: &instancepb.Instance{
			Config:      t.projectPath() + "/instanceConfigs/emulator-config",
			DisplayName: "Menu catalog (emulator)",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.Warn("instance creation did not complete cleanly", "error", err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, admin *database.DatabaseAdminClient, t target) error {
	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: t.databasePath()})
	switch status.Code(err) {
	case codes.OK:
		logger.Info("database exists", "database", t.database)
		return nil
	case codes.NotFound:
	default:
		return err
	}

	logger.Info("creating database", "database", t.database)
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          t.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", t.database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// applyMigrations runs every *.sql file in lexical order. Statements that
// create an object already present in the live schema are skipped, so the
// tool can be re-run against a migrated database.
func applyMigrations(ctx context.Context, admin *database.DatabaseAdminClient, t target, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		logger.Info("no migration files found", "dir", dir)
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		current, err := admin.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: t.databasePath()})
		if err != nil {
			return fmt.Errorf("failed to read current schema: %w", err)
		}

		all := splitDDLStatements(string(content))
		pending := pendingStatements(all, current.GetStatements())
		if len(pending) == 0 {
			logger.Info("migration already applied", "file", name)
			continue
		}

		logger.Info("applying migration", "file", name, "statements", len(pending), "skipped", len(all)-len(pending))
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   t.databasePath(),
			Statements: pending,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
