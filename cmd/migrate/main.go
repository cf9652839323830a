package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/repository/postgres"
	"github.com/pratik-mahalle/bizdesk/migrations"
)

func main() {
	status := flag.Bool("status", false, "list migrations and whether they have been applied")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database successfully\n", db.Driver())

	migrationsFS, err := migrations.GetFS(db.Driver())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load migrations: %v\n", err)
		os.Exit(1)
	}

	if *status {
		if err := printStatus(db, migrationsFS); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read migration status: %v\n", err)
			os.Exit(1)
		}
		return
	}

	applied, err := postgres.RunMigrations(db, migrationsFS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("\nApplied %d migration(s) successfully!\n", applied)
}

func printStatus(db *postgres.DB, migrationsFS fs.FS) error {
	applied, err := getMigratedVersions(db)
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrationsFS, ".")
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		mark := " "
		if applied[name] {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, name)
	}
	return nil
}

func getMigratedVersions(db *postgres.DB) (map[string]bool, error) {
	migrated := make(map[string]bool)

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		// Nothing has been applied before the tracking table exists.
		return migrated, nil
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrated[name] = true
	}

	return migrated, rows.Err()
}
