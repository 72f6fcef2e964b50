package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/config"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/db"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/logger"
	"github.com/JGP1992/theitaliancorner-sub001/pkg/migrate"
)

type options struct {
	dir      string
	name     string
	version  string
	embedded bool
}

func (o options) source() migrate.Source {
	if o.embedded {
		return migrate.EmbeddedSource()
	}
	return migrate.DiskSource(o.dir)
}

type offlineCommand func(opts options) (string, error)

type dbCommand func(ctx context.Context, sqlDB *sql.DB, opts options) error

var offlineCommands = map[string]offlineCommand{
	"create": func(opts options) (string, error) {
		if opts.name == "" {
			return "", fmt.Errorf("-name is required for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return "", err
		}
		return "created " + path, nil
	},
	"validate": func(opts options) (string, error) {
		var err error
		if opts.embedded {
			err = migrate.ValidateFS(migrate.Embedded, "migrations")
		} else {
			err = migrate.ValidateDir(opts.dir)
		}
		if err != nil {
			return "", err
		}
		return "migrations valid", nil
	},
}

var dbCommands = map[string]dbCommand{
	"up":        gooseCommand("up"),
	"up-by-one": gooseCommand("up-by-one"),
	"down":      gooseCommand("down"),
	"redo":      gooseCommand("redo"),
	"status":    gooseCommand("status"),
	"version": func(ctx context.Context, sqlDB *sql.DB, opts options) error {
		if opts.version == "" {
			return fmt.Errorf("-version is required for version")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, opts.source(), opts.version)
	},
}

func gooseCommand(name string) dbCommand {
	return func(ctx context.Context, sqlDB *sql.DB, opts options) error {
		return migrate.Run(ctx, sqlDB, opts.source(), name)
	}
}

func main() {
	_ = godotenv.Load()

	var opts options
	cmd := flag.String("cmd", "up", "one of: "+strings.Join(commandNames(), ", "))
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.BoolVar(&opts.embedded, "embedded", false, "use the migrations compiled into the binary")
	flag.Parse()

	if err := run(*cmd, opts); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(cmd string, opts options) error {
	if offline, ok := offlineCommands[cmd]; ok {
		msg, err := offline(opts)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		fmt.Println(msg)
		return nil
	}
	online, ok := dbCommands[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"cmd":      cmd,
		"embedded": opts.embedded,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}

	logg.Info(ctx, "migrate.start")
	if err := online(ctx, sqlDB, opts); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		return fmt.Errorf("%s: %w", cmd, err)
	}
	logg.Info(ctx, "migrate.complete")
	return nil
}

func commandNames() []string {
	names := make([]string, 0, len(offlineCommands)+len(dbCommands))
	for name := range offlineCommands {
		names = append(names, name)
	}
	for name := range dbCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
