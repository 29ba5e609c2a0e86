package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/HerbHall/gangway/internal/config"
	"github.com/HerbHall/gangway/internal/netbox"
	"github.com/HerbHall/gangway/internal/onboard"
	"github.com/HerbHall/gangway/internal/server"
	"github.com/HerbHall/gangway/internal/store"
	"github.com/HerbHall/gangway/internal/version"
)

func main() {
	// Subcommand dispatch (before flag.Parse).
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "onboard":
			runOnboard(os.Args[2:])
			return
		case "serve":
			runServe(os.Args[2:])
			return
		case "version":
			fmt.Println(version.Info())
			return
		}
	}
	runServe(os.Args[1:])
}

// app holds the wired services shared by the serve and onboard commands.
type app struct {
	logger   *zap.Logger
	db       *store.SQLiteStore
	client   *netbox.Client
	pipeline *onboard.Pipeline
	tasks    *onboard.TaskStore
	addr     string
}

// bootstrap loads configuration and builds the logger, database,
// inventory client and onboarding pipeline.
func bootstrap(configPath string) (*app, error) {
	v, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := config.NewLogger(v)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if f := v.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded", zap.String("source", f))
	} else {
		logger.Warn("no configuration file found, using defaults")
	}

	dbPath := v.GetString("database.path")
	db, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	if err := db.Migrate(context.Background(), "onboard", onboard.Migrations()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database initialized", zap.String("path", dbPath))

	nbCfg := netbox.DefaultConfig()
	if err := config.UnmarshalKey(v, "netbox", &nbCfg); err != nil {
		db.Close()
		return nil, err
	}
	if nbCfg.URL == "" {
		db.Close()
		return nil, fmt.Errorf("netbox.url is not configured (set netbox.url or GANGWAY_NETBOX_URL)")
	}
	client := netbox.NewClient(nbCfg.URL, nbCfg.Token, nbCfg.Timeout)

	onboardCfg := onboard.DefaultConfig()
	if err := config.UnmarshalKey(v, "onboarding", &onboardCfg); err != nil {
		db.Close()
		return nil, err
	}

	creds := onboard.Credentials{
		Username: v.GetString("device.username"),
		Password: v.GetString("device.password"),
		SSHPort:  v.GetInt("device.ssh_port"),
	}

	var srvCfg server.Config
	if err := config.UnmarshalKey(v, "server", &srvCfg); err != nil {
		db.Close()
		return nil, err
	}

	return &app{
		logger:   logger,
		db:       db,
		client:   client,
		pipeline: onboard.NewPipeline(client, onboardCfg, creds, logger.Named("onboard")),
		tasks:    onboard.NewTaskStore(db.DB()),
		addr:     srvCfg.Addr(),
	}, nil
}

func (a *app) close() {
	a.db.Close()
	_ = a.logger.Sync()
}
