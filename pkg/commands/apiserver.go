package commands

import (
	"context"

	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/zonekit/zonekit/pkg/apiserver"
	"github.com/zonekit/zonekit/pkg/backend"
	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/rand"
	"github.com/zonekit/zonekit/pkg/version"
)

type apiServerCommand struct{}

func (s *apiServerCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalHandler(context.Background())

	log := logrus.WithField("command", "api-server")

	log.Infof("version: %v", version.Get())

	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return err
	}

	back, err := backend.NewBackend(database, backend.Options{
		DefaultNameServers:   c.StringSlice("nameservers"),
		InviteMaxAgeSeconds:  c.Int64("invite-max-age"),
		PurgeIntervalSeconds: c.Int64("invite-purge-interval"),
	})
	if err != nil {
		return err
	}

	secret := c.String("jwt-secret")
	if secret == "" {
		// Fine for a single instance; tokens won't survive a restart.
		secret = rand.StringWithAll(32)
		log.Warn("no jwt-secret configured, generated an ephemeral one")
	}

	apiServer := apiserver.NewAPIServer(ctx, log, apiserver.Config{
		Port:           c.Int("port"),
		JWTSecret:      secret,
		AllowedOrigins: c.StringSlice("allowed-origins"),
	})

	if err := apiServer.Start(back); err != nil {
		return err
	}

	return nil
}

func serverCommand() *cli.Command {
	cmd := apiServerCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server Port",
			EnvVars: []string{"ZONEKIT_PORT", "PORT"},
			Value:   4320,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite or mysql",
			EnvVars: []string{"ZONEKIT_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"ZONEKIT_SQL_DSN", "SQL_DSN"},
			Value:   "file:zonekit.sqlite?_pragma=foreign_keys(1)",
		},
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "Secret used to sign login tokens. Generated at startup when empty",
			EnvVars: []string{"ZONEKIT_JWT_SECRET", "JWT_SECRET"},
		},
		&cli.StringSliceFlag{
			Name:    "allowed-origins",
			Usage:   "Origins allowed by CORS. Empty allows all",
			EnvVars: []string{"ZONEKIT_ALLOWED_ORIGINS"},
		},
		&cli.StringSliceFlag{
			Name:    "nameservers",
			Usage:   "Informational nameserver list stored on newly created zones",
			EnvVars: []string{"ZONEKIT_NAMESERVERS"},
		},
		&cli.Int64Flag{
			Name:    "invite-max-age",
			Usage:   "How long, in seconds, a pending invite lives before being purged",
			EnvVars: []string{"ZONEKIT_INVITE_MAX_AGE"},
		},
		&cli.Int64Flag{
			Name:    "invite-purge-interval",
			Usage:   "How often, in seconds, the invite purger runs",
			EnvVars: []string{"ZONEKIT_INVITE_PURGE_INTERVAL"},
		},
	}

	return &cli.Command{
		Name:   "api-server",
		Usage:  "zonekit api server",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
