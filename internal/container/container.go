// Package container builds the application's object graph from config.
package container

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/config"
	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	esinfra "github.com/oksasatya/go-session-profile/internal/infrastructure/elasticsearch"
	gcsinfra "github.com/oksasatya/go-session-profile/internal/infrastructure/gcs"
	"github.com/oksasatya/go-session-profile/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-session-profile/internal/infrastructure/postgres"
	rabbitinfra "github.com/oksasatya/go-session-profile/internal/infrastructure/rabbitmq"
	redisinfra "github.com/oksasatya/go-session-profile/internal/infrastructure/redis"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

// Container holds infra clients and the services wired on top of them.
// Optional clients (GCS, ES, Rabbit) stay nil when not configured.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	PG     *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	Users    repository.UserRepository
	Sessions repository.SessionStore
	Cookies  *helpers.SessionCookies

	Auth     *application.AuthService
	Gate     *application.Gate
	Profiles *application.ProfileService
}

// New connects every configured backend and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Cfg: cfg, Logger: logger}
	if err := c.connect(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.Wire()
	return c, nil
}

func (c *Container) connect(ctx context.Context) error {
	cfg := c.Cfg

	switch cfg.UserStore {
	case "memory":
		c.Logger.Warn("USER_STORE=memory: accounts are lost on restart")
		c.Users = memory.NewUserRepository()
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.PG = pool
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Users = pginfra.NewUserRepository(pool)
	default:
		return fmt.Errorf("unknown USER_STORE %q", cfg.UserStore)
	}

	rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	c.Redis = rdb

	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return fmt.Errorf("init gcs: %w", err)
		}
		c.GCS = gcs
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return fmt.Errorf("init elasticsearch: %w", err)
		}
		if err := helpers.EnsureESIndex(ctx, es, cfg.ESProfilesIndex, esinfra.ProfilesMapping); err != nil {
			// writes still work with dynamic mapping
			helpers.LogError(c.Logger, "profiles index bootstrap failed", err, nil)
		}
		c.ES = es
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQActivityQueue)
		if err != nil {
			// activity events are best effort; run without them
			helpers.LogError(c.Logger, "rabbitmq unavailable, activity events disabled", err, nil)
		} else {
			c.Rabbit = pub
		}
	}
	return nil
}

// Wire builds stores and services from whatever clients are set.
// Users and Redis must be non-nil.
func (c *Container) Wire() {
	cfg := c.Cfg

	c.Sessions = redisinfra.NewSessionStore(c.Redis, cfg.SessionTTL)
	c.Cookies = helpers.NewSessionCookies(cfg.SessionCookieName, cfg.CookieDomain, cfg.CookieSecure, cfg.SessionTTL,
		helpers.NewSessionSigner(cfg.SessionSecret))

	var avatars application.AvatarStore = application.InlineAvatarStore{}
	if c.GCS != nil {
		avatars = gcsinfra.NewAvatarStore(c.GCS, cfg.GCSBucket)
	}
	var idx application.ProfileIndex
	if c.ES != nil {
		idx = esinfra.NewProfileIndex(c.ES, cfg.ESProfilesIndex)
	}
	var pub application.ActivityPublisher
	if c.Rabbit != nil {
		pub = rabbitinfra.NewActivityPublisher(c.Rabbit)
	}

	c.Auth = application.NewAuthService(c.Users, c.Sessions, idx, pub, c.Logger, cfg.SaltRounds)
	c.Gate = application.NewGate(c.Users, c.Sessions, c.Logger)
	c.Profiles = application.NewProfileService(c.Users, avatars, idx, pub, c.Logger)
}

func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PG != nil {
		c.PG.Close()
	}
}
