package main

import (
	"database/sql"
	"log"
	"os"

	"concierge/internal/interfaces"
	"concierge/internal/pkg/caching"
	"concierge/internal/pkg/limiter"
	"concierge/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired("DB_DSN")
	if err != nil {
		log.Fatal(err)
	}

	container := NewContainer(vs)

	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(container),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob(container *do.Injector) *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			cronRunner := cron.New()

			expirationJob, err := NewExpirationJob(container)
			if err != nil {
				return err
			}
			expirationJob.Start(cronRunner)

			leaderboardJob, err := NewLeaderboardJob(container)
			if err != nil {
				return err
			}
			leaderboardJob.Start(cronRunner)

			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "db-readonly", func(i *do.Injector) (*bun.DB, error) {
		dsn := os.Getenv("DB_DSN_READONLY")
		if dsn == "" {
			dsn = os.Getenv("DB_DSN")
		}
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD_READONLY")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_DB", "REDIS_DB")
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_CACHE", "REDIS_CACHE")
	})

	do.ProvideNamed(injector, "redis-cache-readonly", func(i *do.Injector) (redis.UniversalClient, error) {
		if os.Getenv("CLUSTER_REDIS_CACHE_READONLY") == "" && os.Getenv("REDIS_CACHE_READONLY") == "" {
			return do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		}
		return initRedis("CLUSTER_REDIS_CACHE_READONLY", "REDIS_CACHE_READONLY")
	})

	do.ProvideNamed(injector, "redis-limiter", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_LIMITER", "REDIS_LIMITER")
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		return initRedis("CLUSTER_REDIS_MUTEX", "REDIS_MUTEX")
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}
		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (caching.ReadOnlyCache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache-readonly")
		if err != nil {
			return nil, err
		}
		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-limiter")
		if err != nil {
			return nil, err
		}
		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}
		return redsync.New(goredis.NewPool(dbRedis)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceHotel, error) {
		return services.NewServiceHotel(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceNotifier, error) {
		return services.NewServiceNotifier(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceProgram, error) {
		return services.NewServiceProgram(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLoyalty, error) {
		return services.NewServiceLoyalty(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceSweeper, error) {
		return services.NewServiceSweeper(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceAnalytics, error) {
		return services.NewServiceAnalytics(injector)
	})

	return injector
}

func initRedis(clusterEnv string, env string) (redis.UniversalClient, error) {
	clusterRedisURL := os.Getenv(clusterEnv)
	if clusterRedisURL != "" {
		clusterOpts, err := redis.ParseClusterURL(clusterRedisURL)
		if err != nil {
			return nil, err
		}
		return redis.NewClusterClient(clusterOpts), nil
	}
	return db.InitRedis(&db.RedisConfig{
		URL: os.Getenv(env),
	})
}
