package factory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-redis/redis"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	"tokentrip-marketplace/cache"
	"tokentrip-marketplace/config"
	"tokentrip-marketplace/journal"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/signer"
	"tokentrip-marketplace/sui"
	"tokentrip-marketplace/vault"
)

var (
	db  sync.Once
	rc  sync.Once
	sc  sync.Once
	sg  sync.Once
	jn  sync.Once
	chc sync.Once
)

// Factory hands out the process-wide clients. Each one is created on first
// use; a client that cannot be created is fatal.
type Factory interface {
	DB(ctx context.Context) *sql.DB
	Redis(ctx context.Context) *redis.Client
	Sui(ctx context.Context) sui.Client
	Signer(ctx context.Context) signer.Signer
	Journal(ctx context.Context) journal.Journal
	Cache(ctx context.Context) *cache.Cache
}

type factory struct {
	db      *sql.DB
	redis   *redis.Client
	sui     sui.Client
	signer  signer.Signer
	journal journal.Journal
	cache   *cache.Cache
}

func NewFactory() Factory {
	return &factory{}
}

func (f *factory) DB(ctx context.Context) *sql.DB {
	var dbError error
	db.Do(func() {
		sqlDB, err := sql.Open("mysql", viper.GetString(config.DBURL))
		if err != nil {
			dbError = err
			return
		}
		f.db = sqlDB
	})

	if dbError != nil {
		logger.Fatalf(ctx, "Could not establish connection to the DB: %+v", dbError)
	}

	return f.db
}

func (f *factory) Redis(ctx context.Context) *redis.Client {
	rc.Do(func() {
		f.redis = redis.NewClient(&redis.Options{
			Addr:     viper.GetString(config.RedisAddress),
			Password: viper.GetString(config.RedisPassword),
			DB:       viper.GetInt(config.RedisDB),
		})
		if err := f.redis.WithContext(ctx).Ping().Err(); err != nil {
			logger.Fatalf(ctx, "redis: unable to reach %s: %+v", viper.GetString(config.RedisAddress), err)
		}
	})
	return f.redis
}

func (f *factory) Sui(ctx context.Context) sui.Client {
	sc.Do(func() {
		c, err := sui.Dial(ctx, viper.GetString(config.SuiRPCURL), viper.GetString(config.SuiGraphQLURL))
		if err != nil {
			logger.Fatalf(ctx, "sui: unable to dial %s: %+v", viper.GetString(config.SuiRPCURL), err)
		}
		f.sui = c
	})
	return f.sui
}

// Signer dials the wallet bridge. Its bearer token comes from Vault when a
// Vault address is configured, else from signer.token.
func (f *factory) Signer(ctx context.Context) signer.Signer {
	sg.Do(func() {
		token := viper.GetString(config.SignerToken)
		if addr := viper.GetString(config.VaultAddress); addr != "" {
			v, err := vault.New(viper.GetString(config.VaultToken), addr, viper.GetString(config.VaultSignerPath))
			if err != nil {
				logger.Fatalf(ctx, "signer: error creating vault client: %+v", err)
			}
			if token, err = v.SignerToken(); err != nil {
				logger.Fatalf(ctx, "signer: %+v", err)
			}
		}
		b, err := signer.NewBridge(ctx, viper.GetString(config.SignerURL), token)
		if err != nil {
			logger.Fatalf(ctx, "signer: unable to dial bridge: %+v", err)
		}
		f.signer = b
	})
	return f.signer
}

// Journal is backed by MySQL when a DSN is configured and discards entries
// otherwise.
func (f *factory) Journal(ctx context.Context) journal.Journal {
	jn.Do(func() {
		dsn := viper.GetString(config.DBURL)
		if dsn == "" {
			logger.Warnf(ctx, "journal: no database configured, submissions are not journaled")
			f.journal = journal.Nop()
			return
		}
		if viper.GetBool(config.JournalMigrate) {
			if err := journal.Migrate(dsn); err != nil {
				logger.Fatalf(ctx, "journal: %+v", err)
			}
		}
		f.journal = journal.New(f.DB(ctx))
	})
	return f.journal
}

func (f *factory) Cache(ctx context.Context) *cache.Cache {
	chc.Do(func() {
		ttl := time.Duration(viper.GetInt(config.CacheTTL)) * time.Second
		var store cache.Store = cache.NewMemoryStore()
		if viper.GetString(config.CacheBackend) == "redis" {
			store = cache.NewRedisStore(f.Redis(ctx))
		}
		f.cache = cache.New(store, ttl)
	})
	return f.cache
}
