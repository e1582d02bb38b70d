package config

import (
	"github.com/spf13/viper"
)

const (
	DBURL = "database.mysql"

	SuiRPCURL        = "sui.rpc_url"
	SuiGraphQLURL    = "sui.graphql_url"
	PackageID        = "sui.package_id"
	TreasuryID       = "sui.treasury_id"
	StakingPoolID    = "sui.staking_pool_id"
	AdminCapID       = "sui.admin_cap_id"
	VIPRegistryID    = "sui.vip_registry_id"
	TKTPackageID     = "sui.tkt_package_id"
	TKTTreasuryCapID = "sui.tkt_treasury_cap_id"
	DAOPackageID     = "sui.dao_package_id"
	DAOID            = "sui.dao_id"
	DAOTreasuryID    = "sui.dao_treasury_id"
	MaxMergeCoins    = "sui.max_merge_coins"
	EventPageSize    = "sui.event_page_size"
	AdminAddress     = "sui.admin_address"

	SignerURL       = "signer.url"
	SignerGasBudget = "signer.gas_budget"
	SignerToken     = "signer.token"

	VaultAddress    = "vault.address"
	VaultToken      = "vault.token"
	VaultSignerPath = "vault.signer_path"

	Port = "server.port"

	JournalMigrate = "journal.migrate"

	CacheBackend  = "cache.backend"
	CacheTTL      = "cache.ttl_seconds"
	RedisAddress  = "redis.address"
	RedisPassword = "redis.password"
	RedisDB       = "redis.db"

	LogLevel = "log.level"
)

func init() {
	viper.AutomaticEnv()
	viper.SetDefault(Port, ":9000")
	viper.SetDefault(SuiRPCURL, "https://fullnode.devnet.sui.io:443")
	viper.SetDefault(SuiGraphQLURL, "https://sui-devnet.mystenlabs.com/graphql")
	viper.SetDefault(MaxMergeCoins, 255)
	viper.SetDefault(EventPageSize, 50)
	viper.SetDefault(SignerGasBudget, 100000000)
	viper.SetDefault(VaultSignerPath, "secret/tokentrip/signer")
	viper.SetDefault(CacheBackend, "memory")
	viper.SetDefault(CacheTTL, 30)
	viper.SetDefault(JournalMigrate, true)
	viper.SetDefault(LogLevel, "info")
}
