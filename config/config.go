package config

import (
	_ "embed"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"icequeen/bot"
	"icequeen/internal/db"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configByte []byte

type TokenConfig struct {
	Address  string `yaml:"address"`
	Decimals uint8  `yaml:"decimals"`
	Name     string `yaml:"name"`
}

type PoolConfig struct {
	Address string    `yaml:"address"`
	Tokens  [2]string `yaml:"tokens"`
}

type Config struct {
	Log string `yaml:"log"`
	App struct {
		Port    int    `yaml:"port"`
		JwtKey  string `yaml:"jwtkey"`
		Origins string `yaml:"origins"`
	} `yaml:"app"`

	Chain struct {
		Id          int64  `yaml:"id"`
		Rpc         string `yaml:"rpc"`
		Account     string `yaml:"account"`
		Concurrency int    `yaml:"concurrency"`
		Native      string `yaml:"native"`
		Governance  string `yaml:"governance"`
		Factory     struct {
			Address      string `yaml:"address"`
			InitCodeHash string `yaml:"initCodeHash"`
			Symbol       string `yaml:"symbol"`
			Decimals     uint8  `yaml:"decimals"`
		} `yaml:"factory"`
	} `yaml:"chain"`

	Tokens map[string]TokenConfig `yaml:"tokens"`
	Pools  []PoolConfig           `yaml:"pools"`

	Refresh struct {
		Spec      string        `yaml:"spec"`
		Report    string        `yaml:"report"`
		CacheTTL  time.Duration `yaml:"cacheTTL"`
		Retention time.Duration `yaml:"retention"`
	} `yaml:"refresh"`

	Telegram struct {
		ChatId string `yaml:"chatId"`
		Token  string `yaml:"token"`
	} `yaml:"telegram"`

	Db struct {
		User     string `yaml:"user"`
		Password string `yaml:"pwd"`
		IP       string `yaml:"ip"`
		Port     string `yaml:"port"`
		Scheme   string `yaml:"scheme"`
	} `yaml:"db"`

	Redis struct {
		IP       string `yaml:"ip"`
		Port     string `yaml:"port"`
		Password string `yaml:"pwd"`
		Db       int    `yaml:"db"`
	} `yaml:"redis"`
}

// NewConfig reads the embedded config.yaml, then applies overrides from the environment.
// envFiles are loaded with godotenv first; missing files are ignored.
func NewConfig(envFiles ...string) (*Config, error) {
	return parse(configByte, envFiles...)
}

func parse(b []byte, envFiles ...string) (*Config, error) {

	var conf Config

	err := yaml.Unmarshal(b, &conf)
	if err != nil {
		return nil, err
	}

	for _, f := range envFiles {
		if _, statErr := os.Stat(f); statErr != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	overrideFromEnv(&conf)

	return &conf, nil
}

func overrideFromEnv(conf *Config) {
	override(&conf.Chain.Rpc, "ICEQUEEN_RPC_URL")
	override(&conf.Chain.Account, "ICEQUEEN_ACCOUNT")
	override(&conf.App.JwtKey, "ICEQUEEN_JWT_KEY")
	override(&conf.Telegram.Token, "ICEQUEEN_TELEGRAM_TOKEN")
	override(&conf.Telegram.ChatId, "ICEQUEEN_TELEGRAM_CHAT_ID")
	override(&conf.Db.Password, "ICEQUEEN_DB_PASSWORD")
	override(&conf.Redis.Password, "ICEQUEEN_REDIS_PASSWORD")
}

func override(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func (c Config) LogLevel() (zerolog.Level, error) {

	level, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel, err // Default로는 Info 레벨 설정
	}

	return level, nil
}

func (c Config) ChainId() types.ChainId {
	return types.ChainId(c.Chain.Id)
}

// Token resolves a configured token by symbol
func (c Config) Token(symbol string) (types.Token, error) {
	tc, ok := c.Tokens[symbol]
	if !ok {
		return types.Token{}, fmt.Errorf("token %s not configured", symbol)
	}
	if !common.IsHexAddress(tc.Address) {
		return types.Token{}, fmt.Errorf("token %s: invalid address %q", symbol, tc.Address)
	}
	return types.NewToken(c.ChainId(), tc.Address, tc.Decimals, symbol, tc.Name), nil
}

func (c Config) Native() (types.Token, error) {
	return c.Token(c.Chain.Native)
}

func (c Config) Governance() (types.Token, error) {
	return c.Token(c.Chain.Governance)
}

// StakingPools is the configured reward pool list, in file order
func (c Config) StakingPools() ([]staking.PoolInfo, error) {
	pools := make([]staking.PoolInfo, 0, len(c.Pools))
	for i, p := range c.Pools {
		if !common.IsHexAddress(p.Address) {
			return nil, fmt.Errorf("pools[%d]: invalid address %q", i, p.Address)
		}
		var tokens [2]types.Token
		for j, symbol := range p.Tokens {
			t, err := c.Token(symbol)
			if err != nil {
				return nil, fmt.Errorf("pools[%d]: %w", i, err)
			}
			tokens[j] = t
		}
		pools = append(pools, staking.PoolInfo{
			StakingRewardAddress: common.HexToAddress(p.Address),
			Tokens:               tokens,
		})
	}
	return pools, nil
}

func (c Config) Factory() (types.Factory, error) {
	f := c.Chain.Factory
	if !common.IsHexAddress(f.Address) {
		return types.Factory{}, fmt.Errorf("factory: invalid address %q", f.Address)
	}
	return types.Factory{
		Address:           common.HexToAddress(f.Address),
		InitCodeHash:      common.HexToHash(f.InitCodeHash),
		LiquiditySymbol:   f.Symbol,
		LiquidityDecimals: f.Decimals,
	}, nil
}

// Account is the tracked wallet. nil when none is configured.
func (c Config) Account() (*common.Address, error) {
	if c.Chain.Account == "" {
		return nil, nil
	}
	if !common.IsHexAddress(c.Chain.Account) {
		return nil, fmt.Errorf("invalid account %q", c.Chain.Account)
	}
	addr := common.HexToAddress(c.Chain.Account)
	return &addr, nil
}

func (c Config) BotConfig() (*bot.TeleBotConfig, error) {

	chatId, err := strconv.ParseInt(c.Telegram.ChatId, 10, 64)
	if err != nil {
		return nil, err
	}

	return &bot.TeleBotConfig{
		Token:  c.Telegram.Token,
		ChatId: chatId,
	}, nil
}

func (c Config) MysqlConfig() *db.MysqlConfig {
	return db.NewMysqlConfig(c.Db.User, c.Db.Password, c.Db.IP, c.Db.Port, c.Db.Scheme)
}

func (c Config) RedisConfig() *db.RedisConfig {
	return db.NewRedisConfig(c.Redis.Password, c.Redis.IP, c.Redis.Port, c.Redis.Db)
}
