package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "CHECKOUT_CONFIG_FILE"

type topics struct {
	CheckoutsSaved string `mapstructure:"checkouts_saved"`
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	TLS                brokerTLS `mapstructure:"tls"`
}

// Enabled reports whether checkout events should be published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type currency struct {
	Locale string `mapstructure:"locale"`
	Code   string `mapstructure:"code"`
}

// A CatalogProduct seeds the in-memory catalog. Price is a decimal string.
type CatalogProduct struct {
	ProductID   string `mapstructure:"product_id"`
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Price       string `mapstructure:"price"`
	CoverImage  string `mapstructure:"cover_image"`
}

type Config struct {
	LogLevel       slog.Level       `mapstructure:"log_level"`
	HTTPServerAddr string           `mapstructure:"http_server_addr"`
	SQLDB          string           `mapstructure:"sql_db"`
	Currency       currency         `mapstructure:"currency"`
	Broker         broker           `mapstructure:"broker"`
	Catalog        []CatalogProduct `mapstructure:"catalog"`
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads and decodes the config file at path. Unknown keys are
// rejected.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("currency.locale", "pt-BR")
	v.SetDefault("currency.code", "MZN")
	v.SetDefault("broker.topics.checkouts_saved", "checkouts-saved")

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	Currency:
	Locale=%q
	Code=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CheckoutsSaved=%q
	TLS:
		CAFile=%q

	Catalog:
	Products=%d

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		maskDSN(c.SQLDB),
		c.Currency.Locale,
		c.Currency.Code,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CheckoutsSaved,
		c.Broker.TLS.CAFile,
		len(c.Catalog),
	)
}

// maskDSN hides the password of a postgres URL. Key/value DSNs are hidden
// entirely.
func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "***"
	}
	return u.Redacted()
}
