package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// AccountCapacityKey is the size in bytes of the data buffer of every new
	// program account
	AccountCapacityKey = "ACCOUNT_CAPACITY"
	// ProgramIDKey is the hex encoded 32 bytes identifier of the program
	ProgramIDKey = "PROGRAM_ID"
	// TicketPriceKey is the amount of BTC a deposit must carry for each spin
	// it entitles to
	TicketPriceKey = "TICKET_PRICE"
	// SignerTypeKey is used to switch between the supported signing subsystems
	SignerTypeKey = "SIGNER_TYPE"
	// SignerURLKey is the endpoint of the remote signer, required by the
	// webhook signer type
	SignerURLKey = "SIGNER_URL"
	// SignerSecretKey is the optional secret used to sign the bearer tokens
	// sent to the remote signer
	SignerSecretKey = "SIGNER_SECRET"
	// SignerTimeoutKey is the timeout in seconds for requests to the remote signer
	SignerTimeoutKey = "SIGNER_TIMEOUT"
	// RateLimitKey is the max number of instructions per second accepted by
	// the HTTP interface
	RateLimitKey = "RATE_LIMIT"
	// StatsIntervalKey defines interval in seconds for printing memory
	// statistics, 0 disables them
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation    = "db"
	StatsLocation = "stats"

	DBBadger   = "badger"
	DBInMemory = "inmemory"

	SignerQueue   = "queue"
	SignerWebhook = "webhook"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("luckyspind", false)

	supportedDBTypes = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
	supportedSignerTypes = map[string]struct{}{
		SignerQueue:   {},
		SignerWebhook: {},
	}
)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("LUCKYSPIN")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ListeningPortKey, 9000)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(AccountCapacityKey, 10240)
	vip.SetDefault(ProgramIDKey, strings.Repeat("00", 32))
	vip.SetDefault(TicketPriceKey, "0.0001")
	vip.SetDefault(SignerTypeKey, SignerQueue)
	vip.SetDefault(SignerTimeoutKey, 15)
	vip.SetDefault(RateLimitKey, 100)
	vip.SetDefault(StatsIntervalKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetTicketPrice returns the configured ticket price in satoshis.
func GetTicketPrice() (uint64, error) {
	return ticketPriceInSats(GetString(TicketPriceKey))
}

// GetProgramID returns the configured program identifier.
func GetProgramID() [32]byte {
	var id [32]byte
	buf, _ := hex.DecodeString(GetString(ProgramIDKey))
	copy(id[:], buf)
	return id
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, ok := supportedDBTypes[GetString(DBTypeKey)]; !ok {
		return fmt.Errorf("unsupported %s %s", DBTypeKey, GetString(DBTypeKey))
	}

	signerType := GetString(SignerTypeKey)
	if _, ok := supportedSignerTypes[signerType]; !ok {
		return fmt.Errorf("unsupported %s %s", SignerTypeKey, signerType)
	}
	if signerType == SignerWebhook && GetString(SignerURLKey) == "" {
		return fmt.Errorf("%s is required by %s signer", SignerURLKey, signerType)
	}

	if GetInt(AccountCapacityKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", AccountCapacityKey)
	}

	programID, err := hex.DecodeString(GetString(ProgramIDKey))
	if err != nil || len(programID) != 32 {
		return fmt.Errorf("%s must be a 32 bytes hex string", ProgramIDKey)
	}

	if _, err := GetTicketPrice(); err != nil {
		return err
	}

	if GetInt(RateLimitKey) <= 0 {
		return fmt.Errorf("%s must be greater than zero", RateLimitKey)
	}

	return nil
}

func ticketPriceInSats(btcPrice string) (uint64, error) {
	amount, err := decimal.NewFromString(btcPrice)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", TicketPriceKey, err)
	}
	price := amount.Mul(decimal.New(1, 8))
	if !price.IsInteger() || !price.IsPositive() {
		return 0, fmt.Errorf(
			"%s must be a positive amount with at most 8 decimals", TicketPriceKey,
		)
	}
	return price.BigInt().Uint64(), nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}
	if GetInt(StatsIntervalKey) > 0 {
		return makeDirectoryIfNotExists(filepath.Join(datadir, StatsLocation))
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
