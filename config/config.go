// Package config loads ESME configuration from the environment, grounded
// on thrillee-aegisbox-distribution/internal/config/config.go's
// envconfig+godotenv pattern.
package config

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything an ESME needs to connect, bind, and operate,
// per spec.md section 6's External Interfaces / configuration surface.
type Config struct {
	SMSCHost string `envconfig:"SMSC_HOST" required:"true"`
	SMSCPort int    `envconfig:"SMSC_PORT" default:"2775"`

	SystemID   string `envconfig:"SYSTEM_ID" required:"true"`
	Password   string `envconfig:"PASSWORD"  required:"true"`
	SystemType string `envconfig:"SYSTEM_TYPE" default:""`

	BindMode          string `envconfig:"BIND_MODE" default:"transceiver"`
	InterfaceVersion  uint8  `envconfig:"INTERFACE_VERSION" default:"52"`
	AddrTon           uint8  `envconfig:"ADDR_TON" default:"0"`
	AddrNpi           uint8  `envconfig:"ADDR_NPI" default:"0"`
	AddressRange      string `envconfig:"ADDRESS_RANGE" default:""`

	EnquireLinkInterval time.Duration `envconfig:"ENQUIRE_LINK_INTERVAL" default:"55s"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"       default:"20s"`
	BindTimeout         time.Duration `envconfig:"BIND_TIMEOUT"          default:"15s"`

	ReconnectInitial time.Duration `envconfig:"RECONNECT_INITIAL" default:"1s"`
	ReconnectMax     time.Duration `envconfig:"RECONNECT_MAX"     default:"60s"`
	ThrottleInitial  time.Duration `envconfig:"THROTTLE_INITIAL"  default:"1s"`
	ThrottleMax      time.Duration `envconfig:"THROTTLE_MAX"      default:"30s"`

	MaxInFlight     int `envconfig:"MAX_IN_FLIGHT" default:"10"`
	MaxPDUSize      int `envconfig:"MAX_PDU_SIZE"  default:"262144"`

	DefaultEncoding string `envconfig:"DEFAULT_ENCODING" default:"gsm7"`

	ClientID string `envconfig:"CLIENT_ID" default:""`
}

// Load reads Config from the environment, loading a .env file first if
// one is present, per the aegisbox config loader's shape.
func Load() (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, skipping: %v", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.ClientID == "" {
		cfg.ClientID = uuid.NewString()
	}

	return &cfg, nil
}
