package iplookups

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	InstanceName string `mapstructure:"instance_name"`

	Environment Environment `mapstructure:"environment"`

	Databases Databases `mapstructure:"databases"`
	Cache     Cache     `mapstructure:"cache"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

type (
	// Databases are the binary backend files to attach. An empty path means
	// the category is not configured and stays absent in every result.
	// The ISP file also serves the organization category, there is no
	// separate organization file.
	Databases struct {
		GeoFile            string `mapstructure:"geo_file"             json:"geoFile"`
		ISPFile            string `mapstructure:"isp_file"             json:"ispFile"`
		DomainFile         string `mapstructure:"domain_file"          json:"domainFile"`
		ConnectionTypeFile string `mapstructure:"connection_type_file" json:"connectionTypeFile"`

		// IP2LocationFile selects the IP2Location provider for the location
		// category instead of a MaxMind city database.
		IP2LocationFile string `mapstructure:"ip2location_file" json:"ip2locationFile"`
	}

	Cache struct {
		// Size bounds the aggregate result cache. 0 disables result
		// memoization entirely, every lookup then consults the backends.
		Size int `mapstructure:"size" json:"size"`

		// MemoryCache gives each backend reader its own small read-through
		// cache, independent of the result cache above.
		MemoryCache     bool `mapstructure:"memory_cache"      json:"memoryCache"`
		MemoryCacheSize int  `mapstructure:"memory_cache_size" json:"memoryCacheSize"`
	}
)

// DefaultViper returns a new viper instance with all default values
// from Config set.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetDefault("instance_name", "")

	vip.SetDefault("environment", "local")

	vip.SetDefault("databases.geo_file", "")
	vip.SetDefault("databases.isp_file", "")
	vip.SetDefault("databases.domain_file", "")
	vip.SetDefault("databases.connection_type_file", "")
	vip.SetDefault("databases.ip2location_file", "")

	vip.SetDefault("cache.size", 10000)
	vip.SetDefault("cache.memory_cache", true)
	vip.SetDefault("cache.memory_cache_size", 4096)

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that the configuration is validated while loading and the
// developer does not have to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, _ ...viper.DecoderConfigOption) error {
	err := vip.Viper.Unmarshal(rawVal, viper.DecodeHook(allowedEnvironmentHookFunc()))
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err)
	}

	config, ok := rawVal.(*Config)
	if !ok {
		return fmt.Errorf("%w: could not cast to iplookups.Config", errConfigLoadFailed)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("%w: %w", errConfigLoadFailed, err)
	}

	return nil
}

func (conf *Config) validate() error {
	if conf.Cache.Size < 0 {
		return fmt.Errorf("%w: cache size must not be negative", ErrInvalidConfig)
	}

	if conf.Cache.MemoryCache && conf.Cache.MemoryCacheSize <= 0 {
		return fmt.Errorf("%w: memory cache size must be positive", ErrInvalidConfig)
	}

	if conf.Databases.GeoFile != "" && conf.Databases.IP2LocationFile != "" {
		return fmt.Errorf("%w: geo_file and ip2location_file are both set, the location category needs one provider", ErrInvalidConfig)
	}

	return nil
}

func allowedEnvironmentHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (interface{}, error) {
		if t != reflect.TypeOf(Environment("")) {
			return data, nil
		}

		env := Environments()
		if slices.Contains(env, Environment(data.(string))) {
			return data, nil
		}

		e := make([]string, 0, len(env))
		for _, env := range env {
			e = append(e, string(env))
		}

		return data, fmt.Errorf("value is not allowed, use one of: %s", strings.Join(e, ", ")) //nolint:err113,lll // accept dynamic error
	}
}
