// Package config is for app wide settings
package config

import (
	_ "embed"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	// gslcDir is the root directory where gslc settings and database files live
	gslcDir string

	// defaultConfigPath is the path to a local/default config file
	defaultConfigPath string
)

var (
	// DefaultConfig is the default client config embedded with gslc and
	// installed on the first run
	//go:embed config.yaml
	DefaultConfig []byte
)

// RefGenomeConfig is one configured reference genome: where its feature and
// chromosome data live, and the default upstream/downstream flank width
// applied to UPSTREAM/DOWNSTREAM gene parts resolved against it.
type RefGenomeConfig struct {
	// DuckDB data source name for this genome's backing store.
	DSN string `mapstructure:"dsn"`

	// default upstream/downstream window size, in bp
	Flank int `mapstructure:"flank"`
}

// Config is the root-level settings struct, a mix of settings available in
// config.yaml and those available from the command line.
type Config struct {
	// the config file's version
	Version string `mapstructure:"version"`

	// name of the reference genome used when no refgenome pragma applies
	DefaultRefGenome string `mapstructure:"default-refgenome"`

	// configured reference genomes, keyed by name
	RefGenomes map[string]RefGenomeConfig `mapstructure:"refgenomes"`

	// DuckDB data source name for the sequence library
	LibraryDSN string `mapstructure:"library-dsn"`

	// gene name of the selection marker materialized by a MARKER_PART
	MarkerGeneName string `mapstructure:"marker-gene-name"`

	// margin, in bp, by which an approximate slice endpoint widens outward
	// before being projected onto genomic coordinates
	ApproxMargin int `mapstructure:"approx-margin"`

	// base URL of the external-part resolver service; empty disables it
	ExternalPartsURL string `mapstructure:"external-parts-url"`

	// base URL of the candidate proxy service; empty disables candidate lookup
	CandidateProxyURL string `mapstructure:"candidate-proxy-url"`

	// redis address used to cache candidate proxy responses; empty disables caching
	CandidateCacheAddr string `mapstructure:"candidate-cache-addr"`

	// how long a cached candidate proxy response remains valid
	CandidateCacheTTL time.Duration `mapstructure:"candidate-cache-ttl"`

	// user provided path to a linker-checker enzyme database, empty disables linker checks
	LinkerDB string `mapstructure:"linker-db"`
}

func initDataPaths(providedGslcDir string) (err error) {
	if providedGslcDir == "" {
		gslcDir = os.Getenv("GSLC_DATA_DIR")
		if gslcDir == "" {
			var home string
			home, err = homedir.Dir()
			if err != nil {
				return
			}
			gslcDir = filepath.Join(home, ".gslc")
		}
	} else {
		gslcDir = providedGslcDir
	}

	defaultConfigPath = filepath.Join(gslcDir, "config.yaml")
	return
}

// Setup checks that the gslc data directory exists, creating one and
// writing the default config file to it otherwise.
func Setup(providedGslcDir string) {
	if err := initDataPaths(providedGslcDir); err != nil {
		log.Fatal("error creating gslc data paths: ", err)
	}

	if _, err := os.Stat(gslcDir); os.IsNotExist(err) {
		if err = os.Mkdir(gslcDir, 0755); err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	}

	if isConfigFileNeeded(defaultConfigPath) {
		if err := os.WriteFile(defaultConfigPath, DefaultConfig, 0644); err != nil {
			log.Fatal(err)
		}
	}
}

func isConfigFileNeeded(configFile string) bool {
	_, err := os.Stat(configFile)
	if os.IsNotExist(err) {
		return true
	} else if err != nil {
		log.Fatal(err)
	}
	return false
}

// New returns a new Config populated from config.yaml in the gslc data
// directory, merged with an optional user-specified settings file.
func New() *Config {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(defaultConfigPath)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	if userConfig := viper.GetString("config"); userConfig != "" {
		viper.SetConfigFile(userConfig)
		if err := viper.MergeInConfig(); err != nil {
			log.Fatal(err)
		}

		file, err := os.Open(userConfig)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()

		userData := make(map[string]interface{})
		if err := yaml.NewDecoder(file).Decode(userData); err != nil {
			log.Fatal(err)
		}

		decoded := &Config{}
		if err := mapstructure.Decode(userData, decoded); err != nil {
			log.Fatal(err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("failed to decode settings file %s: %v", viper.ConfigFileUsed(), err)
	}
	return config
}

// Flank returns the configured flank width for a named reference genome, or
// fallback if the genome is not configured.
func (c *Config) Flank(refgenome string, fallback int) int {
	if rg, ok := c.RefGenomes[refgenome]; ok && rg.Flank > 0 {
		return rg.Flank
	}
	return fallback
}
