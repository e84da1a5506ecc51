package facultysearch

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig marks configuration that cannot run.
var ErrInvalidConfig = errors.New("invalid configuration")

const cppOrigin = "https://www.cpp.edu"

// Department is a preset crawl: where to start and how many profiles to
// collect out of the known total.
type Department struct {
	Seed         string
	NumTargets   int
	TotalTargets int
}

// Departments are the built-in presets, selectable with -dept.
var Departments = map[string]Department{
	"bio": {Seed: cppOrigin + "/sci/biological-sciences/index.shtml", NumTargets: 10, TotalTargets: 10},
	"civ": {Seed: cppOrigin + "/engineering/ce/index.shtml", NumTargets: 10, TotalTargets: 25},
	"bus": {Seed: cppOrigin + "/cba/international-business-marketing/index.shtml", NumTargets: 10, TotalTargets: 22},
}

// DepartmentNames returns the preset keys, sorted.
func DepartmentNames() []string {
	names := make([]string, 0, len(Departments))
	for k := range Departments {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Config holds every setting of a run.
type Config struct {
	SeedURL        string
	BaseOrigin     string
	NumTargets     int
	SameSite       bool
	TargetSelector string

	IndexNGram     int
	QueryNGram     int
	ResultsPerPage int

	DatabaseURL    string
	UserAgent      string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string
	HTTPAddr  string
}

// LoadConfig reads envFile if it exists (empty means ".env"), then the
// process environment, filling in defaults.
func LoadConfig(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	bus := Departments["bus"]
	cfg := &Config{
		SeedURL:        getEnv("FACULTY_SEED_URL", bus.Seed),
		BaseOrigin:     getEnv("FACULTY_BASE_ORIGIN", ""),
		TargetSelector: getEnv("FACULTY_TARGET_SELECTOR", DefaultTargetSelector),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://"+defaultSQLitePath),
		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
	}

	var err error
	if cfg.NumTargets, err = getEnvInt("FACULTY_NUM_TARGETS", bus.NumTargets); err != nil {
		return nil, err
	}
	if cfg.SameSite, err = getEnvBool("FACULTY_SAME_SITE", false); err != nil {
		return nil, err
	}
	if cfg.IndexNGram, err = getEnvInt("FACULTY_INDEX_NGRAM", DefaultNGram); err != nil {
		return nil, err
	}
	if cfg.QueryNGram, err = getEnvInt("FACULTY_QUERY_NGRAM", DefaultNGram); err != nil {
		return nil, err
	}
	if cfg.ResultsPerPage, err = getEnvInt("FACULTY_RESULTS_PER_PAGE", DefaultResultsPerPage); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDepartment switches the seed and target count to a preset.
func (c *Config) ApplyDepartment(name string) error {
	d, ok := Departments[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: unknown department %q (have %s)", ErrInvalidConfig, name, strings.Join(DepartmentNames(), ", "))
	}
	c.SeedURL = d.Seed
	c.NumTargets = d.NumTargets
	return nil
}

// Validate rejects settings no phase can run with. BaseOrigin is derived
// from SeedURL when unset.
func (c *Config) Validate() error {
	if _, err := BaseOrigin(c.SeedURL); err != nil {
		return fmt.Errorf("%w: seed url: %v", ErrInvalidConfig, err)
	}
	if c.BaseOrigin == "" {
		c.BaseOrigin, _ = BaseOrigin(c.SeedURL)
	} else if _, err := BaseOrigin(c.BaseOrigin); err != nil {
		return fmt.Errorf("%w: base origin: %v", ErrInvalidConfig, err)
	}
	for name, v := range map[string]int{
		"target count":     c.NumTargets,
		"index gram size":  c.IndexNGram,
		"query gram size":  c.QueryNGram,
		"results per page": c.ResultsPerPage,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, name, v)
		}
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, val)
	}
	return n, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, val)
	}
	return b, nil
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, val)
	}
	return d, nil
}
