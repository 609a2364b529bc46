package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/glorpus-work/solpkg/internal/logger"
	"github.com/glorpus-work/solpkg/pkg/config"
	"github.com/glorpus-work/solpkg/pkg/feed"
	pkghttp "github.com/glorpus-work/solpkg/pkg/http"
	"github.com/glorpus-work/solpkg/pkg/solution"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	SolutionPath *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

var (
	colorSelected = color.New(color.FgGreen)
	colorDisabled = color.New(color.Faint)
	colorHeader   = color.New(color.Bold)
	colorWarn     = color.New(color.FgYellow)
)

// loadConfig loads the configuration, applies the global flags and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if NoColor != nil && *NoColor {
		cfg.Settings.ColorOutput = false
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logFormat := logger.FormatText
	if cfg.Settings.OutputFormat == formatJSON {
		logFormat = logger.FormatJSON
	}
	logger.InitLogger(cfg.Settings.LogLevel, logFormat)
	if !cfg.Settings.ColorOutput {
		color.NoColor = true
	}
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// LoadConfig reports the empty path with a clearer error
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// session holds what most commands load before doing anything.
type session struct {
	cfg   *config.Config
	sol   *solution.Solution
	feeds *feed.Manager
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	sol, err := loadSolution(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, sol: sol, feeds: loadFeedManager(cfg)}, nil
}

func (s *session) jsonOutput() bool {
	return s.cfg.Settings.OutputFormat == formatJSON
}

func loadFeedManager(cfg *config.Config) *feed.Manager {
	m := feed.NewManager(cfg.FeedSources(), cfg.GetCacheDir(), pkghttp.NewClient(cfg.Settings.HTTPTimeout))
	m.SetCacheTTL(cfg.Settings.CacheTTL)
	return m
}

func loadSolution(cfg *config.Config) (*solution.Solution, error) {
	path := cfg.Settings.Solution
	if SolutionPath != nil && *SolutionPath != "" {
		path = *SolutionPath
	}
	sol, err := solution.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load solution: %w", err)
	}
	return sol, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
