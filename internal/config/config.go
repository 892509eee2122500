package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	reconerrors "coderecon/internal/errors"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = 1

// DefaultStateDir holds snapshots and config inside the scanned root.
const DefaultStateDir = ".coderecon"

// ConfigFileName is the config file inside the state dir.
const ConfigFileName = "config.toml"

// EnvPrefix prefixes environment overrides, e.g. CODERECON_EXTRACT_WORKERS.
const EnvPrefix = "CODERECON"

// Config represents the complete coderecon configuration
type Config struct {
	Version   int             `json:"version" toml:"version" mapstructure:"version"`
	StateDir  string          `json:"state_dir" toml:"state_dir" mapstructure:"state_dir"`
	Discovery DiscoveryConfig `json:"discovery" toml:"discovery" mapstructure:"discovery"`
	Extract   ExtractConfig   `json:"extract" toml:"extract" mapstructure:"extract"`
	Tests     TestConfig      `json:"tests" toml:"tests" mapstructure:"tests"`
	Hazards   HazardConfig    `json:"hazards" toml:"hazards" mapstructure:"hazards"`
	Signals   SignalConfig    `json:"signals" toml:"signals" mapstructure:"signals"`
	Topology  TopologyConfig  `json:"topology" toml:"topology" mapstructure:"topology"`
	Diff      DiffConfig      `json:"diff" toml:"diff" mapstructure:"diff"`
	Logging   LoggingConfig   `json:"logging" toml:"logging" mapstructure:"logging"`
}

// DiscoveryConfig controls which files a scan visits
type DiscoveryConfig struct {
	Extensions   []string `json:"extensions" toml:"extensions" mapstructure:"extensions"`
	ExcludeDirs  []string `json:"exclude_dirs" toml:"exclude_dirs" mapstructure:"exclude_dirs"`
	ExcludeGlobs []string `json:"exclude_globs" toml:"exclude_globs" mapstructure:"exclude_globs"`
}

// ExtractConfig controls function extraction
type ExtractConfig struct {
	// Workers is the pool size; 0 picks max(1, NumCPU/2) capped at 8.
	Workers     int  `json:"workers" toml:"workers" mapstructure:"workers"`
	BatchSize   int  `json:"batch_size" toml:"batch_size" mapstructure:"batch_size"`
	PatternOnly bool `json:"pattern_only" toml:"pattern_only" mapstructure:"pattern_only"`
}

// TestConfig holds the test-file and test-function conventions
type TestConfig struct {
	FilePatterns     []string `json:"file_patterns" toml:"file_patterns" mapstructure:"file_patterns"`
	DirSegments      []string `json:"dir_segments" toml:"dir_segments" mapstructure:"dir_segments"`
	FunctionPrefixes []string `json:"function_prefixes" toml:"function_prefixes" mapstructure:"function_prefixes"`
}

// HazardConfig holds the edge-case rule thresholds
type HazardConfig struct {
	MaxNestingDepth    int `json:"max_nesting_depth" toml:"max_nesting_depth" mapstructure:"max_nesting_depth"`
	LargeFunctionLines int `json:"large_function_lines" toml:"large_function_lines" mapstructure:"large_function_lines"`
	HugeFunctionLines  int `json:"huge_function_lines" toml:"huge_function_lines" mapstructure:"huge_function_lines"`
}

// SignalConfig holds signal thresholds and the per-type severity table
type SignalConfig struct {
	HighLengthThreshold   int               `json:"high_length_threshold" toml:"high_length_threshold" mapstructure:"high_length_threshold"`
	MediumLengthThreshold int               `json:"medium_length_threshold" toml:"medium_length_threshold" mapstructure:"medium_length_threshold"`
	Severity              map[string]string `json:"severity" toml:"severity" mapstructure:"severity"`
}

// TopologyConfig holds bucket hints and thresholds
type TopologyConfig struct {
	DataHints               []string `json:"data_hints" toml:"data_hints" mapstructure:"data_hints"`
	UtilityHints            []string `json:"utility_hints" toml:"utility_hints" mapstructure:"utility_hints"`
	IntegrationHints        []string `json:"integration_hints" toml:"integration_hints" mapstructure:"integration_hints"`
	EntryNames              []string `json:"entry_names" toml:"entry_names" mapstructure:"entry_names"`
	ExternalMarkers         []string `json:"external_markers" toml:"external_markers" mapstructure:"external_markers"`
	ExternalImportThreshold int      `json:"external_import_threshold" toml:"external_import_threshold" mapstructure:"external_import_threshold"`
	SmallRepoFiles          int      `json:"small_repo_files" toml:"small_repo_files" mapstructure:"small_repo_files"`
	SmallRepoCoreThreshold  int      `json:"small_repo_core_threshold" toml:"small_repo_core_threshold" mapstructure:"small_repo_core_threshold"`
	CoreThreshold           int      `json:"core_threshold" toml:"core_threshold" mapstructure:"core_threshold"`
	FallbackCoreCount       int      `json:"fallback_core_count" toml:"fallback_core_count" mapstructure:"fallback_core_count"`
	HighRiskSignals         int      `json:"high_risk_signals" toml:"high_risk_signals" mapstructure:"high_risk_signals"`
	MediumRiskSignals       int      `json:"medium_risk_signals" toml:"medium_risk_signals" mapstructure:"medium_risk_signals"`
	HeatmapWidth            int      `json:"heatmap_width" toml:"heatmap_width" mapstructure:"heatmap_width"`
	ExternalHeavyImports    int      `json:"external_heavy_imports" toml:"external_heavy_imports" mapstructure:"external_heavy_imports"`
	WideFanOut              int      `json:"wide_fan_out" toml:"wide_fan_out" mapstructure:"wide_fan_out"`
	CentralFanIn            int      `json:"central_fan_in" toml:"central_fan_in" mapstructure:"central_fan_in"`
}

// DiffConfig selects the signal fingerprint policy
type DiffConfig struct {
	Fingerprint string `json:"fingerprint" toml:"fingerprint" mapstructure:"fingerprint"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" toml:"level" mapstructure:"level"`
	File       string `json:"file" toml:"file" mapstructure:"file"`
	MaxSize    string `json:"max_size" toml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `json:"max_backups" toml:"max_backups" mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentVersion,
		StateDir: DefaultStateDir,
		Discovery: DiscoveryConfig{
			Extensions: []string{
				".py", ".java", ".js", ".ts", ".go", ".rb", ".php", ".cpp", ".c", ".cs",
				".swift", ".kt", ".rs", ".m", ".scala", ".pl", ".sh", ".html", ".css",
				".xml", ".json", ".yml", ".yaml", ".jsx", ".tsx",
			},
			ExcludeDirs: []string{
				".git", ".hg", ".svn", "node_modules", "vendor", "__pycache__", ".venv",
				"venv", "env", "build", "dist", "target", "out", "bin", "obj", ".idea",
				".vscode", ".tox", ".mypy_cache", ".pytest_cache", ".gradle", ".next",
				DefaultStateDir,
			},
			ExcludeGlobs: []string{},
		},
		Extract: ExtractConfig{
			Workers:   0,
			BatchSize: 32,
		},
		Tests: TestConfig{
			FilePatterns: []string{
				"test_*", "*_test.*", "*.test.*", "*.spec.*",
				"*Test.java", "*Tests.java", "*Test.kt",
			},
			DirSegments:      []string{"test", "tests", "__tests__", "spec"},
			FunctionPrefixes: []string{"test_", "test", "Test", "Benchmark"},
		},
		Hazards: HazardConfig{
			MaxNestingDepth:    3,
			LargeFunctionLines: 50,
			HugeFunctionLines:  100,
		},
		Signals: SignalConfig{
			HighLengthThreshold:   100,
			MediumLengthThreshold: 60,
			Severity: map[string]string{
				"untested_function":   "medium",
				"potential_edge_case": "low",
				"exception_path":      "high",
				"division_operation":  "high",
				"while_loop":          "medium",
				"conditional_branch":  "low",
			},
		},
		Topology: TopologyConfig{
			DataHints:        []string{"schema", "schemas", "model", "models", "db", "database", "storage", "repository"},
			UtilityHints:     []string{"utils", "util", "helpers", "common", "report"},
			IntegrationHints: []string{"llm", "mcp"},
			EntryNames:       []string{"cli", "main", "__main__"},
			ExternalMarkers: []string{
				"requests", "httpx", "aiohttp", "boto3", "botocore", "subprocess",
				"selenium", "playwright", "openai", "anthropic", "google", "github",
				"git", "dotenv", "fastapi", "flask", "django",
			},
			ExternalImportThreshold: 2,
			SmallRepoFiles:          25,
			SmallRepoCoreThreshold:  2,
			CoreThreshold:           3,
			FallbackCoreCount:       5,
			HighRiskSignals:         8,
			MediumRiskSignals:       3,
			HeatmapWidth:            20,
			ExternalHeavyImports:    3,
			WideFanOut:              8,
			CentralFanIn:            8,
		},
		Diff: DiffConfig{
			Fingerprint: "v1",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from <repoRoot>/.coderecon/config.toml.
// A .env file in repoRoot and CODERECON_* environment variables override file values.
func LoadConfig(repoRoot string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(repoRoot, ".env"))

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(repoRoot, DefaultStateDir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, reconerrors.New(reconerrors.ConfigInvalid, "cannot read config", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, reconerrors.New(reconerrors.ConfigInvalid, "cannot decode config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("state_dir", d.StateDir)

	v.SetDefault("discovery.extensions", d.Discovery.Extensions)
	v.SetDefault("discovery.exclude_dirs", d.Discovery.ExcludeDirs)
	v.SetDefault("discovery.exclude_globs", d.Discovery.ExcludeGlobs)

	v.SetDefault("extract.workers", d.Extract.Workers)
	v.SetDefault("extract.batch_size", d.Extract.BatchSize)
	v.SetDefault("extract.pattern_only", d.Extract.PatternOnly)

	v.SetDefault("tests.file_patterns", d.Tests.FilePatterns)
	v.SetDefault("tests.dir_segments", d.Tests.DirSegments)
	v.SetDefault("tests.function_prefixes", d.Tests.FunctionPrefixes)

	v.SetDefault("hazards.max_nesting_depth", d.Hazards.MaxNestingDepth)
	v.SetDefault("hazards.large_function_lines", d.Hazards.LargeFunctionLines)
	v.SetDefault("hazards.huge_function_lines", d.Hazards.HugeFunctionLines)

	v.SetDefault("signals.high_length_threshold", d.Signals.HighLengthThreshold)
	v.SetDefault("signals.medium_length_threshold", d.Signals.MediumLengthThreshold)
	v.SetDefault("signals.severity", d.Signals.Severity)

	t := d.Topology
	v.SetDefault("topology.data_hints", t.DataHints)
	v.SetDefault("topology.utility_hints", t.UtilityHints)
	v.SetDefault("topology.integration_hints", t.IntegrationHints)
	v.SetDefault("topology.entry_names", t.EntryNames)
	v.SetDefault("topology.external_markers", t.ExternalMarkers)
	v.SetDefault("topology.external_import_threshold", t.ExternalImportThreshold)
	v.SetDefault("topology.small_repo_files", t.SmallRepoFiles)
	v.SetDefault("topology.small_repo_core_threshold", t.SmallRepoCoreThreshold)
	v.SetDefault("topology.core_threshold", t.CoreThreshold)
	v.SetDefault("topology.fallback_core_count", t.FallbackCoreCount)
	v.SetDefault("topology.high_risk_signals", t.HighRiskSignals)
	v.SetDefault("topology.medium_risk_signals", t.MediumRiskSignals)
	v.SetDefault("topology.heatmap_width", t.HeatmapWidth)
	v.SetDefault("topology.external_heavy_imports", t.ExternalHeavyImports)
	v.SetDefault("topology.wide_fan_out", t.WideFanOut)
	v.SetDefault("topology.central_fan_in", t.CentralFanIn)

	v.SetDefault("diff.fingerprint", d.Diff.Fingerprint)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// Path returns the config file location for repoRoot.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, DefaultStateDir, ConfigFileName)
}

// Save writes the configuration to <repoRoot>/.coderecon/config.toml
func (c *Config) Save(repoRoot string) error {
	configPath := Path(repoRoot)
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	invalid := func(field, msg string) error {
		return reconerrors.New(reconerrors.ConfigInvalid, fmt.Sprintf("%s: %s", field, msg), nil)
	}

	if c.Version != CurrentVersion {
		return invalid("version", "unsupported config version")
	}
	if c.Extract.Workers < 0 {
		return invalid("extract.workers", "must not be negative")
	}
	if c.Extract.BatchSize < 1 {
		return invalid("extract.batch_size", "must be at least 1")
	}
	if c.Hazards.LargeFunctionLines > c.Hazards.HugeFunctionLines {
		return invalid("hazards.large_function_lines", "must not exceed huge_function_lines")
	}
	if c.Signals.MediumLengthThreshold > c.Signals.HighLengthThreshold {
		return invalid("signals.medium_length_threshold", "must not exceed high_length_threshold")
	}
	if c.Topology.HeatmapWidth < 1 {
		return invalid("topology.heatmap_width", "must be at least 1")
	}
	switch c.Diff.Fingerprint {
	case "v1", "v2":
	default:
		return invalid("diff.fingerprint", "must be v1 or v2")
	}
	return nil
}
