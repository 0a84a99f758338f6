package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/schedkit/schedkit/internal/schedule"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Data   DataConfig
	Output OutputConfig
	Solver SolverConfig
	Model  ModelConfig
	Log    LogConfig

	Constraints []schedule.PipelineEntry
	Objectives  []schedule.PipelineEntry
}

// DataConfig names the catalog input files.
type DataConfig struct {
	Courses   string
	Rooms     string
	TimeSlots string
}

// OutputConfig controls where and how solved schedules are written.
type OutputConfig struct {
	Directory string
	Formats   []string
	Title     string
}

// SolverConfig selects the backend and its resource budget. A zero time
// limit lets the solver run unbounded.
type SolverConfig struct {
	Name      string
	Path      string
	TimeLimit time.Duration
}

// ModelConfig tunes model generation.
type ModelConfig struct {
	OverlapBufferMinutes int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the YAML config file, layered under SCHEDKIT_* environment
// variables. An empty path falls back to schedkit.yaml in the working
// directory and tolerates its absence; a named file must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("schedkit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SCHEDKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("env")

	cfg.Data = DataConfig{
		Courses:   v.GetString("data.courses"),
		Rooms:     v.GetString("data.rooms"),
		TimeSlots: v.GetString("data.time_slots"),
	}

	cfg.Output = OutputConfig{
		Directory: v.GetString("output.directory"),
		Formats:   splitAndTrim(v.GetString("output.formats")),
		Title:     v.GetString("output.title"),
	}

	cfg.Solver = SolverConfig{
		Name:      v.GetString("solver.name"),
		Path:      v.GetString("solver.path"),
		TimeLimit: parseDuration(v.GetString("solver.time_limit"), 0),
	}

	cfg.Model = ModelConfig{
		OverlapBufferMinutes: v.GetInt("model.overlap_buffer_minutes"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	if err := v.UnmarshalKey("constraints", &cfg.Constraints); err != nil {
		return nil, err
	}
	if err := v.UnmarshalKey("objectives", &cfg.Objectives); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("data.courses", "./data/courses.csv")
	v.SetDefault("data.rooms", "./data/rooms.csv")
	v.SetDefault("data.time_slots", "./data/time_slots.csv")

	v.SetDefault("output.directory", "./output")
	v.SetDefault("output.formats", "csv,text")
	v.SetDefault("output.title", "Course schedule")

	v.SetDefault("solver.name", "cbc")
	v.SetDefault("solver.path", "")
	v.SetDefault("solver.time_limit", "0s")

	v.SetDefault("model.overlap_buffer_minutes", schedule.DefaultOverlapBuffer)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
