package config

// Config is the merged configuration of a run
type Config struct {
	Output   OutputConfig   `koanf:"output"`
	Input    InputConfig    `koanf:"input"`
	Report   ReportConfig   `koanf:"report"`
	Publish  PublishConfig  `koanf:"publish"`
	GraphViz GraphVizConfig `koanf:"graphviz"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// OutputConfig selects where and what to generate
type OutputConfig struct {
	Directory string   `koanf:"directory" validate:"required"`
	Formats   []string `koanf:"formats" validate:"dive,required"`
}

// InputConfig describes the structures being read
type InputConfig struct {
	Timed bool `koanf:"timed"`
}

// ReportConfig controls the run report
type ReportConfig struct {
	Format string `koanf:"format" validate:"oneof=auto term text json"`
}

// PublishConfig controls how artifacts are written
type PublishConfig struct {
	Atomic bool `koanf:"atomic"`
}

// GraphVizConfig tunes the DOT renderer
type GraphVizConfig struct {
	RankDir   string `koanf:"rankdir" validate:"oneof=LR TB RL BT"`
	NodeShape string `koanf:"node_shape" validate:"required"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	File bool `koanf:"file"`
}
