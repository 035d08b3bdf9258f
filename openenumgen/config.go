package openenumgen

import (
	"errors"
	"log/slog"

	"github.com/joeshaw/envdecode"

	"github.com/broady/openenum/openenumgen/catalog"
	"github.com/broady/openenum/openenumgen/synth"
)

// ManifestFile is the name of the manifest written when Config.Manifest is set.
const ManifestFile = "openenum.json"

// Config holds the configuration for code generation.
type Config struct {
	// OutDir is the directory generated files are written to.
	// e.g. "./internal/api"
	OutDir string

	// Package is the name of the generated package. Defaults to the package
	// named by the definition files, then to the package found in OutDir.
	Package string

	// PackagePath is the import path of the generated package. Resolved like
	// Package. Without it existing types cannot be looked up.
	PackagePath string

	// Dir is the working directory Go packages are loaded from.
	Dir string

	// Annotations selects serialization methods: "json", "text" or both.
	Annotations []string

	// FileName, when set, writes every enum into one file of that name.
	// Default (empty) generates one <type>_openenum.go file per enum.
	FileName string

	// FileSuffix replaces "_openenum.go" for per-enum files.
	FileSuffix string

	// Manifest writes openenum.json, the synthesized schema, next to the
	// generated code.
	Manifest bool

	// Prune removes generated files in OutDir that this run did not write.
	Prune bool

	// NoComments drops definition descriptions from the generated code.
	NoComments bool

	// Catalog resolves existing types and interfaces. Defaults to a
	// catalog.Packages loading from Dir.
	Catalog synth.TypeCatalog

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// envConfig lists the settings that may come from the environment.
type envConfig struct {
	OutDir      string   `env:"OPENENUM_OUT_DIR"`
	Package     string   `env:"OPENENUM_PACKAGE"`
	PackagePath string   `env:"OPENENUM_PACKAGE_PATH"`
	Annotations []string `env:"OPENENUM_ANNOTATIONS"`
	FileName    string   `env:"OPENENUM_FILE_NAME"`
	FileSuffix  string   `env:"OPENENUM_FILE_SUFFIX"`
	Manifest    bool     `env:"OPENENUM_MANIFEST"`
	Prune       bool     `env:"OPENENUM_PRUNE"`
	NoComments  bool     `env:"OPENENUM_NO_COMMENTS"`
}

// LoadEnv fills unset fields of cfg from OPENENUM_* environment variables.
// Values already set in cfg win. OPENENUM_ANNOTATIONS separates formats
// with semicolons.
func LoadEnv(cfg *Config) error {
	var env envConfig
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return err
	}

	setString(&cfg.OutDir, env.OutDir)
	setString(&cfg.Package, env.Package)
	setString(&cfg.PackagePath, env.PackagePath)
	setString(&cfg.FileName, env.FileName)
	setString(&cfg.FileSuffix, env.FileSuffix)
	if len(cfg.Annotations) == 0 {
		cfg.Annotations = env.Annotations
	}
	cfg.Manifest = cfg.Manifest || env.Manifest
	cfg.Prune = cfg.Prune || env.Prune
	cfg.NoComments = cfg.NoComments || env.NoComments
	return nil
}

func setString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Logger == nil {
		result.Logger = slog.Default()
	}
	if result.Dir == "" {
		result.Dir = "."
	}
	if result.Catalog == nil {
		result.Catalog = &catalog.Packages{Dir: result.Dir, Logger: result.Logger}
	}
	return &result
}
