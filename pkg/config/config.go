// Package config gathers the settings of a devbuilds run.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file (devbuilds.toml, or the path given with --config)
//  3. the environment, including variables from a local .env file
//  4. command-line flags, applied by the caller
//
// The environment is read once, here; the rest of the program receives a
// *Config instead of calling os.Getenv.
package config

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	dberrors "github.com/typst-community/dev-builds/pkg/errors"
)

// File names looked up in the working directory.
const (
	DefaultFile   = "devbuilds.toml"
	DefaultDotEnv = ".env"
)

// Defaults.
const (
	DefaultServerURL  = "https://github.com"
	DefaultRepository = "typst-community/dev-builds"
	DefaultAPIURL     = "https://api.github.com"
	DefaultOutputDir  = "dist"
	DefaultTemplate   = "scripts/catalog.typ"
	DefaultRoot       = "."
	DefaultLimit      = 100
)

// Release sources.
const (
	SourceGH  = "gh"
	SourceAPI = "api"
)

// Git backends.
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// Environment variables.
const (
	EnvServerURL    = "GITHUB_SERVER_URL"
	EnvRepository   = "GITHUB_REPOSITORY"
	EnvAPIURL       = "GITHUB_API_URL"
	EnvReleaseEvent = "RELEASE_EVENT"
	EnvWorkflowRef  = "GITHUB_WORKFLOW_REF"
)

// Config holds the settings of a run.
type Config struct {
	OutputDir  string `toml:"output_dir"`
	Template   string `toml:"template"`
	Root       string `toml:"root"`
	Source     string `toml:"source"`
	Limit      int    `toml:"limit"`
	GitBackend string `toml:"git_backend"`

	// Environment only.
	ServerURL    string `toml:"-"`
	Repository   string `toml:"-"`
	APIURL       string `toml:"-"`
	ReleaseEvent string `toml:"-"`
	WorkflowRef  string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:  DefaultOutputDir,
		Template:   DefaultTemplate,
		Root:       DefaultRoot,
		Source:     SourceGH,
		Limit:      DefaultLimit,
		GitBackend: BackendExec,
		ServerURL:  DefaultServerURL,
		Repository: DefaultRepository,
		APIURL:     DefaultAPIURL,
	}
}

// Load builds a Config from the defaults, the TOML file at path and the
// environment seen through getenv. An empty path loads devbuilds.toml when
// it exists; an explicit path must exist. The result is not validated, so
// that flags can still be applied before calling [Config.Validate].
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if getenv != nil {
		cfg.applyEnv(getenv)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return dberrors.Wrap(dberrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return dberrors.New(dberrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.ServerURL, EnvServerURL)
	set(&c.Repository, EnvRepository)
	set(&c.APIURL, EnvAPIURL)
	set(&c.WorkflowRef, EnvWorkflowRef)
	// The event payload is passed through untouched; ParseEvent handles
	// blank values.
	c.ReleaseEvent = getenv(EnvReleaseEvent)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceGH, SourceAPI:
	default:
		return dberrors.New(dberrors.ErrCodeInvalidConfig, "unknown source %q (want %s or %s)", c.Source, SourceGH, SourceAPI)
	}
	switch c.GitBackend {
	case BackendExec, BackendGoGit:
	default:
		return dberrors.New(dberrors.ErrCodeInvalidConfig, "unknown git backend %q (want %s or %s)", c.GitBackend, BackendExec, BackendGoGit)
	}
	if c.Limit <= 0 {
		return dberrors.New(dberrors.ErrCodeInvalidConfig, "limit must be positive, got %d", c.Limit)
	}
	for _, p := range []string{c.OutputDir, c.Template, c.Root} {
		if err := dberrors.ValidatePath(p); err != nil {
			return err
		}
	}
	if err := dberrors.ValidateRepository(c.Repository); err != nil {
		return err
	}
	for _, u := range []string{c.ServerURL, c.APIURL} {
		if err := dberrors.ValidateURL(u); err != nil {
			return dberrors.Wrap(dberrors.ErrCodeInvalidConfig, err, "invalid URL %q", u)
		}
	}
	return nil
}

// URLPrefix returns the web URL of the publishing repository, such as
// "https://github.com/typst-community/dev-builds".
func (c *Config) URLPrefix() string {
	return strings.TrimSuffix(c.ServerURL, "/") + "/" + c.Repository
}

// Env returns a lookup over the process environment that falls back to the
// variables defined in the given dotenv files. Real environment variables
// always win, and earlier files win over later ones. Missing files are
// skipped.
func Env(files ...string) (func(string) string, error) {
	vars := make(map[string]string)
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, dberrors.Wrap(dberrors.ErrCodeInvalidConfig, err, "read %s", f)
		}
		for k, v := range values {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}

	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vars[key]
	}, nil
}
