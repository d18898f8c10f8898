package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Valhalla configuration for the routing oracle client
	Valhalla *ValhallaConfig `json:"valhalla" yaml:"valhalla"`

	// Weather configuration for the Open-Meteo adapter
	Weather *WeatherConfig `json:"weather" yaml:"weather"`

	// Daylight configuration for the sunrise-sunset adapter
	Daylight *DaylightConfig `json:"daylight" yaml:"daylight"`

	// Geocoder configuration for Nominatim/Photon lookups
	Geocoder *GeocoderConfig `json:"geocoder" yaml:"geocoder"`

	// Engine configuration for route selection and loop synthesis
	Engine *EngineConfig `json:"engine" yaml:"engine"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// ValhallaConfig defines the routing oracle endpoint
type ValhallaConfig struct {
	// Base URL of the Valhalla server, e.g. "http://localhost:8002"
	URL string `json:"url" yaml:"url"`

	// Per-call timeout; a timed-out call counts as an oracle failure
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Maximum in-flight oracle calls across all requests
	MaxConcurrent int64 `json:"maxConcurrent" yaml:"maxConcurrent"`
}

// WeatherConfig defines the weather lookup endpoint
type WeatherConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DaylightConfig defines the sunrise/sunset lookup endpoint
type DaylightConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// GeocoderConfig defines forward/reverse geocoding endpoints
type GeocoderConfig struct {
	NominatimURL string        `json:"nominatimUrl" yaml:"nominatimUrl"`
	PhotonURL    string        `json:"photonUrl" yaml:"photonUrl"`
	UserAgent    string        `json:"userAgent" yaml:"userAgent"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}

// EngineConfig defines tunables for route selection and loop synthesis
type EngineConfig struct {
	// Maximum plausible distance in kilometers between two consecutive
	// path points; larger steps mark the geometry as corrupt
	TeleportThresholdKm float64 `json:"teleportThresholdKm" yaml:"teleportThresholdKm"`

	// Sanity bound in kilometers for a single inter-waypoint leg
	MaxLegKm float64 `json:"maxLegKm" yaml:"maxLegKm"`

	// Minimum deduplicated point count for a loop to be considered real
	MinLoopPoints int `json:"minLoopPoints" yaml:"minLoopPoints"`

	// Decimal degrees of precision used when collapsing duplicate points
	DedupePrecision int `json:"dedupePrecision" yaml:"dedupePrecision"`

	// Lower bound in kilometers for the loop waypoint radius
	MinLoopRadiusKm float64 `json:"minLoopRadiusKm" yaml:"minLoopRadiusKm"`

	// Way-segment markings that disqualify a leg for a pedestrian loop
	ForbiddenClasses  []string `json:"forbiddenClasses" yaml:"forbiddenClasses"`
	ForbiddenUses     []string `json:"forbiddenUses" yaml:"forbiddenUses"`
	ForbiddenSurfaces []string `json:"forbiddenSurfaces" yaml:"forbiddenSurfaces"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: VALHALLA_MAXCONCURRENT -> valhalla.maxConcurrent
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills in engine tunables that were omitted from the
// config file so the synthesizer always has working bounds.
func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineConfig{}
	}

	eng := c.Engine
	if eng.TeleportThresholdKm <= 0 {
		eng.TeleportThresholdKm = 0.5
	}
	if eng.MaxLegKm <= 0 {
		eng.MaxLegKm = 2.0
	}
	if eng.MinLoopPoints <= 0 {
		eng.MinLoopPoints = 50
	}
	if eng.DedupePrecision <= 0 {
		eng.DedupePrecision = 6
	}
	if eng.MinLoopRadiusKm <= 0 {
		eng.MinLoopRadiusKm = 0.6
	}
	if len(eng.ForbiddenClasses) == 0 {
		eng.ForbiddenClasses = []string{
			"motorway", "motorway_link",
			"trunk", "trunk_link",
			"primary", "primary_link",
			"construction",
			"private",
		}
	}
	if len(eng.ForbiddenUses) == 0 {
		eng.ForbiddenUses = []string{
			"ferry", "rail", "construction", "steps",
			"sidepath", "bridleway", "piers", "pier",
			// often waterwalk/boardwalk/pier segments
			"path",
		}
	}
	if len(eng.ForbiddenSurfaces) == 0 {
		eng.ForbiddenSurfaces = []string{
			"wood", "metal", "gravel", "ground",
			"dirt", "clay", "grass", "unknown",
		}
	}

	if c.Valhalla != nil {
		if c.Valhalla.Timeout <= 0 {
			c.Valhalla.Timeout = 10 * time.Second
		}
		if c.Valhalla.MaxConcurrent <= 0 {
			c.Valhalla.MaxConcurrent = 8
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
