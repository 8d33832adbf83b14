package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

const (
	// EnvSchema names the environment variable holding a schema path.
	EnvSchema = "ARD_SCHEMA"

	// DefaultLocalPath is where the ARD product libraries install the schema.
	DefaultLocalPath = "/usr/local/ard-product-libraries/schema/ard_metadata_v1_0.xsd"

	// DefaultURL is the published schema.
	DefaultURL = "http://espa.cr.usgs.gov/schema/ard/ard_metadata_v1_0.xsd"
)

// Origin tells where a resolved schema came from.
type Origin int

const (
	OriginEnv Origin = iota
	OriginConfig
	OriginLocal
	OriginRemote
)

func (o Origin) String() string {
	switch o {
	case OriginEnv:
		return "environment"
	case OriginConfig:
		return "config"
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	}
	return "unknown"
}

// Source is a resolved schema location. Remote sources carry a URL, all
// others a file path.
type Source struct {
	Origin   Origin
	Location string
}

func (s Source) IsRemote() bool { return s.Origin == OriginRemote }

// Locator decides which schema to use. The zero value uses the process
// environment, the filesystem and the default locations.
type Locator struct {
	// ConfigPath, when set, is tried after the environment variable.
	ConfigPath string
	LocalPath  string
	URL        string

	Getenv func(string) string
	Stat   func(string) (os.FileInfo, error)
}

// Resolve returns the first usable schema source. An environment or config
// path that does not exist is an error rather than a silent fallback.
func (l Locator) Resolve() (Source, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	stat := l.Stat
	if stat == nil {
		stat = os.Stat
	}

	if p := strings.TrimSpace(getenv(EnvSchema)); p != "" {
		if _, err := stat(p); err != nil {
			return Source{}, fmt.Errorf("%w: %s=%s: %v", ardmeta.ErrValidatorUnavailable, EnvSchema, p, err)
		}
		return Source{Origin: OriginEnv, Location: p}, nil
	}

	if l.ConfigPath != "" {
		if _, err := stat(l.ConfigPath); err != nil {
			return Source{}, fmt.Errorf("%w: configured schema %s: %v", ardmeta.ErrValidatorUnavailable, l.ConfigPath, err)
		}
		return Source{Origin: OriginConfig, Location: l.ConfigPath}, nil
	}

	local := l.LocalPath
	if local == "" {
		local = DefaultLocalPath
	}
	if _, err := stat(local); err == nil {
		return Source{Origin: OriginLocal, Location: local}, nil
	}

	url := l.URL
	if url == "" {
		url = DefaultURL
	}
	return Source{Origin: OriginRemote, Location: url}, nil
}
