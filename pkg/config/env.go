package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"quadcheck/internal/util"
)

// LoadEnvFile loads KEY=value pairs from path into the process
// environment. Variables that are already set win. A path that is missing
// or names a directory is skipped.
func LoadEnvFile(path string) error {
	if !util.FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides configuration values from environment variables.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	ints := map[string]*int{
		"QUADCHECK_WIDTH":   &c.Render.Width,
		"QUADCHECK_HEIGHT":  &c.Render.Height,
		"QUADCHECK_THREADS": &c.Render.NumThreads,
		"QUADCHECK_UPSCALE": &c.Output.Upscale,
	}
	for key, dst := range ints {
		v := getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	strs := map[string]*string{
		"QUADCHECK_SURFACE":     &c.Surface.Kind,
		"QUADCHECK_FALLOFF":     &c.Shading.Falloff,
		"QUADCHECK_ROOT_POLICY": &c.Render.RootPolicy,
		"QUADCHECK_OUTPUT":      &c.Output.Path,
		"QUADCHECK_LOG_LEVEL":   &c.Log.Level,
		"QUADCHECK_LOG_FILE":    &c.Log.File,
		"S3_ENDPOINT":           &c.Upload.Endpoint,
		"S3_REGION":             &c.Upload.Region,
		"S3_BUCKET":             &c.Upload.Bucket,
		"S3_ACCESS_KEY":         &c.Upload.AccessKey,
		"S3_SECRET_KEY":         &c.Upload.SecretKey,
	}
	for key, dst := range strs {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	if v := getenv("QUADCHECK_UPLOAD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUADCHECK_UPLOAD: %w", err)
		}
		c.Upload.Enabled = b
	}

	return nil
}
