// SPDX-License-Identifier: MIT
// Package: kec/config
//
// env.go - environment overrides for counts and seeds.

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
)

// Environment keys read by ApplyEnv.
const (
	EnvNullsN    = "KEC_NULLS_N"
	EnvNullsSeed = "KEC_NULLS_SEED"
	EnvBootN     = "KEC_BOOT_N"
	EnvBootSeed  = "KEC_BOOT_SEED"
	EnvWorkers   = "KEC_WORKERS"
)

var envKeys = []string{EnvNullsN, EnvNullsSeed, EnvBootN, EnvBootSeed, EnvWorkers}

// ReadEnv returns the override keys found in the dotenv files and the
// process environment. The process environment wins.
func ReadEnv(files ...string) (map[string]string, error) {
	env := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "config: read dotenv")
		}
		for _, k := range envKeys {
			if v, ok := read[k]; ok {
				env[k] = v
			}
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides c from env and revalidates.
func (c *Config) ApplyEnv(env map[string]string) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvNullsN, &c.Randomness.NullGraphs.N},
		{EnvBootN, &c.Randomness.Bootstrap.N},
		{EnvWorkers, &c.Workers},
	}
	for _, f := range ints {
		v, ok := env[f.key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(f.key, v)
		}
		*f.dst = n
	}
	seeds := []struct {
		key string
		dst **int64
	}{
		{EnvNullsSeed, &c.Randomness.NullGraphs.Seed},
		{EnvBootSeed, &c.Randomness.Bootstrap.Seed},
	}
	for _, f := range seeds {
		v, ok := env[f.key]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return invalid(f.key, v)
		}
		*f.dst = seed(n)
	}
	return c.Validate()
}
