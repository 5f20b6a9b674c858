package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/x86-meta/opcodes"
)

// Config controls a run of the generator. It can be loaded from a YAML
// file, and any flag given on the command line overrides the file.
type Config struct {
	// Format is one of the keys of renderers.
	Format string `yaml:"format"`

	// SkipModes lists the addressing modes whose syntaxes are left out of
	// the table.
	SkipModes []string `yaml:"skip_modes"`

	// InvalidNote is the note text marking entries invalid in 64-bit mode.
	InvalidNote string `yaml:"invalid_note"`

	LogLevel string `yaml:"log_level"`

	// Dump writes the assembled table to stderr before rendering it.
	Dump bool `yaml:"dump"`
}

func defaultConfig() Config {
	skip := make([]string, len(opcodes.DefaultSkipModes))
	for i, m := range opcodes.DefaultSkipModes {
		skip[i] = string(m)
	}
	return Config{
		Format:      "c",
		SkipModes:   skip,
		InvalidNote: opcodes.DefaultInvalidNote,
		LogLevel:    "info",
	}
}

// loadConfig reads the config file at filename over the defaults. An empty
// filename returns the defaults.
func loadConfig(filename string) (Config, error) {
	cfg := defaultConfig()
	if filename == "" {
		return cfg, nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err = parseConfig(src)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	return cfg, nil
}

func parseConfig(src []byte) (Config, error) {
	cfg := defaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// addFlags registers a flag for each setting, with c's values as the
// defaults.
func (c *Config) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Format, "format", "f", c.Format, "output format: "+strings.Join(rendererNames(), ", "))
	fs.StringSliceVar(&c.SkipModes, "skip-modes", c.SkipModes, "addressing modes to leave out of the table")
	fs.StringVar(&c.InvalidNote, "invalid-note", c.InvalidNote, "note text marking entries invalid in 64-bit mode")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "dump the assembled table to stderr")
}

// override copies the settings whose flags were set in fs from flags to c.
func (c *Config) override(fs *pflag.FlagSet, flags *Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "format":
			c.Format = flags.Format
		case "skip-modes":
			c.SkipModes = flags.SkipModes
		case "invalid-note":
			c.InvalidNote = flags.InvalidNote
		case "log-level":
			c.LogLevel = flags.LogLevel
		case "dump":
			c.Dump = flags.Dump
		}
	})
}

func (c Config) validate() error {
	if _, ok := renderers[c.Format]; !ok {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if _, err := c.skipModes(); err != nil {
		return err
	}
	if _, err := c.logLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) skipModes() ([]opcodes.AddressingMode, error) {
	ret := make([]opcodes.AddressingMode, 0, len(c.SkipModes))
	for _, raw := range c.SkipModes {
		mode, ok := opcodes.ParseAddressingMode(strings.TrimSpace(raw))
		if !ok || mode == opcodes.ModeNone {
			return nil, fmt.Errorf("unknown addressing mode %q", raw)
		}
		ret = append(ret, mode)
	}
	return ret, nil
}

func (c Config) logLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

func rendererNames() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
