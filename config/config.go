// Package config описывает состав анализатора: цепочку разборщиков,
// замены символов и параметры кэша. Конфигурация читается из YAML,
// пути и размеры можно переопределить переменными окружения.
package config

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/steosofficial/morphy/dawg"
)

var (
	// ErrSubstitution - некорректная таблица замен символов.
	ErrSubstitution = errors.New("config: некорректная замена символов")
	// ErrUnknownUnit - в цепочке указан неизвестный разборщик.
	ErrUnknownUnit = errors.New("config: неизвестный разборщик")
)

// Имена разборщиков в порядке цепочки по умолчанию.
const (
	UnitDictionary     = "dictionary"
	UnitNumber         = "number"
	UnitPunctuation    = "punctuation"
	UnitRoman          = "roman"
	UnitLatin          = "latin"
	UnitHyphenParticle = "hyphen_particle"
	UnitKnownPrefix    = "known_prefix"
	UnitUnknownPrefix  = "unknown_prefix"
	UnitKnownSuffix    = "known_suffix"
	UnitUnknown        = "unknown"
)

var knownUnits = map[string]bool{
	UnitDictionary: true, UnitNumber: true, UnitPunctuation: true, UnitRoman: true,
	UnitLatin: true, UnitHyphenParticle: true, UnitKnownPrefix: true,
	UnitUnknownPrefix: true, UnitKnownSuffix: true, UnitUnknown: true,
}

// Unit - настройки одного разборщика. Нулевые числовые поля означают
// значения по умолчанию разборщика.
type Unit struct {
	Name      string  `yaml:"name" json:"name"`
	Score     float64 `yaml:"score" json:"score"`
	Terminate bool    `yaml:"terminate" json:"terminate"`

	MinRemainderLength int `yaml:"min_remainder_length,omitempty" json:"min_remainder_length,omitempty"`
	MaxPrefixLength    int `yaml:"max_prefix_length,omitempty" json:"max_prefix_length,omitempty"`
	MinWordLength      int `yaml:"min_word_length,omitempty" json:"min_word_length,omitempty"`
}

// Config - YAML-документ конфигурации анализатора.
type Config struct {
	Units              []Unit              `yaml:"units" json:"units"`
	CharSubstitutes    map[string][]string `yaml:"char_substitutes" json:"char_substitutes"`
	KnownPrefixes      []string            `yaml:"known_prefixes" json:"known_prefixes"`
	HyphenParticles    []string            `yaml:"hyphen_particles" json:"hyphen_particles"`
	ParadigmsByteOrder string              `yaml:"paradigms_byte_order" json:"paradigms_byte_order"`
	CacheSize          int                 `yaml:"cache_size" json:"cache_size"`
	CacheShards        int                 `yaml:"cache_shards" json:"cache_shards"`
}

// Env - переопределения из окружения.
type Env struct {
	DictPath    string `envconfig:"MORPHY_DICT_PATH"`
	ConfigPath  string `envconfig:"MORPHY_CONFIG_PATH"`
	CacheSize   int    `envconfig:"MORPHY_CACHE_SIZE" default:"-1"`
	CacheShards int    `envconfig:"MORPHY_CACHE_SHARDS" default:"-1"`
	Workers     int    `envconfig:"MORPHY_WORKERS" default:"0"`
}

// LoadEnv читает переменные окружения MORPHY_*.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("ошибка чтения окружения: %w", err)
	}
	return env, nil
}

// Default возвращает конфигурацию для русского словаря.
func Default() Config {
	return Config{
		Units: []Unit{
			{Name: UnitDictionary, Score: 1.0, Terminate: true},
			{Name: UnitNumber, Score: 0.9, Terminate: true},
			{Name: UnitPunctuation, Score: 0.9, Terminate: true},
			{Name: UnitRoman, Score: 0.9, Terminate: false},
			{Name: UnitLatin, Score: 0.9, Terminate: true},
			{Name: UnitHyphenParticle, Score: 0.9, Terminate: true},
			{Name: UnitKnownPrefix, Score: 0.75, Terminate: true, MinRemainderLength: 3},
			{Name: UnitUnknownPrefix, Score: 0.5, Terminate: false, MaxPrefixLength: 5, MinRemainderLength: 3},
			{Name: UnitKnownSuffix, Score: 0.5, Terminate: true, MinWordLength: 4},
			{Name: UnitUnknown, Score: 1.0, Terminate: true},
		},
		CharSubstitutes: map[string][]string{"е": {"ё"}},
		KnownPrefixes:   append([]string(nil), russianPrefixes...),
		HyphenParticles: []string{"-то", "-ка", "-таки", "-де", "-тко", "-тка", "-с", "-ста"},
		CacheSize:       0,
		CacheShards:     16,
	}
}

// Load читает YAML из path поверх Default. Ключи, отсутствующие в файле,
// сохраняют значения по умолчанию; список units заменяется целиком.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает YAML-документ поверх Default и проверяет результат.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv переносит заданные в окружении размеры кэша в конфигурацию.
func (c *Config) ApplyEnv(env Env) {
	if env.CacheSize >= 0 {
		c.CacheSize = env.CacheSize
	}
	if env.CacheShards >= 0 {
		c.CacheShards = env.CacheShards
	}
}

// Validate проверяет конфигурацию. Ошибки описательные и фатальные.
func (c Config) Validate() error {
	if len(c.Units) == 0 {
		return errors.New("config: пустая цепочка разборщиков")
	}
	for i, u := range c.Units {
		if !knownUnits[u.Name] {
			return fmt.Errorf("%w: %q (позиция %d)", ErrUnknownUnit, u.Name, i)
		}
		if u.Score <= 0 || u.Score > 1 {
			return fmt.Errorf("config: разборщик %s: вес %v вне (0, 1]", u.Name, u.Score)
		}
		if u.MinRemainderLength < 0 || u.MaxPrefixLength < 0 || u.MinWordLength < 0 {
			return fmt.Errorf("config: разборщик %s: отрицательная длина", u.Name)
		}
	}
	if _, err := c.Substitutes(); err != nil {
		return err
	}
	for _, p := range c.KnownPrefixes {
		if p == "" {
			return errors.New("config: пустой известный префикс")
		}
	}
	for _, p := range c.HyphenParticles {
		if !strings.HasPrefix(p, "-") || len(p) < 2 {
			return fmt.Errorf("config: частица %q должна начинаться с дефиса", p)
		}
	}
	if _, err := c.ByteOrder(); err != nil {
		return err
	}
	if c.CacheSize < 0 || c.CacheShards < 0 {
		return errors.New("config: отрицательный размер кэша")
	}
	return nil
}

// Substitutes компилирует таблицу замен символов.
func (c Config) Substitutes() (dawg.Substitutes, error) {
	if len(c.CharSubstitutes) == 0 {
		return nil, nil
	}
	subs, err := dawg.CompileSubstitutes(c.CharSubstitutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubstitution, err)
	}
	return subs, nil
}

// ByteOrder возвращает порядок байт paradigms.array.
func (c Config) ByteOrder() (binary.ByteOrder, error) {
	switch strings.ToLower(c.ParadigmsByteOrder) {
	case "", "big", "big-endian":
		return binary.BigEndian, nil
	case "little", "little-endian":
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("config: неизвестный порядок байт %q", c.ParadigmsByteOrder)
}
