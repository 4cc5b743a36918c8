package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FormatVersion - поддерживаемая версия формата скомпилированного словаря.
const FormatVersion = "2.4"

// Meta - сведения о словаре из meta.json.
type Meta struct {
	FormatVersion    string
	Language         string
	ParadigmPrefixes []string
	MaxSuffixLength  int
	HasProbabilities bool
	SourceRevision   string
	CompiledAt       string

	raw map[string]json.RawMessage
}

// Raw возвращает необработанное значение ключа meta.json.
func (m Meta) Raw(key string) (json.RawMessage, bool) {
	v, ok := m.raw[key]
	return v, ok
}

type compileOptions struct {
	ParadigmPrefixes []string        `json:"paradigm_prefixes"`
	MaxSuffixLength  json.RawMessage `json:"max_suffix_length"`
}

// parseMeta принимает meta.json и в виде объекта, и в виде списка пар [ключ, значение].
func parseMeta(data []byte) (Meta, error) {
	raw := make(map[string]json.RawMessage)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var pairs [][2]json.RawMessage
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return Meta{}, fmt.Errorf("ошибка разбора meta.json: %w", err)
		}
		for _, p := range pairs {
			var key string
			if err := json.Unmarshal(p[0], &key); err != nil {
				return Meta{}, fmt.Errorf("ошибка разбора ключа meta.json: %w", err)
			}
			raw[key] = p[1]
		}
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Meta{}, fmt.Errorf("ошибка разбора meta.json: %w", err)
	}

	m := Meta{raw: raw, ParadigmPrefixes: []string{""}, MaxSuffixLength: 5}
	m.FormatVersion = scalar(raw["format_version"])
	m.Language = scalar(raw["language_code"])
	m.SourceRevision = scalar(raw["source_revision"])
	m.CompiledAt = scalar(raw["compiled_at"])
	if v, ok := raw["P(t|w)"]; ok {
		_ = json.Unmarshal(v, &m.HasProbabilities)
	}

	if v, ok := raw["compile_options"]; ok {
		var opts compileOptions
		if err := json.Unmarshal(v, &opts); err != nil {
			return Meta{}, fmt.Errorf("ошибка разбора compile_options: %w", err)
		}
		if len(opts.ParadigmPrefixes) > 0 {
			m.ParadigmPrefixes = opts.ParadigmPrefixes
		}
		if n, err := strconv.Atoi(scalar(opts.MaxSuffixLength)); err == nil && n > 0 {
			m.MaxSuffixLength = n
		}
	}
	return m, nil
}

// scalar возвращает строковое или числовое значение JSON как строку.
func scalar(v json.RawMessage) string {
	if len(v) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}
