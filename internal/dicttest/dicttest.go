// Package dicttest компилирует маленькие словари в настоящем бинарном
// формате для тестов загрузчика и анализатора.
package dicttest

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/steosofficial/morphy/dawg"
	"github.com/steosofficial/morphy/dictionary"
)

// Form - форма лексемы: парадигматический префикс, окончание и тег.
type Form struct {
	Prefix string
	Suffix string
	Tag    string
}

// Lexeme - основа и её формы; первая форма нормальная.
type Lexeme struct {
	Stem  string
	Forms []Form
}

// Fixture описывает словарь для компиляции.
type Fixture struct {
	Grammemes        [][4]string
	Lexemes          []Lexeme
	ParadigmPrefixes []string
	MaxSuffixLength  int
	// Probabilities - P(t|w)·1e6 по ключам "слово:тег".
	Probabilities map[string]int
	ByteOrder     binary.ByteOrder
	MetaAsPairs   bool
	FormatVersion string
}

// Build компилирует словарь во временный каталог теста и возвращает путь к нему.
func Build(tb testing.TB, f Fixture) string {
	tb.Helper()
	dir := tb.TempDir()
	if err := Write(dir, f); err != nil {
		tb.Fatalf("компиляция тестового словаря: %v", err)
	}
	return dir
}

type compiled struct {
	suffixes  []string
	suffixIDs map[string]int
	tags      []string
	tagIDs    map[string]int
	paradigms []dictionary.Paradigm
	paraIDs   map[string]int
}

func (c *compiled) suffixID(s string) uint16 {
	if id, ok := c.suffixIDs[s]; ok {
		return uint16(id)
	}
	c.suffixIDs[s] = len(c.suffixes)
	c.suffixes = append(c.suffixes, s)
	return uint16(len(c.suffixes) - 1)
}

func (c *compiled) tagID(s string) uint16 {
	if id, ok := c.tagIDs[s]; ok {
		return uint16(id)
	}
	c.tagIDs[s] = len(c.tags)
	c.tags = append(c.tags, s)
	return uint16(len(c.tags) - 1)
}

func (c *compiled) paradigmID(p dictionary.Paradigm) uint16 {
	key := fmt.Sprint([]uint16(p))
	if id, ok := c.paraIDs[key]; ok {
		return uint16(id)
	}
	c.paraIDs[key] = len(c.paradigms)
	c.paradigms = append(c.paradigms, p)
	return uint16(len(c.paradigms) - 1)
}

type wordEntry struct {
	word       string
	paradigmID uint16
	idx        uint16
	prefixID   int
	suffix     string
}

// Write компилирует словарь f в каталог dir.
func Write(dir string, f Fixture) error {
	prefixes := f.ParadigmPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	prefixIDs := make(map[string]int, len(prefixes))
	for i, p := range prefixes {
		prefixIDs[p] = i
	}
	maxSuffix := f.MaxSuffixLength
	if maxSuffix == 0 {
		maxSuffix = 5
	}

	c := &compiled{suffixIDs: map[string]int{}, tagIDs: map[string]int{}, paraIDs: map[string]int{}}
	var entries []wordEntry
	for _, lex := range f.Lexemes {
		n := len(lex.Forms)
		para := make(dictionary.Paradigm, 3*n)
		for i, form := range lex.Forms {
			pid, ok := prefixIDs[form.Prefix]
			if !ok {
				return fmt.Errorf("неизвестный префикс %q", form.Prefix)
			}
			para[i] = c.suffixID(form.Suffix)
			para[n+i] = c.tagID(form.Tag)
			para[2*n+i] = uint16(pid)
		}
		id := c.paradigmID(para)
		for i, form := range lex.Forms {
			entries = append(entries, wordEntry{
				word:       form.Prefix + lex.Stem + form.Suffix,
				paradigmID: id,
				idx:        uint16(i),
				prefixID:   prefixIDs[form.Prefix],
				suffix:     form.Suffix,
			})
		}
	}

	words := dawg.NewBuilder()
	for _, e := range entries {
		if err := words.InsertPayload(e.word, dawg.EncodeRecord(e.paradigmID, e.idx)); err != nil {
			return err
		}
	}
	if err := writeDAWG(filepath.Join(dir, dictionary.WordsFile), words); err != nil {
		return err
	}

	for i := range prefixes {
		if err := writeDAWG(filepath.Join(dir, dictionary.PredictionSuffixesFile(i)), suffixBuilder(entries, i, maxSuffix)); err != nil {
			return err
		}
	}

	if f.Probabilities != nil {
		probs := dawg.NewBuilder()
		for key, p := range f.Probabilities {
			if err := probs.InsertString(key, uint32(p)); err != nil {
				return err
			}
		}
		if err := writeDAWG(filepath.Join(dir, dictionary.ProbabilitiesFile), probs); err != nil {
			return err
		}
	}

	order := f.ByteOrder
	if order == nil {
		order = binary.BigEndian
	}
	pf, err := os.Create(filepath.Join(dir, dictionary.ParadigmsFile))
	if err != nil {
		return err
	}
	if err := dictionary.WriteParadigms(pf, order, c.paradigms); err != nil {
		pf.Close()
		return err
	}
	if err := pf.Close(); err != nil {
		return err
	}

	grammemes := make([][]any, len(f.Grammemes))
	for i, g := range f.Grammemes {
		var parent any
		if g[1] != "" {
			parent = g[1]
		}
		grammemes[i] = []any{g[0], parent, g[2], g[3]}
	}
	if err := writeJSON(filepath.Join(dir, dictionary.GrammemesFile), grammemes); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, dictionary.SuffixesFile), c.suffixes); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, dictionary.GramtabFile), c.tags); err != nil {
		return err
	}
	return writeMeta(dir, f, prefixes, maxSuffix)
}

// suffixBuilder собирает окончания форм с префиксом prefixID: для каждой формы
// берутся концы слова от длины её окончания до maxSuffix, одинаковые правила
// суммируются.
func suffixBuilder(entries []wordEntry, prefixID, maxSuffix int) *dawg.Builder {
	type rule struct {
		end        string
		paradigmID uint16
		idx        uint16
	}
	counts := make(map[rule]uint16)
	for _, e := range entries {
		if e.prefixID != prefixID {
			continue
		}
		runes := []rune(e.word)
		for n := max(len([]rune(e.suffix)), 1); n <= maxSuffix && n <= len(runes); n++ {
			counts[rule{string(runes[len(runes)-n:]), e.paradigmID, e.idx}]++
		}
	}
	rules := make([]rule, 0, len(counts))
	for r := range counts {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].end != rules[j].end {
			return rules[i].end < rules[j].end
		}
		if rules[i].paradigmID != rules[j].paradigmID {
			return rules[i].paradigmID < rules[j].paradigmID
		}
		return rules[i].idx < rules[j].idx
	})
	b := dawg.NewBuilder()
	for _, r := range rules {
		// Ошибка невозможна: ключи без нулевых байтов, значение 0.
		_ = b.InsertPayload(r.end, dawg.EncodeRecord(counts[r], r.paradigmID, r.idx))
	}
	return b
}

func writeDAWG(path string, b *dawg.Builder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeMeta(dir string, f Fixture, prefixes []string, maxSuffix int) error {
	version := f.FormatVersion
	if version == "" {
		version = dictionary.FormatVersion
	}
	pairs := [][2]any{
		{"format_version", version},
		{"language_code", "ru"},
		{"compiled_at", "2026-01-01T00:00:00"},
		{"source", "dicttest"},
		{"P(t|w)", f.Probabilities != nil},
		{"compile_options", map[string]any{
			"paradigm_prefixes": prefixes,
			"max_suffix_length": maxSuffix,
		}},
	}
	if f.MetaAsPairs {
		return writeJSON(filepath.Join(dir, dictionary.MetaFile), pairs)
	}
	obj := make(map[string]any, len(pairs))
	for _, p := range pairs {
		obj[p[0].(string)] = p[1]
	}
	return writeJSON(filepath.Join(dir, dictionary.MetaFile), obj)
}

// Split режет файл на части name.part-aa, name.part-ab... размером size и удаляет исходный.
func Split(path string, size int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for i := 0; len(data) > 0; i++ {
		n := min(size, len(data))
		name := fmt.Sprintf("%s.part-%c%c", path, 'a'+i/26, 'a'+i%26)
		if err := os.WriteFile(name, data[:n], 0o644); err != nil {
			return err
		}
		data = data[n:]
	}
	return os.Remove(path)
}

// Word собирает словоформу лексемы, удобно для таблиц тестов.
func (l Lexeme) Word(idx int) string {
	f := l.Forms[idx]
	return f.Prefix + l.Stem + f.Suffix
}

// forms раскрывает краткую запись форм "окончание|тег".
func forms(entries ...string) []Form {
	res := make([]Form, len(entries))
	for i, s := range entries {
		suffix, tag, _ := strings.Cut(s, "|")
		res[i] = Form{Suffix: suffix, Tag: tag}
	}
	return res
}
