package analyzer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/dawg"
	"github.com/steosofficial/morphy/dictionary"
	"github.com/steosofficial/morphy/tagset"
)

// Unit - звено цепочки разбора. Parse получает слово в нижнем регистре и
// возвращает nil, если разборщику нечего сказать.
type Unit interface {
	Name() string
	Score() float64
	// Terminal: если разборщик дал результат, следующие не вызываются.
	Terminal() bool
	Parse(word string) []ParsedWord
}

type unitBase struct {
	name      string
	score     float64
	terminate bool
}

func (u unitBase) Name() string { return u.name }
func (u unitBase) Score() float64 { return u.score }
func (u unitBase) Terminal() bool { return u.terminate }

func newBase(cfg config.Unit) unitBase {
	return unitBase{name: cfg.Name, score: cfg.Score, terminate: cfg.Terminate}
}

// DictionaryUnit ищет слово в словаре с учётом замен символов.
type DictionaryUnit struct {
	unitBase
	dict *dictionary.Dictionary
	subs dawg.Substitutes
}

// NewDictionaryUnit создаёт словарный разборщик.
func NewDictionaryUnit(cfg config.Unit, dict *dictionary.Dictionary, subs dawg.Substitutes) *DictionaryUnit {
	return &DictionaryUnit{unitBase: newBase(cfg), dict: dict, subs: subs}
}

// Parse возвращает по разбору на каждую пару (парадигма, форма) найденных слов.
// Ошибка декодирования нагрузки означает несовместимый словарь и приводит к панике.
func (u *DictionaryUnit) Parse(word string) []ParsedWord {
	items, err := u.dict.Words.SimilarWords(word, u.subs)
	if err != nil {
		panic(fmt.Errorf("словарь повреждён, слово %q: %w", word, err))
	}
	var res []ParsedWord
	for _, item := range items {
		for _, hit := range item.Hits {
			paradigmID, idx := int(hit.ParadigmID), int(hit.Idx)
			res = append(res, ParsedWord{
				Word:       item.Word,
				Tag:        u.dict.BuildTag(paradigmID, idx),
				NormalForm: u.dict.BuildNormalForm(paradigmID, idx, item.Word),
				FoundWord:  item.Word,
				Score:      u.score,
				Method:     DictionaryHit{ParadigmID: paradigmID, Idx: idx},
			})
		}
	}
	return res
}

// shapeUnit выдаёт один разбор с фиксированным тегом, если форма слова
// подходит под условие.
type shapeUnit struct {
	unitBase
	match func(word string) (*tagset.Tag, bool)
}

func (u *shapeUnit) Parse(word string) []ParsedWord {
	tag, ok := u.match(word)
	if !ok {
		return nil
	}
	return []ParsedWord{{
		Word:       word,
		Tag:        tag,
		NormalForm: word,
		FoundWord:  word,
		Score:      u.score,
		Method:     Plain{Name: u.name},
	}}
}

var (
	punctuationRe = regexp.MustCompile(`^\pP+$`)
	romanRe       = regexp.MustCompile(`(?i)^M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
)

// NewNumberUnit распознаёт целые (NUMB,intg) и дробные (NUMB,real) числа.
// Запятая считается десятичным разделителем.
func NewNumberUnit(cfg config.Unit, storage *tagset.Storage) Unit {
	intgTag, realTag := storage.Tag("NUMB,intg"), storage.Tag("NUMB,real")
	return &shapeUnit{unitBase: newBase(cfg), match: func(word string) (*tagset.Tag, bool) {
		if isInteger(word) {
			return intgTag, true
		}
		f, err := strconv.ParseFloat(strings.Replace(word, ",", ".", 1), 64)
		if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(word, "_xXpP") {
			return realTag, true
		}
		return nil, false
	}}
}

// isInteger принимает целые любой длины: переполнение int64 - всё ещё число.
func isInteger(word string) bool {
	_, err := strconv.ParseInt(word, 10, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// NewPunctuationUnit распознаёт строки из знаков препинания (PNCT).
func NewPunctuationUnit(cfg config.Unit, storage *tagset.Storage) Unit {
	tag := storage.Tag("PNCT")
	return &shapeUnit{unitBase: newBase(cfg), match: func(word string) (*tagset.Tag, bool) {
		return tag, punctuationRe.MatchString(word)
	}}
}

// NewRomanUnit распознаёт римские числа (ROMN). Римское число одновременно
// латинское слово, поэтому разборщик обычно не терминальный.
func NewRomanUnit(cfg config.Unit, storage *tagset.Storage) Unit {
	tag := storage.Tag("ROMN")
	return &shapeUnit{unitBase: newBase(cfg), match: func(word string) (*tagset.Tag, bool) {
		return tag, word != "" && romanRe.MatchString(word)
	}}
}

// NewLatinUnit распознаёт слова, все буквы которых латинские (LATN).
// Цифры и знаки допустимы, но нужна хотя бы одна буква.
func NewLatinUnit(cfg config.Unit, storage *tagset.Storage) Unit {
	tag := storage.Tag("LATN")
	return &shapeUnit{unitBase: newBase(cfg), match: func(word string) (*tagset.Tag, bool) {
		return tag, isLatin(word)
	}}
}

func isLatin(word string) bool {
	hasLetter := false
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.Is(unicode.Latin, r) {
			return false
		}
		hasLetter = true
	}
	return hasLetter
}

// NewUnknownUnit всегда выдаёт разбор UNKN с нормальной формой, равной слову.
func NewUnknownUnit(cfg config.Unit, storage *tagset.Storage) Unit {
	tag := storage.Tag("UNKN")
	return &shapeUnit{unitBase: newBase(cfg), match: func(word string) (*tagset.Tag, bool) {
		return tag, word != ""
	}}
}

// wrapPrefix переносит разбор остатка слова на слово с префиксом.
func wrapPrefix(p ParsedWord, prefix, unit string, score float64) ParsedWord {
	return ParsedWord{
		Word:       prefix + p.Word,
		Tag:        p.Tag,
		NormalForm: prefix + p.NormalForm,
		FoundWord:  p.FoundWord,
		Score:      p.Score * score,
		Method:     PrefixWrapped{Prefix: prefix, Name: unit, Inner: p.Method},
	}
}

// KnownPrefixUnit отбрасывает известный префикс («псевдо», «супер»...) и
// разбирает остаток по словарю. Префиксы перебираются от длинных к коротким.
type KnownPrefixUnit struct {
	unitBase
	prefixes     *dawg.PrefixesDAWG
	minRemainder int
	inner        *DictionaryUnit
}

// NewKnownPrefixUnit строит множество префиксов в виде DAWG.
func NewKnownPrefixUnit(cfg config.Unit, prefixes []string, inner *DictionaryUnit) (*KnownPrefixUnit, error) {
	b := dawg.NewBuilder()
	for _, p := range prefixes {
		if err := b.InsertString(strings.ToLower(p), 0); err != nil {
			return nil, fmt.Errorf("префикс %q: %w", p, err)
		}
	}
	d, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения множества префиксов: %w", err)
	}
	minRemainder := cfg.MinRemainderLength
	if minRemainder == 0 {
		minRemainder = 3
	}
	return &KnownPrefixUnit{
		unitBase:     newBase(cfg),
		prefixes:     dawg.NewPrefixesDAWG(d),
		minRemainder: minRemainder,
		inner:        inner,
	}, nil
}

// Parse оставляет только продуктивные разборы остатка.
func (u *KnownPrefixUnit) Parse(word string) []ParsedWord {
	prefixes := u.prefixes.Prefixes(word)
	var res []ParsedWord
	for i := len(prefixes) - 1; i >= 0; i-- {
		prefix := prefixes[i]
		rest := word[len(prefix):]
		if utf8.RuneCountInString(rest) < u.minRemainder {
			continue
		}
		for _, p := range u.inner.Parse(rest) {
			if p.Tag.IsProductive() {
				res = append(res, wrapPrefix(p, prefix, u.name, u.score))
			}
		}
	}
	return res
}

// UnknownPrefixUnit пробует считать префиксом первые 1..maxPrefix символов
// слова и разбирает остаток по словарю.
type UnknownPrefixUnit struct {
	unitBase
	maxPrefix    int
	minRemainder int
	inner        *DictionaryUnit
}

// NewUnknownPrefixUnit создаёт разборщик неизвестных префиксов.
func NewUnknownPrefixUnit(cfg config.Unit, inner *DictionaryUnit) *UnknownPrefixUnit {
	u := &UnknownPrefixUnit{unitBase: newBase(cfg), maxPrefix: cfg.MaxPrefixLength, minRemainder: cfg.MinRemainderLength, inner: inner}
	if u.maxPrefix == 0 {
		u.maxPrefix = 5
	}
	if u.minRemainder == 0 {
		u.minRemainder = 3
	}
	return u
}

// Parse перебирает все допустимые длины префикса, от коротких к длинным.
func (u *UnknownPrefixUnit) Parse(word string) []ParsedWord {
	runes := []rune(word)
	var res []ParsedWord
	for n := 1; n <= u.maxPrefix && len(runes)-n >= u.minRemainder; n++ {
		prefix := string(runes[:n])
		for _, p := range u.inner.Parse(word[len(prefix):]) {
			if p.Tag.IsProductive() {
				res = append(res, wrapPrefix(p, prefix, u.name, u.score))
			}
		}
	}
	return res
}

// HyphenParticleUnit отделяет частицу после дефиса («скажи-ка», «кто-то»)
// и разбирает слово перед ней по словарю.
type HyphenParticleUnit struct {
	unitBase
	particles []string
	inner     *DictionaryUnit
}

// NewHyphenParticleUnit создаёт разборщик частиц.
func NewHyphenParticleUnit(cfg config.Unit, particles []string, inner *DictionaryUnit) *HyphenParticleUnit {
	return &HyphenParticleUnit{unitBase: newBase(cfg), particles: particles, inner: inner}
}

func (u *HyphenParticleUnit) Parse(word string) []ParsedWord {
	var res []ParsedWord
	for _, particle := range u.particles {
		if !strings.HasSuffix(word, particle) || len(word) == len(particle) {
			continue
		}
		for _, p := range u.inner.Parse(word[:len(word)-len(particle)]) {
			res = append(res, ParsedWord{
				Word:       p.Word + particle,
				Tag:        p.Tag,
				NormalForm: p.NormalForm + particle,
				FoundWord:  p.FoundWord,
				Score:      p.Score * u.score,
				Method:     ParticleWrapped{Particle: particle, Inner: p.Method},
			})
		}
	}
	return res
}
