package analyzer

import (
	"sort"

	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/tagset"
)

// Method - происхождение разбора. Реализации: DictionaryHit, SuffixHit,
// PrefixWrapped, ParticleWrapped, Plain.
type Method interface {
	// Unit возвращает имя разборщика, который построил разбор.
	Unit() string
	method()
}

// DictionaryHit - слово найдено в словаре.
type DictionaryHit struct {
	ParadigmID int
	Idx        int
}

// SuffixHit - парадигма предсказана по окончанию Suffix, встреченному Count раз.
type SuffixHit struct {
	ParadigmID int
	Idx        int
	Suffix     string
	Count      int
}

// PrefixWrapped - разбор остатка слова после отбрасывания префикса.
type PrefixWrapped struct {
	Prefix string
	Name   string
	Inner  Method
}

// ParticleWrapped - разбор слова перед частицей через дефис («скажи-ка»).
type ParticleWrapped struct {
	Particle string
	Inner    Method
}

// Plain - разбор по форме слова без словаря.
type Plain struct {
	Name string
}

func (DictionaryHit) Unit() string { return config.UnitDictionary }
func (SuffixHit) Unit() string { return config.UnitKnownSuffix }
func (m PrefixWrapped) Unit() string { return m.Name }
func (ParticleWrapped) Unit() string { return config.UnitHyphenParticle }
func (m Plain) Unit() string { return m.Name }
func (DictionaryHit) method() {}
func (SuffixHit) method() {}
func (PrefixWrapped) method() {}
func (ParticleWrapped) method() {}
func (Plain) method() {}

// ParsedWord - один вариант разбора слова.
//
// Word - слово в том виде, в каком оно сопоставлено словарю (после замен
// символов, например «елка» -> «ёлка»); FoundWord - часть, реально найденная
// в trie: всё слово, остаток после префикса или предсказывающее окончание.
type ParsedWord struct {
	Word       string
	Tag        *tagset.Tag
	NormalForm string
	FoundWord  string
	Score      float64
	Method     Method

	morph *MorphAnalyzer
}

// Rescore возвращает копию разбора с новой оценкой.
func (p ParsedWord) Rescore(score float64) ParsedWord {
	p.Score = score
	return p
}

// Lexeme возвращает все формы слова. Для разборов без парадигмы
// лексема состоит из самого разбора.
func (p ParsedWord) Lexeme() []ParsedWord {
	if p.morph == nil {
		return []ParsedWord{p}
	}
	return p.morph.lexeme(p)
}

// Inflect возвращает формы лексемы, содержащие все граммемы include и ни
// одной из exclude, от наиболее близких к исходному тегу.
func (p ParsedWord) Inflect(include, exclude []string) []ParsedWord {
	var res []ParsedWord
	for _, form := range p.Lexeme() {
		if !form.Tag.ContainsAll(include...) {
			continue
		}
		if len(exclude) > 0 && form.Tag.ContainsAny(exclude...) {
			continue
		}
		res = append(res, form)
	}
	if len(res) < 2 {
		return res
	}

	wanted := p.Tag.Updated(include...)
	similarity := make(map[string]float64, len(res))
	for _, form := range res {
		similarity[form.Tag.Key()] = form.Tag.Similarity(wanted)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return similarity[res[i].Tag.Key()] > similarity[res[j].Tag.Key()]
	})
	return res
}

// dedupKey - ключ устранения дубликатов: тег и нормальная форма.
func (p ParsedWord) dedupKey() string {
	return p.Tag.Key() + "\x00" + p.NormalForm
}
