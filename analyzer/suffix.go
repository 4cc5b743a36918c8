package analyzer

import (
	"fmt"
	"strings"

	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/dawg"
	"github.com/steosofficial/morphy/dictionary"
)

// KnownSuffixUnit предсказывает разбор несловарного слова по окончанию:
// ищет самое длинное окончание слова в DAWG окончаний и берёт парадигмы,
// у которых оно встречалось.
type KnownSuffixUnit struct {
	unitBase
	dict          *dictionary.Dictionary
	subs          dawg.Substitutes
	minWordLength int
	maxSuffix     int
}

// NewKnownSuffixUnit создаёт предсказатель по окончаниям.
func NewKnownSuffixUnit(cfg config.Unit, dict *dictionary.Dictionary, subs dawg.Substitutes) *KnownSuffixUnit {
	u := &KnownSuffixUnit{
		unitBase:      newBase(cfg),
		dict:          dict,
		subs:          subs,
		minWordLength: cfg.MinWordLength,
		maxSuffix:     dict.Meta.MaxSuffixLength,
	}
	if u.minWordLength == 0 {
		u.minWordLength = 4
	}
	return u
}

type suffixCandidate struct {
	parsed   ParsedWord
	count    int
	prefixID int
}

// Parse перебирает парадигматические префиксы от последнего к первому и
// для каждого - длины окончания от максимальной к 1. Поиск по префиксу
// прекращается на первой длине, на которой нашлось хоть одно окончание,
// даже если все найденные разборы затем отброшены как непродуктивные.
func (u *KnownSuffixUnit) Parse(word string) []ParsedWord {
	runes := []rune(word)
	if len(runes) < u.minWordLength {
		return nil
	}

	// Сглаживание: к сумме частот каждого префикса добавляется 1.
	totals := make([]int, len(u.dict.ParadigmPrefixes))
	for i := range totals {
		totals[i] = 1
	}

	var candidates []suffixCandidate
	for prefixID := len(u.dict.ParadigmPrefixes) - 1; prefixID >= 0; prefixID-- {
		if !strings.HasPrefix(word, u.dict.ParadigmPrefixes[prefixID]) {
			continue
		}
		suffixes := u.dict.PredictionSuffixes[prefixID]
		for n := min(u.maxSuffix, len(runes)); n > 0; n-- {
			start, end := string(runes[:len(runes)-n]), string(runes[len(runes)-n:])
			items, err := suffixes.SimilarSuffixes(end, u.subs)
			if err != nil {
				panic(fmt.Errorf("словарь окончаний %d повреждён, окончание %q: %w", prefixID, end, err))
			}
			for _, item := range items {
				fixedWord := start + item.Suffix
				for _, hit := range item.Hits {
					paradigmID, idx := int(hit.ParadigmID), int(hit.Idx)
					tag := u.dict.BuildTag(paradigmID, idx)
					if !tag.IsProductive() {
						continue
					}
					totals[prefixID] += int(hit.Count)
					candidates = append(candidates, suffixCandidate{
						parsed: ParsedWord{
							Word:       fixedWord,
							Tag:        tag,
							NormalForm: u.dict.BuildNormalForm(paradigmID, idx, fixedWord),
							FoundWord:  item.Suffix,
							Method: SuffixHit{
								ParadigmID: paradigmID,
								Idx:        idx,
								Suffix:     item.Suffix,
								Count:      int(hit.Count),
							},
						},
						count:    int(hit.Count),
						prefixID: prefixID,
					})
				}
			}
			if len(items) > 0 {
				break
			}
		}
	}

	res := make([]ParsedWord, len(candidates))
	for i, c := range candidates {
		res[i] = c.parsed.Rescore(float64(c.count) / float64(totals[c.prefixID]) * u.score)
	}
	return res
}
