package analyzer

import "strings"

// lexeme раскрывает парадигму разбора. Формы словарной и предсказанной
// парадигм получают оценку 1; обёртки добавляют свой префикс или частицу
// к каждой форме внутреннего разбора.
func (a *MorphAnalyzer) lexeme(p ParsedWord) []ParsedWord {
	switch m := p.Method.(type) {
	case DictionaryHit:
		return a.paradigmForms(p, m.ParadigmID, m.Idx, func(idx int) Method {
			return DictionaryHit{ParadigmID: m.ParadigmID, Idx: idx}
		})
	case SuffixHit:
		return a.paradigmForms(p, m.ParadigmID, m.Idx, func(idx int) Method {
			return SuffixHit{ParadigmID: m.ParadigmID, Idx: idx, Suffix: m.Suffix, Count: m.Count}
		})
	case PrefixWrapped:
		inner := p
		inner.Word = strings.TrimPrefix(p.Word, m.Prefix)
		inner.NormalForm = strings.TrimPrefix(p.NormalForm, m.Prefix)
		inner.Method = m.Inner
		forms := a.lexeme(inner)
		for i, f := range forms {
			forms[i].Word = m.Prefix + f.Word
			forms[i].NormalForm = m.Prefix + f.NormalForm
			forms[i].Method = PrefixWrapped{Prefix: m.Prefix, Name: m.Name, Inner: f.Method}
		}
		return forms
	case ParticleWrapped:
		inner := p
		inner.Word = strings.TrimSuffix(p.Word, m.Particle)
		inner.NormalForm = strings.TrimSuffix(p.NormalForm, m.Particle)
		inner.Method = m.Inner
		forms := a.lexeme(inner)
		for i, f := range forms {
			forms[i].Word = f.Word + m.Particle
			forms[i].NormalForm = f.NormalForm + m.Particle
			forms[i].Method = ParticleWrapped{Particle: m.Particle, Inner: f.Method}
		}
		return forms
	}
	return []ParsedWord{p}
}

func (a *MorphAnalyzer) paradigmForms(p ParsedWord, paradigmID, idx int, method func(int) Method) []ParsedWord {
	stem := a.dict.BuildStem(paradigmID, idx, p.Word)
	info := a.dict.BuildParadigmInfo(paradigmID)
	forms := make([]ParsedWord, len(info))
	for i, form := range info {
		word := form.Prefix + stem + form.Suffix
		forms[i] = ParsedWord{
			Word:       word,
			Tag:        form.Tag,
			NormalForm: p.NormalForm,
			FoundWord:  word,
			Score:      1.0,
			Method:     method(i),
			morph:      a,
		}
	}
	return forms
}
