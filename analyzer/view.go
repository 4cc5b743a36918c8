// view.go преобразует ParsedWord в плоский объект `Parsed`, удобный для
// сериализации в JSON: утилита командной строки и C-обёртка отдают именно его.
package analyzer

// Parsed - это объект для хранения полного морфологического разбора.
type Parsed struct {
	Word         string   `json:"word"`           // Слово после замен символов
	Lemma        string   `json:"lemma"`          // Нормальная форма (лемма)
	Tags         string   `json:"tags"`           // Полная строка тегов
	Score        float64  `json:"score"`          // Оценка разбора
	Method       string   `json:"method"`         // Разборщик, построивший разбор
	PartOfSpeech string   `json:"part_of_speech"` // Часть речи
	Animacy      string   `json:"animacy,omitempty"`
	Aspect       string   `json:"aspect,omitempty"`
	Case         string   `json:"case,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Involvement  string   `json:"involvement,omitempty"`
	Mood         string   `json:"mood,omitempty"`
	Number       string   `json:"number,omitempty"`
	Person       string   `json:"person,omitempty"`
	Tense        string   `json:"tense,omitempty"`
	Transitivity string   `json:"transitivity,omitempty"`
	Voice        string   `json:"voice,omitempty"`
	OtherTags    []string `json:"other_tags,omitempty"` // Граммемы вне основных категорий
}

// NewParsed раскладывает граммемы тега по категориям.
func NewParsed(p ParsedWord) Parsed {
	t := p.Tag
	res := Parsed{
		Word:         p.Word,
		Lemma:        p.NormalForm,
		Tags:         t.String(),
		Score:        p.Score,
		PartOfSpeech: t.POS(),
		Animacy:      t.Animacy(),
		Aspect:       t.Aspect(),
		Case:         t.Case(),
		Gender:       t.Gender(),
		Involvement:  t.Involvement(),
		Mood:         t.Mood(),
		Number:       t.Number(),
		Person:       t.Person(),
		Tense:        t.Tense(),
		Transitivity: t.Transitivity(),
		Voice:        t.Voice(),
	}
	if p.Method != nil {
		res.Method = p.Method.Unit()
	}

	categorized := map[string]bool{}
	for _, v := range []string{res.PartOfSpeech, res.Animacy, res.Aspect, res.Case, res.Gender,
		res.Involvement, res.Mood, res.Number, res.Person, res.Tense, res.Transitivity, res.Voice} {
		if v != "" {
			categorized[v] = true
		}
	}
	// Если граммема не подошла ни к одной из основных категорий,
	// она попадает в "корзину" OtherTags.
	for _, g := range t.Grammemes() {
		if !categorized[g] {
			res.OtherTags = append(res.OtherTags, g)
		}
	}
	return res
}

// NewParsedList - NewParsed для среза разборов.
func NewParsedList(parses []ParsedWord) []Parsed {
	res := make([]Parsed, len(parses))
	for i, p := range parses {
		res[i] = NewParsed(p)
	}
	return res
}

// WordResult - ответ утилиты и C-обёртки для одного слова.
type WordResult struct {
	Word   string   `json:"word"`
	Parses []Parsed `json:"parses"`
	Lexeme []Parsed `json:"lexeme,omitempty"`
}

// Analyze возвращает разборы слова и, если withLexeme, все формы лучшего разбора.
func (a *MorphAnalyzer) Analyze(word string, withLexeme bool) WordResult {
	parses := a.Parse(word)
	res := WordResult{Word: word, Parses: NewParsedList(parses)}
	if withLexeme && len(parses) > 0 {
		res.Lexeme = NewParsedList(parses[0].Lexeme())
	}
	return res
}
