package tagset

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Граммемы, которые не встречаются у продуктивных (открытых) классов слов.
var nonProductive = []string{"NUMR", "NPRO", "PRED", "PREP", "CONJ", "PRCL", "INTJ", "Apro"}

// Tag - неизменяемый набор граммем одного разбора.
type Tag struct {
	str       string
	grammemes mapset.Set[string]
	sorted    []string
	key       string
	storage   *Storage

	pos, animacy, aspect, cas, gender, involvement string
	mood, number, person, tense, transitivity, voice string
}

func newTag(str string, s *Storage) *Tag {
	values := strings.FieldsFunc(str, func(r rune) bool { return r == ',' || r == ' ' })
	t := &Tag{
		str:       str,
		grammemes: mapset.NewThreadUnsafeSet[string](),
		storage:   s,
	}
	for _, v := range values {
		t.grammemes.Add(v)
	}
	t.sorted = t.grammemes.ToSlice()
	sort.Strings(t.sorted)
	t.key = strings.Join(t.sorted, ",")

	// Категории находятся по корню каждой граммемы.
	for _, v := range t.sorted {
		var root string
		if g := s.Grammeme(v); g != nil {
			root = g.Root().Value
		}
		switch root {
		case CategoryPOS:
			t.pos = v
		case CategoryAnimacy:
			t.animacy = v
		case CategoryAspect:
			t.aspect = v
		case CategoryCase:
			t.cas = v
		case CategoryGender:
			t.gender = v
		case CategoryInvolvement:
			t.involvement = v
		case CategoryMood:
			t.mood = v
		case CategoryNumber:
			t.number = v
		case CategoryPerson:
			t.person = v
		case CategoryTense:
			t.tense = v
		case CategoryTransitivity:
			t.transitivity = v
		case CategoryVoice:
			t.voice = v
		}
	}
	return t
}

// String возвращает исходную строку тега.
func (t *Tag) String() string { return t.str }

// MarshalText сериализует тег его исходной строкой.
func (t *Tag) MarshalText() ([]byte, error) { return []byte(t.str), nil }

// Key - каноническое представление набора: отсортированные граммемы через запятую.
// Равные теги имеют равные ключи независимо от порядка в исходной строке.
func (t *Tag) Key() string { return t.key }

// Grammemes возвращает граммемы тега в отсортированном порядке.
func (t *Tag) Grammemes() []string {
	return append([]string(nil), t.sorted...)
}

// Len возвращает количество граммем.
func (t *Tag) Len() int { return len(t.sorted) }

// POS возвращает граммему категории «часть речи» или "".
func (t *Tag) POS() string { return t.pos }

// Animacy возвращает граммему категории «одушевлённость» или "".
func (t *Tag) Animacy() string { return t.animacy }

// Aspect возвращает граммему категории «вид» или "".
func (t *Tag) Aspect() string { return t.aspect }

// Case возвращает граммему категории «падеж» или "".
func (t *Tag) Case() string { return t.cas }

// Gender возвращает граммему категории «род» или "".
func (t *Tag) Gender() string { return t.gender }

// Involvement возвращает граммему категории «включённость говорящего» или "".
func (t *Tag) Involvement() string { return t.involvement }

// Mood возвращает граммему категории «наклонение» или "".
func (t *Tag) Mood() string { return t.mood }

// Number возвращает граммему категории «число» или "".
func (t *Tag) Number() string { return t.number }

// Person возвращает граммему категории «лицо» или "".
func (t *Tag) Person() string { return t.person }

// Tense возвращает граммему категории «время» или "".
func (t *Tag) Tense() string { return t.tense }

// Transitivity возвращает граммему категории «переходность» или "".
func (t *Tag) Transitivity() string { return t.transitivity }

// Voice возвращает граммему категории «залог» или "".
func (t *Tag) Voice() string { return t.voice }

// Contains сообщает, есть ли граммема в теге.
func (t *Tag) Contains(value string) bool {
	return t.grammemes.Contains(value)
}

// ContainsAll сообщает, содержит ли тег все перечисленные граммемы.
func (t *Tag) ContainsAll(values ...string) bool {
	return t.grammemes.Contains(values...)
}

// ContainsAny сообщает, содержит ли тег хотя бы одну из граммем.
func (t *Tag) ContainsAny(values ...string) bool {
	return t.grammemes.ContainsAny(values...)
}

// Has - ContainsAll для интернированных граммем.
func (t *Tag) Has(gs ...*Grammeme) bool {
	for _, g := range gs {
		if g == nil || !t.grammemes.Contains(g.Value) {
			return false
		}
	}
	return true
}

// IsProductive сообщает, относится ли тег к открытому классу слов.
// Угадывающие анализаторы отбрасывают непродуктивные разборы.
func (t *Tag) IsProductive() bool {
	return !t.grammemes.ContainsAny(nonProductive...)
}

// Equal сравнивает наборы граммем.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.key == other.key
}

// category возвращает корневую категорию граммемы или само значение,
// если граммема не входит в иерархию.
func (t *Tag) category(value string) string {
	g := t.storage.Grammeme(value)
	root := g.Root()
	if root == g {
		return value
	}
	return root.Value
}

// Updated возвращает набор граммем тега, в котором значения тех же
// категорий, что и у required, заменены на required.
func (t *Tag) Updated(required ...string) []string {
	replaced := make(map[string]bool, len(required))
	for _, r := range required {
		replaced[t.category(r)] = true
	}
	res := mapset.NewThreadUnsafeSet[string](required...)
	for _, v := range t.sorted {
		if !replaced[t.category(v)] {
			res.Add(v)
		}
	}
	values := res.ToSlice()
	sort.Strings(values)
	return values
}

// Similarity оценивает близость тега к набору граммем: число общих
// граммем минус десятая доля различающихся.
func (t *Tag) Similarity(values []string) float64 {
	other := mapset.NewThreadUnsafeSet[string](values...)
	common := t.grammemes.Intersect(other).Cardinality()
	diff := t.grammemes.SymmetricDifference(other).Cardinality()
	return float64(common) - 0.1*float64(diff)
}
