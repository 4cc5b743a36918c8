package tagset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStorage регистрирует фрагмент иерархии OpenCorpora.
func newTestStorage() *Storage {
	s := NewStorage()
	for _, g := range [][4]string{
		{"POST", "", "ЧР", "часть речи"},
		{"NOUN", "POST", "СУЩ", "имя существительное"},
		{"ADJF", "POST", "ПРИЛ", "имя прилагательное (полное)"},
		{"NPRO", "POST", "МС", "местоимение-существительное"},
		{"ANim", "", "Од-неод", "категория одушевлённости"},
		{"anim", "ANim", "од", "одушевлённое"},
		{"inan", "ANim", "неод", "неодушевлённое"},
		{"GNdr", "", "хр", "род / род не выражен"},
		{"masc", "GNdr", "мр", "мужской род"},
		{"femn", "GNdr", "жр", "женский род"},
		{"neut", "GNdr", "ср", "средний род"},
		{"NMbr", "", "Число", "число"},
		{"sing", "NMbr", "ед", "единственное число"},
		{"plur", "NMbr", "мн", "множественное число"},
		{"CAse", "", "Падеж", "категория падежа"},
		{"nomn", "CAse", "им", "именительный падеж"},
		{"gent", "CAse", "рд", "родительный падеж"},
		{"gen2", "gent", "рд2", "второй родительный падеж"},
		{"accs", "CAse", "вн", "винительный падеж"},
	} {
		s.AddGrammeme(g[0], g[1], g[2], g[3])
	}
	return s
}

func TestGrammeme_Root(t *testing.T) {
	s := newTestStorage()

	gen2, ok := s.LookupGrammeme("gen2")
	require.True(t, ok)
	assert.Equal(t, "gent", gen2.Parent().Value)
	assert.Equal(t, "CAse", gen2.Root().Value)

	post, _ := s.LookupGrammeme("POST")
	assert.Nil(t, post.Parent())
	assert.Same(t, post, post.Root())

	noun := s.Grammeme("NOUN")
	assert.Equal(t, "POST", noun.Root().Value)
}

func TestStorage_CaseSensitiveInterning(t *testing.T) {
	s := newTestStorage()

	anim, ok := s.LookupGrammeme("anim")
	require.True(t, ok)
	category, ok := s.LookupGrammeme("ANim")
	require.True(t, ok)
	assert.NotSame(t, anim, category)
	assert.Equal(t, "ANim", anim.Root().Value)

	femn, ok := s.LookupGrammeme("FEMN")
	require.True(t, ok, "поиск без учёта регистра")
	assert.Equal(t, "femn", femn.Value)

	again := s.AddGrammeme("femn", "", "", "")
	assert.Same(t, femn, again)
}

func TestStorage_TagInterning(t *testing.T) {
	s := newTestStorage()
	t1 := s.Tag("NOUN,anim,masc sing,nomn")
	t2 := s.Tag("NOUN,anim,masc sing,nomn")
	t3 := s.Tag("NOUN anim masc,sing,nomn")

	assert.Same(t, t1, t2)
	assert.NotSame(t, t1, t3)
	assert.True(t, t1.Equal(t3), "равенство по набору граммем")
	assert.Equal(t, t1.Key(), t3.Key())
	assert.Equal(t, "NOUN,anim,masc sing,nomn", t1.String())
}

func TestStorage_ConcurrentAccess(t *testing.T) {
	s := newTestStorage()
	var wg sync.WaitGroup
	tags := make([]*Tag, 16)
	for i := range tags {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tags[i] = s.Tag("ADJF,Qual masc,sing,gent")
		}(i)
	}
	wg.Wait()
	for _, tag := range tags {
		assert.Same(t, tags[0], tag)
	}
}

func TestStorage_Lock(t *testing.T) {
	s := newTestStorage()
	known := s.Tag("NOUN,inan,femn sing,nomn")
	s.Lock()
	assert.True(t, s.IsLocked())

	assert.Same(t, known, s.Tag("NOUN,inan,femn sing,nomn"))
	a := s.Tag("NOUN,inan,neut sing,accs")
	b := s.Tag("NOUN,inan,neut sing,accs")
	assert.NotSame(t, a, b, "после блокировки новые теги не сохраняются")
	assert.True(t, a.Equal(b))

	s.Grammeme("Fixd")
	_, ok := s.LookupGrammeme("Fixd")
	assert.False(t, ok)
}

func TestTag_Accessors(t *testing.T) {
	s := newTestStorage()
	tag := s.Tag("ADJF,Qual neut,sing,gent")

	assert.Equal(t, "ADJF", tag.POS())
	assert.Equal(t, "neut", tag.Gender())
	assert.Equal(t, "sing", tag.Number())
	assert.Equal(t, "gent", tag.Case())
	assert.Empty(t, tag.Animacy())
	assert.Empty(t, tag.Tense())

	tag = s.Tag("NOUN,anim,masc sing,gen2")
	assert.Equal(t, "gen2", tag.Case())
	assert.Equal(t, "anim", tag.Animacy())
}

func TestTag_Contains(t *testing.T) {
	s := newTestStorage()
	tag := s.Tag("NOUN,inan,femn sing,nomn")

	assert.True(t, tag.Contains("femn"))
	assert.True(t, tag.ContainsAll("NOUN", "sing"))
	assert.False(t, tag.ContainsAll("NOUN", "plur"))
	assert.True(t, tag.ContainsAny("plur", "nomn"))
	assert.False(t, tag.ContainsAny("plur", "gent"))
	assert.True(t, tag.Has(s.Grammeme("inan"), s.Grammeme("nomn")))
	assert.False(t, tag.Has(s.Grammeme("anim")))
	assert.Equal(t, []string{"NOUN", "femn", "inan", "nomn", "sing"}, tag.Grammemes())
}

func TestTag_IsProductive(t *testing.T) {
	s := newTestStorage()
	assert.True(t, s.Tag("NOUN,inan,femn sing,nomn").IsProductive())
	assert.False(t, s.Tag("NPRO,masc,3per,Anph sing,nomn").IsProductive())
	assert.False(t, s.Tag("ADJF,Apro,Subx,Anph masc,sing,nomn").IsProductive())
	assert.False(t, s.Tag("PREP").IsProductive())
	assert.True(t, s.Tag("UNKN").IsProductive())
}

func TestTag_UpdatedAndSimilarity(t *testing.T) {
	s := newTestStorage()
	tag := s.Tag("NOUN,inan,femn sing,nomn")

	updated := tag.Updated("plur", "gent")
	assert.Equal(t, []string{"NOUN", "femn", "gent", "inan", "plur"}, updated)

	exact := s.Tag("NOUN,inan,femn plur,gent")
	other := s.Tag("NOUN,inan,femn sing,accs")
	assert.Greater(t, exact.Similarity(updated), other.Similarity(updated))
	assert.InDelta(t, 5.0, exact.Similarity(updated), 1e-9)
}
