package dawg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInts(t *testing.T, pairs map[string]uint32) *DAWG {
	t.Helper()
	b := NewBuilder()
	for k, v := range pairs {
		require.NoError(t, b.InsertString(k, v))
	}
	d, err := b.Build()
	require.NoError(t, err)
	return d
}

func TestUnitOffsetRoundTrip(t *testing.T) {
	for _, offset := range []uint32{0, 1, 255, 256, 1<<21 - 1, 1 << 21, 1 << 25, 1<<28 + 1<<8} {
		encoded, ok := encodeOffset(offset)
		require.True(t, ok, "смещение %d", offset)
		assert.Equal(t, offset, unitOffset(encoded|0xAB|hasLeafBit), "смещение %d", offset)
		assert.Equal(t, uint32(0xAB), unitLabel(encoded|0xAB))
	}
	_, ok := encodeOffset(1<<21 + 1)
	assert.False(t, ok)
}

func TestDictionary_TransitionRoundTrip(t *testing.T) {
	pairs := map[string]uint32{
		"кот": 1, "кота": 2, "коты": 3, "ком": 4, "a": 5, "ab": 6, "b": 7,
	}
	d := buildInts(t, pairs).Dictionary()

	for key, value := range pairs {
		index := Root
		for i := 0; i < len(key); i++ {
			next, ok := d.Transition(key[i], index)
			require.True(t, ok, "%q: шаг %d", key, i)
			// Метка дочерней ячейки совпадает с байтом перехода,
			// а повторный переход приводит в тот же узел.
			assert.Equal(t, uint32(key[i]), unitLabel(d.units[next]))
			again, ok := d.Transition(key[i], index)
			require.True(t, ok)
			assert.Equal(t, next, again)
			index = next
		}
		require.True(t, d.HasValue(index), key)
		assert.Equal(t, value, d.Value(index), key)

		got, ok := d.Find([]byte(key))
		require.True(t, ok)
		assert.Equal(t, value, got)
	}

	assert.False(t, d.Contains([]byte("ко")))
	assert.False(t, d.Contains([]byte("котик")))
	_, ok := d.FollowBytes([]byte("xyz"), Root)
	assert.False(t, ok)
	_, ok = d.Transition('z', uint32(d.Size()+10))
	assert.False(t, ok)
}

func TestCompleter_EnumeratesInByteOrder(t *testing.T) {
	keys := []string{"b", "a", "ab", "abc", "abd", "ac", "кот", "кота"}
	pairs := make(map[string]uint32)
	for i, k := range keys {
		pairs[k] = uint32(i)
	}
	d := buildInts(t, pairs)

	var got []string
	c := NewCompleter(d.Dictionary(), d.Guide())
	c.Start(Root, nil)
	for c.Next() {
		got = append(got, string(c.Key()))
		assert.Equal(t, pairs[string(c.Key())], c.Value())
	}
	want := append([]string(nil), keys...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("неверный порядок перечисления (-want +got):\n%s", diff)
	}
	assert.False(t, c.Next(), "перечислитель должен оставаться в конечном состоянии")

	index, ok := d.Dictionary().FollowString("ab", Root)
	require.True(t, ok)
	got = got[:0]
	c.Start(index, []byte("ab"))
	for c.Next() {
		got = append(got, string(c.Key()))
	}
	assert.Equal(t, []string{"ab", "abc", "abd"}, got)
}

func TestCompleter_EmptyGuide(t *testing.T) {
	c := NewCompleter(NewDictionary(nil), NewGuide(nil))
	c.Start(Root, nil)
	assert.False(t, c.Next())
}

func buildPayloads(t *testing.T, items map[string][][]byte) *BytesDAWG {
	t.Helper()
	b := NewBuilder()
	for k, values := range items {
		for _, v := range values {
			require.NoError(t, b.InsertPayload(k, v))
		}
	}
	d, err := b.Build()
	require.NoError(t, err)
	bd, err := NewBytesDAWG(d)
	require.NoError(t, err)
	return bd
}

func TestBytesDAWG_Get(t *testing.T) {
	bd := buildPayloads(t, map[string][][]byte{
		"стали": {EncodeRecord(1, 2), EncodeRecord(3, 4)},
		"сталь": {EncodeRecord(3, 0)},
	})

	values, err := bd.Get("стали")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{EncodeRecord(1, 2), EncodeRecord(3, 4)}, values)

	values, err = bd.Get("стал")
	require.NoError(t, err)
	assert.Nil(t, values)
	assert.True(t, bd.Contains("сталь"))
	assert.False(t, bd.Contains("стал"))

	keys, err := bd.Keys("ста")
	require.NoError(t, err)
	assert.Equal(t, []string{"стали", "сталь"}, keys)
}

func TestBytesDAWG_SimilarItems(t *testing.T) {
	bd := buildPayloads(t, map[string][][]byte{
		"еж":  {EncodeRecord(1, 0)},
		"ёж":  {EncodeRecord(2, 0)},
		"ёжё": {EncodeRecord(3, 0)},
		"ежё": {EncodeRecord(4, 0)},
	})
	subs, err := CompileSubstitutes(map[string][]string{"е": {"ё"}})
	require.NoError(t, err)

	items, err := bd.SimilarItems("еж", subs)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Точное совпадение идёт первым, затем ветви с заменами.
	assert.Equal(t, "еж", items[0].Key)
	assert.Equal(t, "ёж", items[1].Key)
	assert.Equal(t, [][]byte{EncodeRecord(2, 0)}, items[1].Values)

	items, err = bd.SimilarItems("ежe", subs)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = bd.SimilarItems("ёжё", subs)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var keys []string
	items, err = bd.SimilarItems("еже", subs)
	require.NoError(t, err)
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	// Ветвь, отщепившаяся раньше, перечисляется раньше.
	assert.Equal(t, []string{"ёжё", "ежё"}, keys)
	assert.Equal(t, keys, bd.SimilarKeys("еже", subs))

	items, err = bd.SimilarItems("еж", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "еж", items[0].Key)
}

func TestCompileSubstitutes_RejectsLongKeys(t *testing.T) {
	_, err := CompileSubstitutes(map[string][]string{"ее": {"ё"}})
	require.Error(t, err)
	_, err = CompileSubstitutes(map[string][]string{"е": {""}})
	require.Error(t, err)
}

func TestRecordDAWG(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.InsertPayload("кот", EncodeRecord(7, 1)))
	require.NoError(t, b.InsertPayload("кит", EncodeRecord(8, 2)))
	require.NoError(t, b.InsertPayload("сом", []byte{1, 2, 3}))
	d, err := b.Build()
	require.NoError(t, err)
	words, err := NewWordsDAWG(d)
	require.NoError(t, err)

	recs, err := words.Get("кот")
	require.NoError(t, err)
	assert.Equal(t, [][]uint16{{7, 1}}, recs)

	items, err := words.SimilarWords("кит", nil)
	require.NoError(t, err)
	assert.Equal(t, []WordItem{{Word: "кит", Hits: []WordHit{{ParadigmID: 8, Idx: 2}}}}, items)

	_, err = words.Get("сом")
	require.ErrorIs(t, err, ErrPayload)

	var seen []string
	err = words.Items("к", func(key string, rec []uint16) bool {
		seen = append(seen, key)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"кит", "кот"}, seen)
}

func TestSuffixesDAWG(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.InsertPayload("ого", EncodeRecord(10, 3, 1)))
	require.NoError(t, b.InsertPayload("ого", EncodeRecord(2, 4, 1)))
	d, err := b.Build()
	require.NoError(t, err)
	sd, err := NewSuffixesDAWG(d)
	require.NoError(t, err)

	items, err := sd.SimilarSuffixes("ого", nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.ElementsMatch(t, []SuffixHit{{10, 3, 1}, {2, 4, 1}}, items[0].Hits)
}

func TestOpen_MemoryMapped(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.InsertString("мама", 11))
	require.NoError(t, b.InsertString("мамы", 12))
	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.dawg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	d, err := Open(path, true)
	require.NoError(t, err)
	defer d.Close()

	ints := NewIntDAWG(d)
	v, ok := ints.Get("мамы")
	require.True(t, ok)
	assert.Equal(t, 12, v)
	_, ok = ints.Get("мам")
	assert.False(t, ok)

	var keys []string
	ints.Items("", func(key string, value int) bool {
		keys = append(keys, key)
		return true
	})
	assert.Equal(t, []string{"мама", "мамы"}, keys)

	fromReader, err := FromBytes(buf.Bytes(), true)
	require.NoError(t, err)
	assert.Equal(t, d.Dictionary().Size(), fromReader.Dictionary().Size())
}

func TestOpen_Corrupted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dawg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFF, 0, 0, 1}, 0o644))
	_, err := Open(path, false)
	require.ErrorIs(t, err, ErrFormat)

	_, err = Open(filepath.Join(dir, "missing.dawg"), false)
	require.Error(t, err)

	_, err = FromBytes([]byte{1, 0, 0, 0, 0, 0, 0, 0}, true)
	require.ErrorIs(t, err, ErrFormat)
}

func TestPrefixesDAWG(t *testing.T) {
	d := buildInts(t, map[string]uint32{"по": 0, "пол": 0, "псевдо": 0})
	p := NewPrefixesDAWG(d)
	assert.Equal(t, []string{"по", "пол"}, p.Prefixes("полпути"))
	assert.Equal(t, []string{"псевдо"}, p.Prefixes("псевдокошка"))
	assert.Empty(t, p.Prefixes("кошка"))
	assert.True(t, p.Contains("пол"))
	assert.False(t, p.Contains("п"))
}

func TestBuilder_LargeKeySet(t *testing.T) {
	const n = 50000
	pairs := make(map[string]uint32, n)
	for i := 0; i < n; i++ {
		pairs[fmt.Sprintf("слово-%05d", i*7919%n)] = uint32(i)
	}
	ints := NewIntDAWG(buildInts(t, pairs))

	for k, v := range pairs {
		got, ok := ints.Get(k)
		require.True(t, ok, k)
		require.Equal(t, int(v), got, k)
	}
	_, ok := ints.Get("слово-")
	assert.False(t, ok)

	count := 0
	prev := ""
	ints.Items("слово-", func(key string, _ int) bool {
		assert.Less(t, prev, key)
		prev = key
		count++
		return true
	})
	assert.Equal(t, n, count)
}
