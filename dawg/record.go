package dawg

import (
	"encoding/binary"
	"fmt"
)

// RecordDAWG - BytesDAWG, нагрузки которого являются кортежами
// big-endian uint16 фиксированной длины.
type RecordDAWG struct {
	bytes *BytesDAWG
	arity int
}

// NewRecordDAWG создаёт обёртку для кортежей длины arity.
func NewRecordDAWG(d *DAWG, arity int) (*RecordDAWG, error) {
	b, err := NewBytesDAWG(d)
	if err != nil {
		return nil, err
	}
	return &RecordDAWG{bytes: b, arity: arity}, nil
}

// Close освобождает данные.
func (r *RecordDAWG) Close() error {
	return r.bytes.Close()
}

// Bytes возвращает нижележащий BytesDAWG.
func (r *RecordDAWG) Bytes() *BytesDAWG {
	return r.bytes
}

func (r *RecordDAWG) decode(value []byte) ([]uint16, error) {
	if len(value) != r.arity*2 {
		return nil, fmt.Errorf("%w: длина %d, ожидалось %d", ErrPayload, len(value), r.arity*2)
	}
	rec := make([]uint16, r.arity)
	for i := range rec {
		rec[i] = binary.BigEndian.Uint16(value[i*2:])
	}
	return rec, nil
}

// Get возвращает все кортежи ключа.
func (r *RecordDAWG) Get(key string) ([][]uint16, error) {
	values, err := r.bytes.Get(key)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(values)
}

func (r *RecordDAWG) decodeAll(values [][]byte) ([][]uint16, error) {
	res := make([][]uint16, 0, len(values))
	for _, v := range values {
		rec, err := r.decode(v)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

// RecordItem - ключ, найденный нечётким поиском, и его кортежи.
type RecordItem struct {
	Key     string
	Records [][]uint16
}

// SimilarItems - нечёткий поиск с декодированием кортежей.
func (r *RecordDAWG) SimilarItems(key string, subs Substitutes) ([]RecordItem, error) {
	items, err := r.bytes.SimilarItems(key, subs)
	if err != nil {
		return nil, err
	}
	res := make([]RecordItem, 0, len(items))
	for _, item := range items {
		recs, err := r.decodeAll(item.Values)
		if err != nil {
			return nil, err
		}
		res = append(res, RecordItem{Key: item.Key, Records: recs})
	}
	return res, nil
}

// Items перечисляет ключи с префиксом prefix и их кортежи.
func (r *RecordDAWG) Items(prefix string, fn func(key string, rec []uint16) bool) error {
	var decodeErr error
	err := r.bytes.Items(prefix, func(key string, value []byte) bool {
		rec, err := r.decode(value)
		if err != nil {
			decodeErr = err
			return false
		}
		return fn(key, rec)
	})
	if err != nil {
		return err
	}
	return decodeErr
}

// WordHit - словоформа указывает на парадигму и индекс формы в ней.
type WordHit struct {
	ParadigmID uint16
	Idx        uint16
}

// WordsDAWG отображает словоформу в пары (парадигма, индекс формы).
type WordsDAWG struct {
	*RecordDAWG
}

// NewWordsDAWG оборачивает DAWG словоформ.
func NewWordsDAWG(d *DAWG) (*WordsDAWG, error) {
	r, err := NewRecordDAWG(d, 2)
	if err != nil {
		return nil, err
	}
	return &WordsDAWG{RecordDAWG: r}, nil
}

// WordItem - найденная словоформа и все её разборы.
type WordItem struct {
	Word string
	Hits []WordHit
}

// SimilarWords ищет словоформу с учётом замен символов.
func (w *WordsDAWG) SimilarWords(word string, subs Substitutes) ([]WordItem, error) {
	items, err := w.SimilarItems(word, subs)
	if err != nil {
		return nil, err
	}
	res := make([]WordItem, len(items))
	for i, item := range items {
		hits := make([]WordHit, len(item.Records))
		for j, rec := range item.Records {
			hits[j] = WordHit{ParadigmID: rec[0], Idx: rec[1]}
		}
		res[i] = WordItem{Word: item.Key, Hits: hits}
	}
	return res, nil
}

// SuffixHit - правило предсказания: окончание встречалось Count раз
// у формы Idx парадигмы ParadigmID.
type SuffixHit struct {
	Count      uint16
	ParadigmID uint16
	Idx        uint16
}

// SuffixesDAWG отображает окончание в правила предсказания.
type SuffixesDAWG struct {
	*RecordDAWG
}

// NewSuffixesDAWG оборачивает DAWG окончаний.
func NewSuffixesDAWG(d *DAWG) (*SuffixesDAWG, error) {
	r, err := NewRecordDAWG(d, 3)
	if err != nil {
		return nil, err
	}
	return &SuffixesDAWG{RecordDAWG: r}, nil
}

// SuffixItem - найденное окончание и его правила.
type SuffixItem struct {
	Suffix string
	Hits   []SuffixHit
}

// SimilarSuffixes ищет окончание с учётом замен символов.
func (s *SuffixesDAWG) SimilarSuffixes(suffix string, subs Substitutes) ([]SuffixItem, error) {
	items, err := s.SimilarItems(suffix, subs)
	if err != nil {
		return nil, err
	}
	res := make([]SuffixItem, len(items))
	for i, item := range items {
		hits := make([]SuffixHit, len(item.Records))
		for j, rec := range item.Records {
			hits[j] = SuffixHit{Count: rec[0], ParadigmID: rec[1], Idx: rec[2]}
		}
		res[i] = SuffixItem{Suffix: item.Key, Hits: hits}
	}
	return res, nil
}
