package dictionary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Paradigm - сжатая таблица словоизменения из L форм:
// [суффиксы; L][теги; L][префиксы; L]. Форма 0 - нормальная форма.
type Paradigm []uint16

// Size возвращает количество форм.
func (p Paradigm) Size() int { return len(p) / 3 }

// SuffixID возвращает номер окончания формы idx.
func (p Paradigm) SuffixID(idx int) uint16 { return p[idx] }

// TagID возвращает номер тега формы idx.
func (p Paradigm) TagID(idx int) uint16 { return p[p.Size()+idx] }

// PrefixID возвращает номер парадигматического префикса формы idx.
func (p Paradigm) PrefixID(idx int) uint16 { return p[2*p.Size()+idx] }

// readParadigms читает paradigms.array: количество парадигм, затем для
// каждой длину и столько же коротких целых.
func readParadigms(r io.Reader, order binary.ByteOrder) ([]Paradigm, error) {
	var count uint16
	if err := binary.Read(r, order, &count); err != nil {
		return nil, fmt.Errorf("ошибка чтения количества парадигм: %w", err)
	}
	paradigms := make([]Paradigm, count)
	for i := range paradigms {
		var length uint16
		if err := binary.Read(r, order, &length); err != nil {
			return nil, fmt.Errorf("ошибка чтения длины парадигмы %d: %w", i, err)
		}
		if length%3 != 0 {
			return nil, fmt.Errorf("парадигма %d: длина %d не кратна 3", i, length)
		}
		para := make(Paradigm, length)
		if err := binary.Read(r, order, []uint16(para)); err != nil {
			return nil, fmt.Errorf("ошибка чтения парадигмы %d: %w", i, err)
		}
		paradigms[i] = para
	}
	return paradigms, nil
}

// WriteParadigms сериализует парадигмы в формате paradigms.array.
func WriteParadigms(w io.Writer, order binary.ByteOrder, paradigms []Paradigm) error {
	if err := binary.Write(w, order, uint16(len(paradigms))); err != nil {
		return err
	}
	for _, p := range paradigms {
		if err := binary.Write(w, order, uint16(len(p))); err != nil {
			return err
		}
		if err := binary.Write(w, order, []uint16(p)); err != nil {
			return err
		}
	}
	return nil
}
