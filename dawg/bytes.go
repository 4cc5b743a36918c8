package dawg

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// PayloadSeparator отделяет ключ от закодированной в base64 полезной нагрузки.
const PayloadSeparator byte = 0x01

// ErrPayload - полезная нагрузка не декодируется; словарь и компилятор несовместимы.
var ErrPayload = errors.New("dawg: повреждённая полезная нагрузка")

// Replacement - одна замена символа при нечётком поиске.
type Replacement struct {
	Text  string
	bytes []byte
}

// Substitutes сопоставляет символу упорядоченный список замен (например, "е" -> "ё").
type Substitutes map[rune][]Replacement

// CompileSubstitutes строит таблицу замен. Ключ обязан быть ровно одним символом.
func CompileSubstitutes(pairs map[string][]string) (Substitutes, error) {
	res := make(Substitutes, len(pairs))
	for from, to := range pairs {
		r, size := utf8.DecodeRuneInString(from)
		if r == utf8.RuneError || size != len(from) {
			return nil, fmt.Errorf("dawg: ключ замены %q должен быть одним символом", from)
		}
		for _, t := range to {
			if t == "" {
				return nil, fmt.Errorf("dawg: пустая замена для %q", from)
			}
			res[r] = append(res[r], Replacement{Text: t, bytes: []byte(t)})
		}
	}
	return res, nil
}

// Item - найденный ключ со всеми его полезными нагрузками.
type Item struct {
	Key    string
	Values [][]byte
}

// BytesDAWG хранит под каждым ключом одну или несколько бинарных нагрузок:
// ключ, PayloadSeparator, base64(нагрузка).
type BytesDAWG struct {
	*DAWG
}

// NewBytesDAWG оборачивает DAWG с направляющим массивом.
func NewBytesDAWG(d *DAWG) (*BytesDAWG, error) {
	if d.guide == nil {
		return nil, fmt.Errorf("%w: для полезной нагрузки нужен направляющий массив", ErrFormat)
	}
	return &BytesDAWG{DAWG: d}, nil
}

// Contains сообщает, есть ли у ключа хотя бы одна нагрузка.
func (b *BytesDAWG) Contains(key string) bool {
	_, ok := b.followKey(key, Root)
	return ok
}

// Get возвращает все нагрузки ключа; nil, если ключа нет.
func (b *BytesDAWG) Get(key string) ([][]byte, error) {
	index, ok := b.followKey(key, Root)
	if !ok {
		return nil, nil
	}
	return b.valuesAt(index)
}

func (b *BytesDAWG) followKey(key string, index uint32) (uint32, bool) {
	index, ok := b.dict.FollowString(key, index)
	if !ok {
		return 0, false
	}
	return b.dict.Transition(PayloadSeparator, index)
}

// valuesAt перечисляет все нагрузки под узлом, следующим за разделителем.
func (b *BytesDAWG) valuesAt(index uint32) ([][]byte, error) {
	var res [][]byte
	completer := NewCompleter(b.dict, b.guide)
	completer.Start(index, nil)
	for completer.Next() {
		value, err := decodePayload(completer.Key())
		if err != nil {
			return nil, err
		}
		res = append(res, value)
	}
	return res, nil
}

func decodePayload(encoded []byte) ([]byte, error) {
	encoded = bytes.TrimRight(encoded, "\n")
	value := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(value, encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayload, err)
	}
	return value[:n], nil
}

// Items перечисляет все ключи, начинающиеся с prefix, вместе с нагрузками,
// в порядке возрастания байтов. fn может остановить обход, вернув false.
func (b *BytesDAWG) Items(prefix string, fn func(key string, value []byte) bool) error {
	index, ok := b.dict.FollowString(prefix, Root)
	if !ok {
		return nil
	}
	completer := NewCompleter(b.dict, b.guide)
	completer.Start(index, []byte(prefix))
	for completer.Next() {
		raw := completer.Key()
		sep := bytes.IndexByte(raw, PayloadSeparator)
		if sep < 0 {
			return fmt.Errorf("%w: ключ без разделителя", ErrPayload)
		}
		value, err := decodePayload(raw[sep+1:])
		if err != nil {
			return err
		}
		if !fn(string(raw[:sep]), value) {
			return nil
		}
	}
	return nil
}

// Keys возвращает уникальные ключи с префиксом prefix.
func (b *BytesDAWG) Keys(prefix string) ([]string, error) {
	var keys []string
	err := b.Items(prefix, func(key string, _ []byte) bool {
		if len(keys) == 0 || keys[len(keys)-1] != key {
			keys = append(keys, key)
		}
		return true
	})
	return keys, err
}

// similarTask - ветвь нечёткого поиска: позиция в запросе, узел, уже
// пройденная часть ключа с учётом замен.
type similarTask struct {
	pos    int
	index  uint32
	prefix string
}

// SimilarItems ищет key и все его варианты, получаемые заменами из subs.
// Точное совпадение ветви идёт раньше ветвей, отщепившихся от неё;
// ветви упорядочены по позиции замены, затем по порядку списка замен.
func (b *BytesDAWG) SimilarItems(key string, subs Substitutes) ([]Item, error) {
	var res []Item
	stack := []similarTask{{pos: 0, index: Root, prefix: ""}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		found, forks := b.walkSimilar(key, task, subs)
		if found != nil {
			values, err := b.valuesAt(found.index)
			if err != nil {
				return nil, err
			}
			res = append(res, Item{Key: found.prefix, Values: values})
		}
		// Ветви кладутся в обратном порядке, чтобы первой снималась самая ранняя.
		for i := len(forks) - 1; i >= 0; i-- {
			stack = append(stack, forks[i])
		}
	}
	return res, nil
}

// SimilarKeys возвращает только найденные ключи.
func (b *BytesDAWG) SimilarKeys(key string, subs Substitutes) []string {
	var res []string
	stack := []similarTask{{pos: 0, index: Root, prefix: ""}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		found, forks := b.walkSimilar(key, task, subs)
		if found != nil {
			res = append(res, found.prefix)
		}
		for i := len(forks) - 1; i >= 0; i-- {
			stack = append(stack, forks[i])
		}
	}
	return res
}

// walkSimilar проходит остаток запроса по исходным символам, собирая ветви
// для символов с заменами. Если запрос пройден целиком и за ним следует
// разделитель, возвращает узел нагрузки и полный ключ.
func (b *BytesDAWG) walkSimilar(key string, task similarTask, subs Substitutes) (*similarTask, []similarTask) {
	var forks []similarTask
	start, index := task.pos, task.index
	pos := start
	for pos < len(key) {
		r, size := utf8.DecodeRuneInString(key[pos:])
		if len(subs) > 0 {
			for _, repl := range subs[r] {
				next, ok := b.dict.FollowBytes(repl.bytes, index)
				if !ok {
					continue
				}
				forks = append(forks, similarTask{
					pos:    pos + size,
					index:  next,
					prefix: task.prefix + key[start:pos] + repl.Text,
				})
			}
		}
		next, ok := b.dict.FollowString(key[pos:pos+size], index)
		if !ok {
			return nil, forks
		}
		index = next
		pos += size
	}
	index, ok := b.dict.Transition(PayloadSeparator, index)
	if !ok {
		return nil, forks
	}
	return &similarTask{index: index, prefix: task.prefix + key[start:]}, forks
}
