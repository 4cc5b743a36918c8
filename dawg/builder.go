package dawg

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// Builder собирает двойной массив с направляющим массивом из набора ключей.
// Узлы не минимизируются: результат - обычный trie в формате dawgdic,
// который читается тем же кодом, что и скомпилированные словари.
// Используется для тестовых словарей и небольших служебных множеств.
type Builder struct {
	root *buildNode
}

type buildNode struct {
	children map[byte]*buildNode
	terminal bool
	value    uint32
}

// NewBuilder создаёт пустой построитель.
func NewBuilder() *Builder {
	return &Builder{root: &buildNode{}}
}

// Insert добавляет ключ со значением. Повторная вставка перезаписывает значение.
func (b *Builder) Insert(key []byte, value uint32) error {
	if bytes.IndexByte(key, 0) >= 0 {
		return fmt.Errorf("dawg: ключ %q содержит нулевой байт", key)
	}
	if value&isLeafBit != 0 {
		return fmt.Errorf("dawg: значение %d не помещается в 31 бит", value)
	}
	node := b.root
	for _, c := range key {
		if node.children == nil {
			node.children = make(map[byte]*buildNode)
		}
		child, ok := node.children[c]
		if !ok {
			child = &buildNode{}
			node.children[c] = child
		}
		node = child
	}
	node.terminal = true
	node.value = value
	return nil
}

// InsertString - Insert для строкового ключа.
func (b *Builder) InsertString(key string, value uint32) error {
	return b.Insert([]byte(key), value)
}

// InsertPayload добавляет ключ с бинарной нагрузкой в формате BytesDAWG.
// У одного ключа может быть несколько нагрузок.
func (b *Builder) InsertPayload(key string, payload []byte) error {
	encoded := base64.StdEncoding.EncodeToString(payload)
	raw := make([]byte, 0, len(key)+1+len(encoded))
	raw = append(raw, key...)
	raw = append(raw, PayloadSeparator)
	raw = append(raw, encoded...)
	return b.Insert(raw, 0)
}

// EncodeRecord упаковывает кортеж в big-endian uint16, как его читает RecordDAWG.
func EncodeRecord(values ...uint16) []byte {
	res := make([]byte, len(values)*2)
	for i, v := range values {
		binary.BigEndian.PutUint16(res[i*2:], v)
	}
	return res
}

type placed struct {
	node  *buildNode
	index uint32
}

const (
	blockSize = 256
	// openBlocks - сколько последних блоков просматривается при поиске
	// основания; свободные ячейки более старых блоков остаются пустыми.
	openBlocks = 16
	noSlot     = ^uint32(0)
)

// layout - раскладка двойного массива. Свободные ячейки открытых блоков
// связаны в кольцевой двусвязный список, поэтому поиск основания
// не сканирует весь массив.
type layout struct {
	units  []uint32
	guide  []byte
	used   []bool
	bases  map[uint32]bool
	next   []uint32
	prev   []uint32
	head   uint32
	closed uint32 // ячейки ниже closed исключены из списка
}

func newLayout() *layout {
	l := &layout{bases: make(map[uint32]bool), head: noSlot}
	l.extend()
	l.take(Root)
	return l
}

// extend добавляет блок и закрывает блоки старше openBlocks последних.
func (l *layout) extend() {
	start := uint32(len(l.units))
	l.units = append(l.units, make([]uint32, blockSize)...)
	l.used = append(l.used, make([]bool, blockSize)...)
	l.guide = append(l.guide, make([]byte, blockSize*2)...)
	l.next = append(l.next, make([]uint32, blockSize)...)
	l.prev = append(l.prev, make([]uint32, blockSize)...)
	for i := start; i < start+blockSize; i++ {
		l.push(i)
	}
	if blocks := uint32(len(l.units)) / blockSize; blocks > openBlocks {
		for limit := (blocks - openBlocks) * blockSize; l.closed < limit; l.closed++ {
			if !l.used[l.closed] {
				l.remove(l.closed)
			}
		}
	}
}

func (l *layout) push(slot uint32) {
	if l.head == noSlot {
		l.head = slot
		l.next[slot], l.prev[slot] = slot, slot
		return
	}
	tail := l.prev[l.head]
	l.next[tail], l.prev[slot] = slot, tail
	l.next[slot], l.prev[l.head] = l.head, slot
}

func (l *layout) remove(slot uint32) {
	if l.next[slot] == slot {
		l.head = noSlot
		return
	}
	l.next[l.prev[slot]] = l.next[slot]
	l.prev[l.next[slot]] = l.prev[slot]
	if l.head == slot {
		l.head = l.next[slot]
	}
}

// take помечает ячейку занятой. Занимаются только ячейки открытых блоков.
func (l *layout) take(slot uint32) {
	l.used[slot] = true
	l.remove(slot)
}

// findBase подбирает основание блока потомков: все ячейки base^label свободны,
// основание не занято другим узлом и смещение представимо в ячейке.
// Кандидаты берутся из списка свободных ячеек под первую метку.
func (l *layout) findBase(labels []byte, index uint32) (uint32, error) {
	for {
		if l.head != noSlot {
			slot := l.head
			for {
				if base := slot ^ uint32(labels[0]); l.fits(base, labels, index) {
					return base, nil
				}
				if slot = l.next[slot]; slot == l.head {
					break
				}
			}
		}
		if uint32(len(l.units)) >= offsetMax<<8 {
			return 0, fmt.Errorf("dawg: смещение узла %d не представимо", index)
		}
		l.extend()
	}
}

func (l *layout) fits(base uint32, labels []byte, index uint32) bool {
	if base == 0 || l.bases[base] {
		return false
	}
	if _, ok := encodeOffset(index ^ base); !ok {
		return false
	}
	for _, label := range labels {
		if l.used[base^uint32(label)] {
			return false
		}
	}
	return true
}

// arrays раскладывает trie по двойному массиву и строит направляющий массив.
func (b *Builder) arrays() ([]uint32, []byte, error) {
	l := newLayout()
	queue := []placed{{node: b.root, index: Root}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		labels := sortedLabels(cur.node)
		all := labels
		if cur.node.terminal {
			all = append([]byte{0}, labels...)
		}
		if len(all) == 0 {
			continue
		}

		base, err := l.findBase(all, cur.index)
		if err != nil {
			return nil, nil, err
		}
		l.bases[base] = true
		encoded, _ := encodeOffset(cur.index ^ base)
		l.units[cur.index] |= encoded

		if cur.node.terminal {
			l.units[cur.index] |= hasLeafBit
			l.units[base] = cur.node.value | isLeafBit
			l.take(base)
		}
		for i, label := range labels {
			slot := base ^ uint32(label)
			l.units[slot] = uint32(label)
			l.take(slot)
			queue = append(queue, placed{node: cur.node.children[label], index: slot})
			if i+1 < len(labels) {
				l.guide[slot*2+1] = labels[i+1]
			}
		}
		if len(labels) > 0 {
			l.guide[cur.index*2] = labels[0]
		}
	}
	return l.units, l.guide, nil
}

func sortedLabels(n *buildNode) []byte {
	labels := make([]byte, 0, len(n.children))
	for c := range n.children {
		labels = append(labels, c)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Build возвращает готовый DAWG в памяти.
func (b *Builder) Build() (*DAWG, error) {
	units, guide, err := b.arrays()
	if err != nil {
		return nil, err
	}
	return &DAWG{dict: NewDictionary(units), guide: NewGuide(guide)}, nil
}

// WriteTo сериализует словарь и направляющий массив в формате dawgdic.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	units, guide, err := b.arrays()
	if err != nil {
		return 0, err
	}
	buf := make([]byte, 0, 8+len(units)*4+len(guide))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(units)))
	for _, u := range units {
		buf = binary.LittleEndian.AppendUint32(buf, u)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(units)))
	buf = append(buf, guide...)
	n, err := w.Write(buf)
	return int64(n), err
}
