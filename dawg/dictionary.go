package dawg

// Root - индекс корневого узла любого словаря.
const Root uint32 = 0

// Dictionary - двойной массив переходов. Индекс узла - позиция его ячейки.
// Структура доверяет своим данным: массив строится офлайн-компилятором,
// поэтому проверка выполняется только на выход за границы среза.
type Dictionary struct {
	units []uint32
}

// NewDictionary оборачивает готовый массив ячеек без копирования.
func NewDictionary(units []uint32) *Dictionary {
	return &Dictionary{units: units}
}

// Size возвращает количество ячеек.
func (d *Dictionary) Size() int {
	return len(d.units)
}

// Transition выполняет переход из узла index по байту label.
// Второй результат равен false, если такого ребра нет.
func (d *Dictionary) Transition(label byte, index uint32) (uint32, bool) {
	if int(index) >= len(d.units) {
		return 0, false
	}
	next := index ^ unitOffset(d.units[index]) ^ uint32(label)
	if int(next) >= len(d.units) || unitLabel(d.units[next]) != uint32(label) {
		return 0, false
	}
	return next, true
}

// FollowBytes последовательно выполняет переходы по всем байтам key,
// начиная с index. Первый неудачный шаг прерывает обход.
func (d *Dictionary) FollowBytes(key []byte, index uint32) (uint32, bool) {
	var ok bool
	for _, c := range key {
		if index, ok = d.Transition(c, index); !ok {
			return 0, false
		}
	}
	return index, true
}

// FollowString - то же, что FollowBytes, но без копирования строки.
func (d *Dictionary) FollowString(key string, index uint32) (uint32, bool) {
	var ok bool
	for i := 0; i < len(key); i++ {
		if index, ok = d.Transition(key[i], index); !ok {
			return 0, false
		}
	}
	return index, true
}

// HasValue сообщает, заканчивается ли в узле какой-либо ключ.
func (d *Dictionary) HasValue(index uint32) bool {
	return int(index) < len(d.units) && unitHasLeaf(d.units[index])
}

// Value возвращает значение узла. Корректно только если HasValue(index).
func (d *Dictionary) Value(index uint32) uint32 {
	leaf := index ^ unitOffset(d.units[index])
	return unitValue(d.units[leaf])
}

// Contains сообщает, хранится ли key в словаре.
func (d *Dictionary) Contains(key []byte) bool {
	index, ok := d.FollowBytes(key, Root)
	return ok && d.HasValue(index)
}

// Find возвращает значение ключа.
func (d *Dictionary) Find(key []byte) (uint32, bool) {
	index, ok := d.FollowBytes(key, Root)
	if !ok || !d.HasValue(index) {
		return 0, false
	}
	return d.Value(index), true
}
