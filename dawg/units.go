// Package dawg читает двойные массивы (double-array trie) в формате dawgdic:
// словари ключей с целочисленными значениями, направляющие массивы (guide)
// для перечисления ключей и надстройки с бинарной полезной нагрузкой.
//
// Все структуры неизменяемы после загрузки и безопасны для конкурентного
// чтения из любого числа горутин.
package dawg

// Раскладка 32-битной ячейки двойного массива.
const (
	precisionMask = 0xFFFFFFFF
	isLeafBit     = 1 << 31
	hasLeafBit    = 1 << 8
	extensionBit  = 1 << 9
	offsetMax     = 1 << 21
	labelMask     = isLeafBit | 0xFF
)

// unitHasLeaf сообщает, есть ли у узла лист со значением.
func unitHasLeaf(base uint32) bool {
	return base&hasLeafBit != 0
}

// unitValue извлекает значение из листовой ячейки.
func unitValue(base uint32) uint32 {
	return base &^ isLeafBit
}

// unitLabel возвращает метку ячейки. У листовых ячеек взведён бит 31,
// поэтому их метка никогда не совпадает с байтом ключа.
func unitLabel(base uint32) uint32 {
	return base & labelMask
}

// unitOffset возвращает смещение до дочернего блока.
// Бит расширения сдвигает хранимое смещение на 8 бит влево.
func unitOffset(base uint32) uint32 {
	return (base >> 10) << ((base & extensionBit) >> 6) & precisionMask
}

// encodeOffset упаковывает смещение в ячейку; обратная операция к unitOffset.
// Возвращает false, если смещение не представимо.
func encodeOffset(offset uint32) (uint32, bool) {
	if offset < offsetMax {
		return offset << 10, true
	}
	if offset&0xFF != 0 || offset>>8 >= offsetMax {
		return 0, false
	}
	return (offset>>8)<<10 | extensionBit, true
}
