package dawg

// Guide хранит для каждого узла пару байтов: метку первого потомка
// и метку следующего брата. Используется только для порядка перечисления.
type Guide struct {
	units []byte
}

// NewGuide оборачивает массив пар без копирования.
func NewGuide(units []byte) *Guide {
	return &Guide{units: units}
}

// Child возвращает метку первого потомка узла или 0.
func (g *Guide) Child(index uint32) byte {
	i := int(index) * 2
	if i >= len(g.units) {
		return 0
	}
	return g.units[i]
}

// Sibling возвращает метку следующего брата узла или 0.
func (g *Guide) Sibling(index uint32) byte {
	i := int(index)*2 + 1
	if i >= len(g.units) {
		return 0
	}
	return g.units[i]
}

// Size возвращает длину массива в байтах.
func (g *Guide) Size() int {
	return len(g.units)
}
