package dawg

// Completer лениво перечисляет все ключи, достижимые из заданного узла,
// в порядке возрастания байтов. Состояние - стек индексов и буфер ключа,
// поэтому обход не рекурсивен и каждый узел посещается не более одного раза.
//
// Completer не потокобезопасен; его нулевое значение готово к Start.
type Completer struct {
	dict  *Dictionary
	guide *Guide

	key     []byte
	stack   []uint32
	last    uint32
	started bool
}

// NewCompleter создаёт перечислитель над словарём и его направляющим массивом.
func NewCompleter(dict *Dictionary, guide *Guide) *Completer {
	return &Completer{dict: dict, guide: guide}
}

// Start сбрасывает состояние и начинает обход из узла index.
// prefix попадает в начало каждого возвращаемого ключа.
func (c *Completer) Start(index uint32, prefix []byte) {
	c.key = append(c.key[:0], prefix...)
	c.stack = c.stack[:0]
	c.started = false
	c.last = Root
	if c.guide != nil && c.guide.Size() > 0 {
		c.stack = append(c.stack, index)
	}
}

// Next переходит к следующему ключу. Возвращает false, когда ключи кончились.
func (c *Completer) Next() bool {
	if len(c.stack) == 0 {
		return false
	}
	index := c.stack[len(c.stack)-1]

	if c.started {
		if label := c.guide.Child(index); label != 0 {
			// Спуск к первому потомку.
			next, ok := c.follow(label, index)
			if !ok {
				c.stack = c.stack[:0]
				return false
			}
			index = next
		} else {
			for {
				sibling := c.guide.Sibling(index)
				// Возврат к родителю.
				if len(c.key) > 0 {
					c.key = c.key[:len(c.key)-1]
				}
				c.stack = c.stack[:len(c.stack)-1]
				if len(c.stack) == 0 {
					return false
				}
				index = c.stack[len(c.stack)-1]
				if sibling != 0 {
					next, ok := c.follow(sibling, index)
					if !ok {
						c.stack = c.stack[:0]
						return false
					}
					index = next
					break
				}
			}
		}
	}
	c.started = true
	return c.findTerminal(index)
}

// Key возвращает текущий ключ. Срез переиспользуется следующим вызовом Next.
func (c *Completer) Key() []byte {
	return c.key
}

// Value возвращает значение текущего ключа.
func (c *Completer) Value() uint32 {
	return c.dict.Value(c.last)
}

func (c *Completer) follow(label byte, index uint32) (uint32, bool) {
	next, ok := c.dict.Transition(label, index)
	if !ok {
		return 0, false
	}
	c.key = append(c.key, label)
	c.stack = append(c.stack, next)
	return next, true
}

// findTerminal спускается по первым потомкам до узла со значением.
func (c *Completer) findTerminal(index uint32) bool {
	for !c.dict.HasValue(index) {
		label := c.guide.Child(index)
		next, ok := c.dict.Transition(label, index)
		if !ok || label == 0 {
			c.stack = c.stack[:0]
			return false
		}
		c.key = append(c.key, label)
		c.stack = append(c.stack, next)
		index = next
	}
	c.last = index
	return true
}
