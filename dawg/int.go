package dawg

// IntDAWG хранит целое значение прямо в листе ключа.
// Если у DAWG есть направляющий массив, ключи можно перечислять.
type IntDAWG struct {
	*DAWG
}

// NewIntDAWG оборачивает DAWG с целочисленными значениями.
func NewIntDAWG(d *DAWG) *IntDAWG {
	return &IntDAWG{DAWG: d}
}

// Get возвращает значение ключа.
func (d *IntDAWG) Get(key string) (int, bool) {
	index, ok := d.dict.FollowString(key, Root)
	if !ok || !d.dict.HasValue(index) {
		return 0, false
	}
	return int(d.dict.Value(index)), true
}

// Items перечисляет ключи с префиксом prefix. Требует направляющего массива.
func (d *IntDAWG) Items(prefix string, fn func(key string, value int) bool) {
	if d.guide == nil {
		return
	}
	index, ok := d.dict.FollowString(prefix, Root)
	if !ok {
		return
	}
	completer := NewCompleter(d.dict, d.guide)
	completer.Start(index, []byte(prefix))
	for completer.Next() {
		if !fn(string(completer.Key()), int(completer.Value())) {
			return
		}
	}
}

// PrefixesDAWG - множество строк с поиском всех сохранённых префиксов слова.
type PrefixesDAWG struct {
	*DAWG
}

// NewPrefixesDAWG оборачивает DAWG множества строк.
func NewPrefixesDAWG(d *DAWG) *PrefixesDAWG {
	return &PrefixesDAWG{DAWG: d}
}

// Contains сообщает, входит ли key в множество.
func (d *PrefixesDAWG) Contains(key string) bool {
	index, ok := d.dict.FollowString(key, Root)
	return ok && d.dict.HasValue(index)
}

// Prefixes возвращает все ключи множества, являющиеся префиксами word,
// от коротких к длинным.
func (d *PrefixesDAWG) Prefixes(word string) []string {
	var res []string
	index := Root
	for i := 0; i < len(word); i++ {
		var ok bool
		if index, ok = d.dict.Transition(word[i], index); !ok {
			break
		}
		if d.dict.HasValue(index) {
			res = append(res, word[:i+1])
		}
	}
	return res
}
