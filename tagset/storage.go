package tagset

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Storage интернирует граммемы и теги. Один экземпляр передаётся всем
// компонентам анализатора; тесты создают собственные изолированные хранилища.
//
// Все методы безопасны для конкурентного использования. После Lock новые
// граммемы и теги по-прежнему строятся, но не сохраняются, чтобы
// произвольный пользовательский ввод не раздувал хранилище.
type Storage struct {
	grammemes sync.Map // map[string]*Grammeme
	folded    sync.Map // map[string]*Grammeme, ключ в нижнем регистре
	tags      sync.Map // map[string]*Tag

	locked atomic.Bool
}

// NewStorage создаёт пустое хранилище.
func NewStorage() *Storage {
	return &Storage{}
}

// AddGrammeme регистрирует граммему. Повторная регистрация значения
// возвращает уже сохранённый экземпляр.
func (s *Storage) AddGrammeme(value, parent, alias, description string) *Grammeme {
	g := &Grammeme{
		Value:       value,
		ParentValue: parent,
		Alias:       alias,
		Description: description,
		storage:     s,
	}
	if s.locked.Load() {
		if existing, ok := s.grammemes.Load(value); ok {
			return existing.(*Grammeme)
		}
		return g
	}
	actual, _ := s.grammemes.LoadOrStore(value, g)
	s.folded.LoadOrStore(strings.ToLower(value), actual)
	return actual.(*Grammeme)
}

// LookupGrammeme ищет граммему по точному значению, затем без учёта регистра.
// В наборе OpenCorpora есть пары вроде ANim/anim, поэтому точное совпадение важнее.
func (s *Storage) LookupGrammeme(value string) (*Grammeme, bool) {
	if g, ok := s.grammemes.Load(value); ok {
		return g.(*Grammeme), true
	}
	if g, ok := s.folded.Load(strings.ToLower(value)); ok {
		return g.(*Grammeme), true
	}
	return nil, false
}

// Grammeme возвращает граммему, создавая её без родителя, если она неизвестна.
func (s *Storage) Grammeme(value string) *Grammeme {
	if g, ok := s.LookupGrammeme(value); ok {
		return g
	}
	return s.AddGrammeme(value, "", "", "")
}

// AllGrammemes возвращает все зарегистрированные граммемы, упорядоченные по значению.
func (s *Storage) AllGrammemes() []*Grammeme {
	var res []*Grammeme
	s.grammemes.Range(func(_, v any) bool {
		res = append(res, v.(*Grammeme))
		return true
	})
	sort.Slice(res, func(i, j int) bool { return res[i].Value < res[j].Value })
	return res
}

// Tag возвращает тег, разобранный из строки вида "NOUN,anim,masc sing,nomn".
// Теги интернируются по исходной строке.
func (s *Storage) Tag(str string) *Tag {
	if t, ok := s.tags.Load(str); ok {
		return t.(*Tag)
	}
	t := newTag(str, s)
	if s.locked.Load() {
		return t
	}
	actual, _ := s.tags.LoadOrStore(str, t)
	return actual.(*Tag)
}

// Lock запрещает сохранение новых граммем и тегов.
func (s *Storage) Lock() {
	s.locked.Store(true)
}

// IsLocked сообщает, заблокировано ли хранилище.
func (s *Storage) IsLocked() bool {
	return s.locked.Load()
}
