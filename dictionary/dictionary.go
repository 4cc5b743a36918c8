// Package dictionary загружает скомпилированный словарь в формате pymorphy2
// (версия 2.4) и восстанавливает по парадигмам основы, нормальные формы и теги.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/steosofficial/morphy/dawg"
	"github.com/steosofficial/morphy/logger"
	"github.com/steosofficial/morphy/tagset"
)

// ErrUnsupportedFormat - версия формата словаря не поддерживается.
var ErrUnsupportedFormat = errors.New("dictionary: неподдерживаемая версия формата")

// Имена файлов словаря.
const (
	MetaFile          = "meta.json"
	WordsFile         = "words.dawg"
	ParadigmsFile     = "paradigms.array"
	SuffixesFile      = "suffixes.json"
	GrammemesFile     = "grammemes.json"
	GramtabFile       = "gramtab-opencorpora-int.json"
	ProbabilitiesFile = "p_t_given_w.intdawg"
)

// PredictionSuffixesFile возвращает имя файла окончаний для i-го парадигматического префикса.
func PredictionSuffixesFile(i int) string {
	return fmt.Sprintf("prediction-suffixes-%d.dawg", i)
}

// ShapeGrammeme описывает граммему, которой нет в grammemes.json,
// но которую выдают анализаторы формы слова.
type ShapeGrammeme struct {
	Value, Parent, Alias, Description string
}

// ShapeGrammemes регистрируются при каждой загрузке словаря.
var ShapeGrammemes = []ShapeGrammeme{
	{"NUMB", tagset.CategoryPOS, "ЧИСЛО", "число"},
	{"intg", "", "цел", "целое число"},
	{"real", "", "вещ", "вещественное число"},
	{"LATN", tagset.CategoryPOS, "ЛАТ", "токен состоит из латинских букв"},
	{"PNCT", tagset.CategoryPOS, "ЗПР", "пунктуация"},
	{"ROMN", tagset.CategoryPOS, "РИМ", "римское число"},
	{"UNKN", tagset.CategoryPOS, "НЕИЗВ", "токен не удалось разобрать"},
}

// Options задаёт параметры загрузки. Нулевое значение пригодно к использованию.
type Options struct {
	// ParadigmsByteOrder - порядок байт paradigms.array; по умолчанию big-endian.
	ParadigmsByteOrder binary.ByteOrder
	Logger             *zerolog.Logger
}

// FormInfo - одна форма парадигмы.
type FormInfo struct {
	Prefix string
	Tag    *tagset.Tag
	Suffix string
}

// KnownWord - словарная форма при перечислении словаря.
type KnownWord struct {
	Word       string
	Tag        *tagset.Tag
	NormalForm string
	ParadigmID int
	Idx        int
}

// Dictionary - загруженный словарь. После Load только читается и
// безопасен для конкурентного использования.
type Dictionary struct {
	Meta Meta

	Words              *dawg.WordsDAWG
	PredictionSuffixes []*dawg.SuffixesDAWG
	// Probabilities - таблица P(t|w)·1e6; nil, если её нет в словаре.
	Probabilities *dawg.IntDAWG

	Paradigms        []Paradigm
	Suffixes         []string
	ParadigmPrefixes []string
	Gramtab          []*tagset.Tag

	storage *tagset.Storage
	closers []io.Closer
}

// Load читает словарь из каталога path. Граммемы регистрируются в storage.
// При ошибке уже открытые отображения файлов освобождаются.
func Load(path string, storage *tagset.Storage, opts Options) (_ *Dictionary, err error) {
	log := opts.Logger
	if log == nil {
		l := logger.NewLogger("dictionary")
		log = &l
	}
	order := opts.ParadigmsByteOrder
	if order == nil {
		order = binary.BigEndian
	}

	d := &Dictionary{storage: storage}
	defer func() {
		if err != nil {
			_ = d.Close()
		}
	}()

	for _, name := range []string{MetaFile, WordsFile, ParadigmsFile, SuffixesFile, GrammemesFile, GramtabFile, ProbabilitiesFile} {
		if err := ensureMerged(filepath.Join(path, name), log); err != nil {
			return nil, err
		}
	}

	metaData, err := os.ReadFile(filepath.Join(path, MetaFile))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", MetaFile, err)
	}
	if d.Meta, err = parseMeta(metaData); err != nil {
		return nil, err
	}
	if d.Meta.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("%w: %q (ожидается %q)", ErrUnsupportedFormat, d.Meta.FormatVersion, FormatVersion)
	}
	d.ParadigmPrefixes = d.Meta.ParadigmPrefixes

	if err := d.loadGrammemes(filepath.Join(path, GrammemesFile)); err != nil {
		return nil, err
	}
	if err := d.loadGramtab(filepath.Join(path, GramtabFile)); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(path, SuffixesFile), &d.Suffixes); err != nil {
		return nil, err
	}
	if d.Paradigms, err = loadParadigms(filepath.Join(path, ParadigmsFile), order); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, err
	}

	words, err := d.open(filepath.Join(path, WordsFile), true)
	if err != nil {
		return nil, err
	}
	if d.Words, err = dawg.NewWordsDAWG(words); err != nil {
		return nil, fmt.Errorf("%s: %w", WordsFile, err)
	}

	for i := range d.ParadigmPrefixes {
		name := PredictionSuffixesFile(i)
		if err := ensureMerged(filepath.Join(path, name), log); err != nil {
			return nil, err
		}
		raw, err := d.open(filepath.Join(path, name), true)
		if err != nil {
			return nil, err
		}
		suffixes, err := dawg.NewSuffixesDAWG(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		d.PredictionSuffixes = append(d.PredictionSuffixes, suffixes)
	}

	probPath := filepath.Join(path, ProbabilitiesFile)
	if _, statErr := os.Stat(probPath); statErr == nil {
		raw, err := d.open(probPath, true)
		if err != nil {
			return nil, err
		}
		d.Probabilities = dawg.NewIntDAWG(raw)
	} else if d.Meta.HasProbabilities {
		log.Warn().Str("file", ProbabilitiesFile).Msg("meta.json объявляет P(t|w), но файла нет")
	}

	log.Info().
		Str("path", path).
		Str("language", d.Meta.Language).
		Int("paradigms", len(d.Paradigms)).
		Int("suffixes", len(d.Suffixes)).
		Int("tags", len(d.Gramtab)).
		Int("prefixes", len(d.ParadigmPrefixes)).
		Bool("probabilities", d.Probabilities != nil).
		Msg("словарь загружен")
	return d, nil
}

func (d *Dictionary) open(path string, withGuide bool) (*dawg.DAWG, error) {
	raw, err := dawg.Open(path, withGuide)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, raw)
	return raw, nil
}

func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ошибка открытия %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(v); err != nil {
		return fmt.Errorf("ошибка разбора %s: %w", filepath.Base(path), err)
	}
	return nil
}

// loadGrammemes регистрирует граммемы [name, parent, alias, description].
// Граммемы должны быть известны до создания тегов: категории тега
// вычисляются при его разборе.
func (d *Dictionary) loadGrammemes(path string) error {
	var rows [][]*string
	if err := readJSON(path, &rows); err != nil {
		return err
	}
	field := func(row []*string, i int) string {
		if i < len(row) && row[i] != nil {
			return *row[i]
		}
		return ""
	}
	for i, row := range rows {
		name := field(row, 0)
		if name == "" {
			return fmt.Errorf("%s: пустое имя граммемы в строке %d", GrammemesFile, i)
		}
		d.storage.AddGrammeme(name, field(row, 1), field(row, 2), field(row, 3))
	}
	for _, g := range ShapeGrammemes {
		d.storage.AddGrammeme(g.Value, g.Parent, g.Alias, g.Description)
	}
	return nil
}

func (d *Dictionary) loadGramtab(path string) error {
	var tags []string
	if err := readJSON(path, &tags); err != nil {
		return err
	}
	d.Gramtab = make([]*tagset.Tag, len(tags))
	for i, s := range tags {
		d.Gramtab[i] = d.storage.Tag(s)
	}
	return nil
}

func loadParadigms(path string, order binary.ByteOrder) ([]Paradigm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия %s: %w", ParadigmsFile, err)
	}
	defer f.Close()
	return readParadigms(bufio.NewReader(f), order)
}

// validate проверяет, что все номера в парадигмах указывают в пределы таблиц.
func (d *Dictionary) validate() error {
	for id, p := range d.Paradigms {
		for idx := 0; idx < p.Size(); idx++ {
			if int(p.SuffixID(idx)) >= len(d.Suffixes) {
				return fmt.Errorf("парадигма %d, форма %d: окончание %d вне таблицы", id, idx, p.SuffixID(idx))
			}
			if int(p.TagID(idx)) >= len(d.Gramtab) {
				return fmt.Errorf("парадигма %d, форма %d: тег %d вне таблицы", id, idx, p.TagID(idx))
			}
			if int(p.PrefixID(idx)) >= len(d.ParadigmPrefixes) {
				return fmt.Errorf("парадигма %d, форма %d: префикс %d вне таблицы", id, idx, p.PrefixID(idx))
			}
		}
	}
	return nil
}

// Close освобождает отображённые в память файлы.
func (d *Dictionary) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// Storage возвращает хранилище граммем, в котором зарегистрирован словарь.
func (d *Dictionary) Storage() *tagset.Storage {
	return d.storage
}

// ParadigmSize возвращает количество форм парадигмы.
func (d *Dictionary) ParadigmSize(paradigmID int) int {
	return d.Paradigms[paradigmID].Size()
}

// BuildTag возвращает тег формы idx парадигмы.
func (d *Dictionary) BuildTag(paradigmID, idx int) *tagset.Tag {
	return d.Gramtab[d.Paradigms[paradigmID].TagID(idx)]
}

// BuildStem отрезает от word префикс и окончание формы idx.
// Если слово короче префикса и окончания, основа пустая.
func (d *Dictionary) BuildStem(paradigmID, idx int, word string) string {
	p := d.Paradigms[paradigmID]
	prefix := d.ParadigmPrefixes[p.PrefixID(idx)]
	suffix := d.Suffixes[p.SuffixID(idx)]
	start := min(len(prefix), len(word))
	end := max(len(word)-len(suffix), start)
	return word[start:end]
}

// BuildNormalForm строит форму 0 по форме idx.
func (d *Dictionary) BuildNormalForm(paradigmID, idx int, word string) string {
	if idx == 0 {
		return word
	}
	p := d.Paradigms[paradigmID]
	stem := d.BuildStem(paradigmID, idx, word)
	return d.ParadigmPrefixes[p.PrefixID(0)] + stem + d.Suffixes[p.SuffixID(0)]
}

// BuildParadigmInfo раскрывает парадигму в список форм.
func (d *Dictionary) BuildParadigmInfo(paradigmID int) []FormInfo {
	p := d.Paradigms[paradigmID]
	res := make([]FormInfo, p.Size())
	for idx := range res {
		res[idx] = FormInfo{
			Prefix: d.ParadigmPrefixes[p.PrefixID(idx)],
			Tag:    d.Gramtab[p.TagID(idx)],
			Suffix: d.Suffixes[p.SuffixID(idx)],
		}
	}
	return res
}

// BuildForms строит все формы парадигмы по форме idx слова word.
func (d *Dictionary) BuildForms(paradigmID, idx int, word string) []string {
	stem := d.BuildStem(paradigmID, idx, word)
	info := d.BuildParadigmInfo(paradigmID)
	res := make([]string, len(info))
	for i, form := range info {
		res[i] = form.Prefix + stem + form.Suffix
	}
	return res
}

// WordIsKnown сообщает, есть ли слово в словаре с учётом замен символов.
func (d *Dictionary) WordIsKnown(word string, subs dawg.Substitutes) bool {
	if subs == nil {
		return d.Words.Bytes().Contains(word)
	}
	return len(d.Words.Bytes().SimilarKeys(word, subs)) > 0
}

// IterKnownWords перечисляет словарные формы с префиксом prefix.
// Перечисление прекращается, если fn вернула false.
func (d *Dictionary) IterKnownWords(prefix string, fn func(KnownWord) bool) error {
	return d.Words.Items(prefix, func(word string, rec []uint16) bool {
		paradigmID, idx := int(rec[0]), int(rec[1])
		return fn(KnownWord{
			Word:       word,
			Tag:        d.BuildTag(paradigmID, idx),
			NormalForm: d.BuildNormalForm(paradigmID, idx, word),
			ParadigmID: paradigmID,
			Idx:        idx,
		})
	})
}

// Tags возвращает теги слова из словаря без учёта замен.
func (d *Dictionary) Tags(word string) ([]*tagset.Tag, error) {
	recs, err := d.Words.Get(word)
	if err != nil {
		return nil, err
	}
	res := make([]*tagset.Tag, 0, len(recs))
	for _, rec := range recs {
		res = append(res, d.BuildTag(int(rec[0]), int(rec[1])))
	}
	return res, nil
}
