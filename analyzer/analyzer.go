// Этот файл содержит логику морфологического анализатора.
// Он загружает скомпилированный словарь pymorphy2 (DAWG-файлы отображаются
// в память) и прогоняет слово по цепочке разборщиков: словарь, форма слова,
// префиксы, окончания и, в конце, UNKN.
package analyzer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/dawg"
	"github.com/steosofficial/morphy/dictionary"
	"github.com/steosofficial/morphy/internal/cache"
	"github.com/steosofficial/morphy/logger"
	"github.com/steosofficial/morphy/tagset"
)

// ErrNoDictPath - путь к словарю не задан ни аргументом, ни в окружении.
var ErrNoDictPath = errors.New("analyzer: не задан путь к словарю (MORPHY_DICT_PATH)")

// MorphAnalyzer - готовый к работе анализатор. Безопасен для
// конкурентного использования.
type MorphAnalyzer struct {
	dict      *dictionary.Dictionary
	storage   *tagset.Storage
	units     []Unit
	subs      dawg.Substitutes
	estimator *ProbabilityEstimator
	cache     *cache.Sharded[ParsedWord]
	workers   int
	log       zerolog.Logger
}

// Option настраивает Build.
type Option func(*MorphAnalyzer)

// WithWorkers задаёт число воркеров ParseList; 0 - по числу CPU.
func WithWorkers(n int) Option {
	return func(a *MorphAnalyzer) { a.workers = n }
}

// WithLogger задаёт журнал анализатора.
func WithLogger(log zerolog.Logger) Option {
	return func(a *MorphAnalyzer) { a.log = log }
}

// Build собирает анализатор из конфигурации и загруженного словаря.
// storage должен быть тем же хранилищем, что передавалось dictionary.Load;
// после сборки оно блокируется.
// Build не читает файлов и не имеет скрытого состояния.
func Build(cfg config.Config, dict *dictionary.Dictionary, storage *tagset.Storage, opts ...Option) (*MorphAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	subs, err := cfg.Substitutes()
	if err != nil {
		return nil, err
	}

	a := &MorphAnalyzer{
		dict:      dict,
		storage:   storage,
		subs:      subs,
		estimator: NewProbabilityEstimator(dict.Probabilities),
		log:       logger.NewLogger("analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers <= 0 {
		a.workers = runtime.NumCPU()
	}
	if a.cache, err = cache.New[ParsedWord](cfg.CacheSize, cfg.CacheShards); err != nil {
		return nil, fmt.Errorf("ошибка создания кэша: %w", err)
	}

	// Префиксные разборщики разбирают остаток тем же словарным разборщиком,
	// что и цепочка; если его нет в цепочке, берётся вес 1.
	var inner *DictionaryUnit
	for _, u := range cfg.Units {
		if u.Name == config.UnitDictionary {
			inner = NewDictionaryUnit(u, dict, subs)
			break
		}
	}
	if inner == nil {
		inner = NewDictionaryUnit(config.Unit{Name: config.UnitDictionary, Score: 1}, dict, subs)
	}

	for _, u := range cfg.Units {
		var unit Unit
		switch u.Name {
		case config.UnitDictionary:
			unit = inner
		case config.UnitNumber:
			unit = NewNumberUnit(u, storage)
		case config.UnitPunctuation:
			unit = NewPunctuationUnit(u, storage)
		case config.UnitRoman:
			unit = NewRomanUnit(u, storage)
		case config.UnitLatin:
			unit = NewLatinUnit(u, storage)
		case config.UnitHyphenParticle:
			unit = NewHyphenParticleUnit(u, cfg.HyphenParticles, inner)
		case config.UnitKnownPrefix:
			if unit, err = NewKnownPrefixUnit(u, cfg.KnownPrefixes, inner); err != nil {
				return nil, err
			}
		case config.UnitUnknownPrefix:
			unit = NewUnknownPrefixUnit(u, inner)
		case config.UnitKnownSuffix:
			unit = NewKnownSuffixUnit(u, dict, subs)
		case config.UnitUnknown:
			unit = NewUnknownUnit(u, storage)
		default:
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownUnit, u.Name)
		}
		a.units = append(a.units, unit)
		a.log.Debug().Str("unit", u.Name).Float64("score", u.Score).Bool("terminate", u.Terminate).Msg("разборщик подключён")
	}
	// Теги разборщиков уже интернированы; дальше хранилище не растёт от ввода.
	storage.Lock()
	return a, nil
}

// Load загружает словарь из каталога path и собирает анализатор.
// Пустой path берётся из MORPHY_DICT_PATH, конфигурация - из
// MORPHY_CONFIG_PATH или config.Default.
func Load(path string, opts ...Option) (*MorphAnalyzer, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = env.DictPath
	}
	if path == "" {
		return nil, ErrNoDictPath
	}

	cfg := config.Default()
	if env.ConfigPath != "" {
		if cfg, err = config.Load(env.ConfigPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(env)
	if env.Workers > 0 {
		opts = append([]Option{WithWorkers(env.Workers)}, opts...)
	}
	return LoadWithConfig(path, cfg, opts...)
}

// LoadWithConfig загружает словарь и собирает анализатор по явной конфигурации.
func LoadWithConfig(path string, cfg config.Config, opts ...Option) (*MorphAnalyzer, error) {
	order, err := cfg.ByteOrder()
	if err != nil {
		return nil, err
	}
	log := logger.NewLogger("dictionary")
	storage := tagset.NewStorage()
	dict, err := dictionary.Load(path, storage, dictionary.Options{ParadigmsByteOrder: order, Logger: &log})
	if err != nil {
		return nil, err
	}
	a, err := Build(cfg, dict, storage, opts...)
	if err != nil {
		_ = dict.Close()
		return nil, err
	}
	return a, nil
}

// Close освобождает словарь.
func (a *MorphAnalyzer) Close() error {
	return a.dict.Close()
}

// Dictionary возвращает словарь анализатора.
func (a *MorphAnalyzer) Dictionary() *dictionary.Dictionary {
	return a.dict
}

// Units возвращает цепочку разборщиков.
func (a *MorphAnalyzer) Units() []Unit {
	return a.units
}

// Parse возвращает варианты разбора слова от наиболее вероятного.
// Для непустого слова результат всегда непуст, если в цепочке есть
// разборщик unknown.
func (a *MorphAnalyzer) Parse(word string) []ParsedWord {
	if word == "" {
		return nil
	}
	lower := strings.ToLower(word)
	if cached, ok := a.cache.Get(lower); ok {
		return cached
	}

	var res []ParsedWord
	seen := make(map[string]struct{})
	for _, unit := range a.units {
		parses := unit.Parse(lower)
		for _, p := range parses {
			key := p.dedupKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			p.morph = a
			res = append(res, p)
		}
		if len(parses) > 0 && unit.Terminal() {
			break
		}
	}

	a.estimator.Apply(res)
	sort.SliceStable(res, func(i, j int) bool { return res[i].Score > res[j].Score })

	a.cache.Add(lower, res)
	return res
}

// Tag возвращает различные теги разборов слова.
func (a *MorphAnalyzer) Tag(word string) []*tagset.Tag {
	var res []*tagset.Tag
	seen := make(map[string]struct{})
	for _, p := range a.Parse(word) {
		if _, ok := seen[p.Tag.Key()]; ok {
			continue
		}
		seen[p.Tag.Key()] = struct{}{}
		res = append(res, p.Tag)
	}
	return res
}

// NormalForms возвращает различные нормальные формы слова в порядке разборов.
func (a *MorphAnalyzer) NormalForms(word string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, p := range a.Parse(word) {
		if _, ok := seen[p.NormalForm]; ok {
			continue
		}
		seen[p.NormalForm] = struct{}{}
		res = append(res, p.NormalForm)
	}
	return res
}

// GetTag возвращает интернированный тег по строке.
func (a *MorphAnalyzer) GetTag(str string) *tagset.Tag {
	return a.storage.Tag(str)
}

// GetGrammeme ищет граммему по значению.
func (a *MorphAnalyzer) GetGrammeme(value string) (*tagset.Grammeme, bool) {
	return a.storage.LookupGrammeme(value)
}

// AllGrammemes возвращает все известные граммемы.
func (a *MorphAnalyzer) AllGrammemes() []*tagset.Grammeme {
	return a.storage.AllGrammemes()
}

// WordIsKnown сообщает, есть ли слово в словаре (с учётом замен символов).
func (a *MorphAnalyzer) WordIsKnown(word string) bool {
	return a.dict.WordIsKnown(strings.ToLower(word), a.subs)
}

// ParseList анализирует срез слов в конкурентном режиме, используя пул воркеров.
// Результат i соответствует words[i].
func (a *MorphAnalyzer) ParseList(words []string) [][]ParsedWord {
	return mapParallel(words, a.workers, a.Parse)
}

// LexemeList возвращает лексему лучшего разбора каждого слова.
func (a *MorphAnalyzer) LexemeList(words []string) [][]ParsedWord {
	return mapParallel(words, a.workers, func(word string) []ParsedWord {
		parses := a.Parse(word)
		if len(parses) == 0 {
			return nil
		}
		return parses[0].Lexeme()
	})
}

// mapParallel раздаёт воркерам пакеты по chunkSize слов и собирает результаты
// по индексам, поэтому порядок совпадает с порядком слов.
func mapParallel(words []string, numWorkers int, fn func(string) []ParsedWord) [][]ParsedWord {
	const chunkSize = 1000
	results := make([][]ParsedWord, len(words))
	if len(words) == 0 {
		return results
	}
	numWorkers = max(1, min(numWorkers, (len(words)+chunkSize-1)/chunkSize))

	// Канал для отправки номеров начала пакетов в воркеры.
	chunksCh := make(chan int, numWorkers)
	var wg sync.WaitGroup

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for start := range chunksCh {
				end := min(start+chunkSize, len(words))
				// Воркеры пишут в непересекающиеся элементы results.
				for j := start; j < end; j++ {
					results[j] = fn(words[j])
				}
			}
		}()
	}

	for i := 0; i < len(words); i += chunkSize {
		chunksCh <- i
	}
	close(chunksCh) // Закрываем канал, чтобы воркеры завершили работу.
	wg.Wait()
	return results
}
