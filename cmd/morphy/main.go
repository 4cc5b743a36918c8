// Команда morphy разбирает слова из аргументов или, если их нет, из stdin
// (по слову в строке) и печатает по JSON-объекту на слово.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/steosofficial/morphy/analyzer"
	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/logger"
)

func main() {
	logger.Setup()
	log := logger.NewLogger("morphy")

	dictPath := flag.String("dict", "", "каталог словаря (по умолчанию MORPHY_DICT_PATH)")
	configPath := flag.String("config", "", "YAML-конфигурация (по умолчанию MORPHY_CONFIG_PATH)")
	withLexeme := flag.Bool("lexeme", false, "печатать все формы лучшего разбора")
	flag.Parse()

	a, err := load(*dictPath, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("не удалось загрузить анализатор")
	}
	defer a.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if err := run(a, flag.Args(), os.Stdin, out, *withLexeme); err != nil {
		log.Error().Err(err).Msg("ошибка обработки")
		out.Flush()
		os.Exit(1)
	}
}

func load(dictPath, configPath string) (*analyzer.MorphAnalyzer, error) {
	if configPath == "" {
		return analyzer.Load(dictPath)
	}
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(env)
	if dictPath == "" {
		dictPath = env.DictPath
	}
	if dictPath == "" {
		return nil, analyzer.ErrNoDictPath
	}
	return analyzer.LoadWithConfig(dictPath, cfg, analyzer.WithWorkers(env.Workers))
}

// run печатает разборы слов из args, а без аргументов - из in.
func run(a *analyzer.MorphAnalyzer, args []string, in io.Reader, out io.Writer, withLexeme bool) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	emit := func(word string) error {
		word = strings.TrimSpace(word)
		if word == "" {
			return nil
		}
		if err := enc.Encode(a.Analyze(word, withLexeme)); err != nil {
			return fmt.Errorf("ошибка записи результата: %w", err)
		}
		return nil
	}

	if len(args) > 0 {
		for _, word := range args {
			if err := emit(word); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
