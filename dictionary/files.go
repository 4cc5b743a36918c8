package dictionary

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// partSuffix - суффикс частей, на которые делят большие файлы словаря
// (например, split -b 50m words.dawg words.dawg.part-).
const partSuffix = ".part-"

// ensureMerged собирает файл из частей <path>.part-*, если самого файла нет.
// Отсутствие и файла, и частей не ошибка: её сообщит последующее открытие.
func ensureMerged(path string, log *zerolog.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка проверки файла %s: %w", path, err)
	}

	partFiles, err := filepath.Glob(path + partSuffix + "*")
	if err != nil {
		return fmt.Errorf("ошибка при поиске частей %s: %w", path, err)
	}
	if len(partFiles) == 0 {
		return nil
	}
	// split по умолчанию создаёт суффиксы aa, ab, ac..., лексикографический
	// порядок совпадает с порядком частей.
	sort.Strings(partFiles)
	log.Info().Str("file", filepath.Base(path)).Int("parts", len(partFiles)).Msg("объединение частей словаря")

	// Пишем во временный файл и переименовываем, чтобы прерванное
	// объединение не оставило обрезанный словарь.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".merge-*")
	if err != nil {
		return fmt.Errorf("ошибка создания выходного файла для %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	for _, partPath := range partFiles {
		if err := appendFile(tmp, partPath); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("ошибка переименования в %s: %w", path, err)
	}
	return nil
}

func appendFile(dst io.Writer, partPath string) error {
	in, err := os.Open(partPath)
	if err != nil {
		return fmt.Errorf("ошибка открытия части файла %s: %w", partPath, err)
	}
	defer in.Close()
	if _, err := io.Copy(dst, in); err != nil {
		return fmt.Errorf("ошибка копирования данных из %s: %w", partPath, err)
	}
	return nil
}
