// Команда binding собирается как разделяемая библиотека (go build -buildmode=c-shared)
// и отдаёт разбор слов в виде JSON вызывающему коду на C или Python.
package main

// #include <stdlib.h>
import "C"

import (
	"encoding/json"
	"sync"
	"unsafe"

	"github.com/steosofficial/morphy/analyzer"
	"github.com/steosofficial/morphy/logger"
)

var (
	mu            sync.RWMutex
	morphAnalyzer *analyzer.MorphAnalyzer
	log           = logger.NewLogger("binding")
)

// CreateAnalyzer загружает словарь из MORPHY_DICT_PATH. Возвращает 0 при успехе.
//
//export CreateAnalyzer
func CreateAnalyzer() C.int {
	a, err := analyzer.Load("")
	if err != nil {
		log.Error().Err(err).Msg("не удалось загрузить анализатор")
		return 1
	}
	mu.Lock()
	old := morphAnalyzer
	morphAnalyzer = a
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return 0
}

// AnalyzeWord возвращает JSON с разборами и лексемой лучшего разбора.
// Строку нужно освободить через FreeString.
//
//export AnalyzeWord
func AnalyzeWord(word *C.char) *C.char {
	mu.RLock()
	defer mu.RUnlock()
	if morphAnalyzer == nil {
		return nil
	}

	result := morphAnalyzer.Analyze(C.GoString(word), true)
	data, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("ошибка сериализации разбора")
		return nil
	}
	return C.CString(string(data))
}

//export FreeString
func FreeString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

//export ReleaseAnalyzer
func ReleaseAnalyzer() {
	mu.Lock()
	defer mu.Unlock()
	if morphAnalyzer != nil {
		_ = morphAnalyzer.Close()
		morphAnalyzer = nil
	}
}

func main() {}
