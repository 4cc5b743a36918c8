package analyzer

import (
	"fmt"
	"testing"
	"time"
)

// Эта переменная нужна, чтобы компилятор не "выкинул" вызовы наших функций
// как бесполезные.
var benchmarkResult any

// benchWords набирает count слов из словарных, предсказываемых и служебных токенов.
func benchWords(count int) []string {
	base := []string{"красивого", "кошек", "столом", "елка", "псевдокошка", "бутявка", "читаю-ка", "xiv", "3,14", ".", "ъь"}
	words := make([]string, count)
	for i := range words {
		words[i] = base[i%len(base)]
	}
	return words
}

// BenchmarkParseSequential тестирует производительность метода Parse.
func BenchmarkParseSequential(b *testing.B) {
	for _, count := range []int{10_000} {
		b.Run(fmt.Sprintf("%d_words", count), func(b *testing.B) {
			words := benchWords(count)

			b.ReportAllocs()
			b.ResetTimer()
			startTime := time.Now()

			for i := 0; i < b.N; i++ {
				for _, word := range words {
					benchmarkResult = plain.Parse(word)
				}
			}

			b.StopTimer()
			avgTimePerWord := time.Since(startTime) / time.Duration(len(words)*b.N)
			b.Logf("Среднее на слово: %s, слов в секунду: %.0f",
				avgTimePerWord, float64(time.Second)/float64(max(avgTimePerWord, 1)))
		})
	}
}

// BenchmarkParseList измеряет производительность пакетной обработки разбора слов.
func BenchmarkParseList(b *testing.B) {
	for _, count := range []int{10_000} {
		b.Run(fmt.Sprintf("%d_words", count), func(b *testing.B) {
			words := benchWords(count)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				benchmarkResult = plain.ParseList(words)
			}
		})
	}
}
