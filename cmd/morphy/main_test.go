package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/morphy/analyzer"
	"github.com/steosofficial/morphy/config"
	"github.com/steosofficial/morphy/internal/dicttest"
	"github.com/steosofficial/morphy/logger"
)

func newAnalyzer(t *testing.T) *analyzer.MorphAnalyzer {
	t.Helper()
	t.Setenv(logger.EnvLogLevel, logger.LevelError)
	a, err := analyzer.LoadWithConfig(dicttest.Build(t, dicttest.Russian()), config.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func decode(t *testing.T, out *bytes.Buffer) []analyzer.WordResult {
	t.Helper()
	var res []analyzer.WordResult
	dec := json.NewDecoder(out)
	for dec.More() {
		var r analyzer.WordResult
		require.NoError(t, dec.Decode(&r))
		res = append(res, r)
	}
	return res
}

func TestRunArgs(t *testing.T) {
	a := newAnalyzer(t)
	var out bytes.Buffer
	require.NoError(t, run(a, []string{"красивого", "1"}, nil, &out, false))

	res := decode(t, &out)
	require.Len(t, res, 2)
	assert.Equal(t, "красивого", res[0].Word)
	assert.Equal(t, "красивый", res[0].Parses[0].Lemma)
	assert.Equal(t, "gent", res[0].Parses[0].Case)
	assert.Empty(t, res[0].Lexeme)
	assert.Equal(t, "NUMB", res[1].Parses[0].PartOfSpeech)
}

func TestRunStdinWithLexeme(t *testing.T) {
	a := newAnalyzer(t)
	var out bytes.Buffer
	require.NoError(t, run(a, nil, strings.NewReader("стол\n\n  кошка  \n"), &out, true))

	res := decode(t, &out)
	require.Len(t, res, 2)
	assert.Len(t, res[0].Lexeme, len(dicttest.Stol.Forms))
	assert.Equal(t, "кошка", res[1].Word)
}
