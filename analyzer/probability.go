package analyzer

import (
	"github.com/steosofficial/morphy/dawg"
)

// probabilityScale - масштаб целочисленных вероятностей в p_t_given_w.intdawg.
const probabilityScale = 1_000_000

// probabilityEpsilon - сумма вероятностей ниже порога считается отсутствием данных.
const probabilityEpsilon = 1e-9

// ProbabilityEstimator пересчитывает оценки разборов по таблице P(тег|слово).
// Без таблицы или без данных о слове оценки нормируются к сумме 1.
type ProbabilityEstimator struct {
	table *dawg.IntDAWG
}

// NewProbabilityEstimator создаёт оценщик; table может быть nil.
func NewProbabilityEstimator(table *dawg.IntDAWG) *ProbabilityEstimator {
	return &ProbabilityEstimator{table: table}
}

// Probability возвращает P(тег|слово) для разбора.
func (e *ProbabilityEstimator) Probability(p ParsedWord) (float64, bool) {
	if e == nil || e.table == nil {
		return 0, false
	}
	// Ключ строится по исходному слову, а не по найденной в словаре форме.
	v, ok := e.table.Get(p.Word + ":" + p.Tag.String())
	if !ok {
		return 0, false
	}
	return float64(v) / probabilityScale, true
}

// Apply пересчитывает оценки на месте.
func (e *ProbabilityEstimator) Apply(parses []ParsedWord) {
	if len(parses) == 0 {
		return
	}
	if e != nil && e.table != nil {
		probs := make([]float64, len(parses))
		var sum float64
		for i, p := range parses {
			probs[i], _ = e.Probability(p)
			sum += probs[i]
		}
		if sum > probabilityEpsilon {
			for i := range parses {
				parses[i] = parses[i].Rescore(probs[i])
			}
			return
		}
	}

	var total float64
	for _, p := range parses {
		total += p.Score
	}
	if total <= 0 {
		return
	}
	for i := range parses {
		parses[i] = parses[i].Rescore(parses[i].Score / total)
	}
}
