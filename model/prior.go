package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"

	"github.com/prem1835/PeTaL/matrix"
)

type AlphaMode int

const (
	AlphaSymmetric AlphaMode = iota
	AlphaAsymmetric
	AlphaAuto
	AlphaFixed
)

// Alpha is a parsed document-topic prior setting.
type Alpha struct {
	Mode  AlphaMode
	Value float64 // only for AlphaFixed
}

// ParseAlpha reads "symmetric", "asymmetric", "auto" or a positive
// number. The empty string means symmetric.
func ParseAlpha(s string) (Alpha, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "symmetric":
		return Alpha{Mode: AlphaSymmetric}, nil
	case "asymmetric":
		return Alpha{Mode: AlphaAsymmetric}, nil
	case "auto":
		return Alpha{Mode: AlphaAuto}, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return Alpha{}, fmt.Errorf("%w: alpha %q", ErrBadParam, s)
	}
	return Alpha{Mode: AlphaFixed, Value: v}, nil
}

// Init returns the starting prior over topicNum topics.
func (a Alpha) Init(topicNum int) []float64 {
	alpha := make([]float64, topicNum)
	switch a.Mode {
	case AlphaFixed:
		for k := range alpha {
			alpha[k] = a.Value
		}
	case AlphaAsymmetric:
		for k := range alpha {
			alpha[k] = 1 / (float64(k) + math.Sqrt(float64(topicNum)))
		}
		floats.Scale(1/floats.Sum(alpha), alpha)
	default:
		for k := range alpha {
			alpha[k] = 1 / float64(topicNum)
		}
	}
	return alpha
}

const (
	minAlpha        = 1e-5
	alphaIterations = 20
	alphaTolerance  = 1e-6
)

// minkaUpdate runs Minka's fixed point iteration for a Dirichlet prior
// on the document-topic counts dt (documents x topics). The prior is
// updated in place.
func minkaUpdate(alpha []float64, dt *matrix.Uint32Matrix) {
	docNum, topicNum := dt.Shape()

	prev := make([]float64, len(alpha))
	for iter := 0; iter < alphaIterations; iter += 1 {
		copy(prev, alpha)
		alphaSum := floats.Sum(alpha)

		denom := 0.0
		for d := uint32(0); d < docNum; d += 1 {
			if n := dt.RowSum(d); n > 0 {
				denom += mathext.Digamma(float64(n)+alphaSum) - mathext.Digamma(alphaSum)
			}
		}
		if denom <= 0 {
			return
		}

		for k := uint32(0); k < topicNum; k += 1 {
			num := 0.0
			for d := uint32(0); d < docNum; d += 1 {
				if n := dt.Get(d, k); n > 0 {
					num += mathext.Digamma(float64(n)+alpha[k]) - mathext.Digamma(alpha[k])
				}
			}
			alpha[k] = math.Max(alpha[k]*num/denom, minAlpha)
		}

		if floats.Distance(alpha, prev, 1) < alphaTolerance {
			return
		}
	}
}
