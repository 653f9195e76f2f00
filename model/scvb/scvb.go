// Package scvb adapts the stochastic collapsed variational Bayes LDA of
// github.com/james-bowman/nlp to the model interface.
package scvb

import (
	"fmt"
	"runtime"

	log "github.com/golang/glog"
	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/prem1835/PeTaL/corpus"
	"github.com/prem1835/PeTaL/model"
)

func init() {
	model.Register("scvb", New)
}

// SCVB refits the whole model on every batch, the library has no
// partial fit.
type SCVB struct {
	cfg   model.Config
	alpha float64
	eta   float64

	lda  *nlp.LatentDirichletAllocation
	dict *corpus.Dictionary
	phi  *mat.Dense // topic-word distribution, K x V
}

func New(cfg model.Config) (model.Model, error) {
	prior, err := model.ParseAlpha(cfg.Alpha)
	if err != nil {
		return nil, err
	}
	if cfg.NumTopics <= 0 {
		return nil, fmt.Errorf("%w: num_topics must be positive, got %d",
			model.ErrBadParam, cfg.NumTopics)
	}

	alpha := 1 / float64(cfg.NumTopics)
	if prior.Mode == model.AlphaFixed {
		alpha = prior.Value
	} else if prior.Mode != model.AlphaSymmetric {
		log.Warningf("scvb: alpha %q not supported, using %g", cfg.Alpha, alpha)
	}
	return &SCVB{
		cfg:   cfg,
		alpha: alpha,
		eta:   cfg.TopicEta(),
	}, nil
}

func (this *SCVB) newLDA() *nlp.LatentDirichletAllocation {
	lda := nlp.NewLatentDirichletAllocation(this.cfg.NumTopics)
	lda.Iterations = this.cfg.Passes
	lda.TransformationPasses = this.cfg.Iterations
	lda.MeanChangeTolerance = this.cfg.GammaThreshold
	lda.Alpha = this.alpha
	lda.Eta = this.eta
	lda.Processes = this.cfg.Workers
	if lda.Processes == 0 {
		lda.Processes = runtime.GOMAXPROCS(0)
	}
	if this.cfg.RandomState != nil {
		lda.Rnd = rand.New(rand.NewSource(uint64(*this.cfg.RandomState)))
		// concurrent workers would interleave draws from the shared source
		if lda.Processes > 1 {
			log.Warningf("scvb: random_state set, using 1 worker instead of %d", lda.Processes)
			lda.Processes = 1
		}
	}
	return lda
}

func (this *SCVB) Update(c *corpus.Corpus) error {
	if c == nil || c.DocNum() == 0 || c.VocabSize() == 0 || c.NumTokens() == 0 {
		return model.ErrEmptyCorpus
	}
	log.V(2).Infof("scvb: fitting %d documents over %d terms", c.DocNum(), c.VocabSize())

	lda := this.newLDA()
	if _, err := lda.FitTransform(termDocMatrix(c.Docs, c.Dict.Len())); err != nil {
		return fmt.Errorf("scvb: fit: %w", err)
	}

	this.lda = lda
	this.dict = c.Dict
	this.phi = rowNormalised(lda.Components())
	return nil
}

// termDocMatrix lays the bags of words out as a sparse terms x documents
// count matrix, the orientation the library expects.
func termDocMatrix(docs []corpus.Bow, vocabSize int) mat.Matrix {
	dok := sparse.NewDOK(vocabSize, len(docs))
	for d, bow := range docs {
		for _, wc := range bow {
			dok.Set(int(wc.WordId), d, float64(wc.Count))
		}
	}
	return dok.ToCSC()
}

func rowNormalised(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for k := 0; k < r; k += 1 {
		out.SetRow(k, model.Normalised(mat.Row(nil, k, m)))
	}
	return out
}

func (this *SCVB) DocumentTopics(bow corpus.Bow) ([]model.TopicProb, error) {
	if this.lda == nil {
		return nil, model.ErrNotFitted
	}

	var known corpus.Bow
	for _, wc := range bow {
		if int(wc.WordId) < this.dict.Len() {
			known = append(known, wc)
		}
	}
	if len(known) == 0 {
		uniform := make([]float64, this.cfg.NumTopics)
		for k := range uniform {
			uniform[k] = this.alpha
		}
		return model.FilterTopics(model.Normalised(uniform), this.cfg.MinimumProbability), nil
	}

	docTopics, err := this.lda.Transform(termDocMatrix([]corpus.Bow{known}, this.dict.Len()))
	if err != nil {
		return nil, fmt.Errorf("scvb: transform: %w", err)
	}
	theta := model.Normalised(mat.Col(nil, 0, docTopics))
	return model.FilterTopics(theta, this.cfg.MinimumProbability), nil
}

func (this *SCVB) ShowTopic(topic, topn int) ([]model.TermWeight, error) {
	if this.phi == nil {
		return nil, model.ErrNotFitted
	}
	if topic < 0 || topic >= this.cfg.NumTopics {
		return nil, fmt.Errorf("%w: %d of %d", model.ErrTopicOutOfRange, topic, this.cfg.NumTopics)
	}
	return model.TopTerms(mat.Row(nil, topic, this.phi), this.dict, topn), nil
}

func (this *SCVB) NumTopics() int {
	return this.cfg.NumTopics
}
