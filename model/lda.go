package model

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/prem1835/PeTaL/corpus"
	"github.com/prem1835/PeTaL/matrix"
	"github.com/prem1835/PeTaL/util"
)

func init() {
	Register("lda", NewLDA)
}

// LDA is latent Dirichlet allocation fitted with a collapsed gibbs
// sampler. The first batch is fitted from scratch. Later batches are
// folded in online: the topic-word statistics of earlier batches act as
// pseudo-counts while sampling and are blended with the new counts by
// the weight (offset + t)^-decay of the t-th update.
type LDA struct {
	cfg      Config
	prior    Alpha
	alpha    []float64 // document topic mixture hyperparameter
	eta      float64   // topic word mixture hyperparameter
	topicNum uint32
	seed     int64
	rng      *rand.Rand

	dict    *corpus.Dictionary
	lambda  *mat.Dense // topic-word statistics, K x V
	phi     *mat.Dense // topic-word distribution, K x V
	updates int
}

// NewLDA creates an unfitted gibbs sampled LDA model.
func NewLDA(cfg Config) (Model, error) {
	prior, err := ParseAlpha(cfg.Alpha)
	if err != nil {
		return nil, err
	}
	if cfg.NumTopics <= 0 {
		return nil, fmt.Errorf("%w: num_topics must be positive, got %d", ErrBadParam, cfg.NumTopics)
	}

	seed := time.Now().UnixNano()
	if cfg.RandomState != nil {
		seed = *cfg.RandomState
	}
	return &LDA{
		cfg:      cfg,
		prior:    prior,
		alpha:    prior.Init(cfg.NumTopics),
		eta:      cfg.TopicEta(),
		topicNum: uint32(cfg.NumTopics),
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// gibbs is the sampler state over one batch.
type gibbs struct {
	docs [][]uint32 // word of every token
	z    [][]uint32 // topic of every token

	wt  *matrix.Uint32Matrix // word-topic count table
	dt  *matrix.Uint32Matrix // doc-topic count table
	wts *matrix.Uint32Matrix // word-topic-sum count table

	pseudo    *mat.Dense // statistics of earlier batches, K x V, may be nil
	pseudoSum []float64
}

func (g *gibbs) pseudoCount(k, w uint32) float64 {
	if g.pseudo == nil {
		return 0
	}
	return g.pseudo.At(int(k), int(w))
}

func (g *gibbs) pseudoTotal(k uint32) float64 {
	if g.pseudo == nil {
		return 0
	}
	return g.pseudoSum[k]
}

func (this *LDA) Update(c *corpus.Corpus) error {
	if c == nil || c.DocNum() == 0 || c.VocabSize() == 0 || c.NumTokens() == 0 {
		return ErrEmptyCorpus
	}

	rho := 1.0
	var pseudo *mat.Dense
	if this.updates > 0 {
		rho = math.Pow(this.cfg.Offset+float64(this.updates), -this.cfg.Decay)
		pseudo = this.remap(c.Dict)
		pseudo.Scale(1-rho, pseudo)
	}
	log.V(2).Infof("lda: update %d, %d documents, %d terms, %d tokens, rho %.4f",
		this.updates, c.DocNum(), c.VocabSize(), c.NumTokens(), rho)

	g := this.initGibbs(c, pseudo)
	for pass := 0; pass < this.cfg.Passes; pass += 1 {
		this.sweep(g)
		if this.prior.Mode == AlphaAuto {
			minkaUpdate(this.alpha, g.dt)
		}
		if this.cfg.EvalEvery > 0 && (pass+1)%this.cfg.EvalEvery == 0 {
			log.V(1).Infof("update %d, pass %5d, likelihood %f",
				this.updates, pass+1, this.likelihood(g))
		}
	}

	counts := this.topicWordCounts(g)
	if pseudo != nil {
		// lambda = (1-rho)*lambda_old + rho*counts, pseudo already scaled
		counts.Scale(rho, counts)
		counts.Add(counts, pseudo)
	}
	this.lambda = counts
	this.dict = c.Dict
	this.phi = this.topicWord()
	this.updates += 1
	return nil
}

// remap carries the topic-word statistics over to a new dictionary by
// term. Terms the new dictionary lacks are dropped, new terms start at
// zero.
func (this *LDA) remap(dict *corpus.Dictionary) *mat.Dense {
	out := mat.NewDense(int(this.topicNum), dict.Len(), nil)
	for w, tok := range dict.Tokens() {
		old, ok := this.dict.ID(tok)
		if !ok {
			continue
		}
		for k := 0; k < int(this.topicNum); k += 1 {
			out.Set(k, w, this.lambda.At(k, int(old)))
		}
	}
	return out
}

func (this *LDA) initGibbs(c *corpus.Corpus, pseudo *mat.Dense) *gibbs {
	g := &gibbs{
		docs:   make([][]uint32, c.DocNum()),
		z:      make([][]uint32, c.DocNum()),
		wt:     matrix.NewUint32Matrix(c.VocabSize(), this.topicNum),
		dt:     matrix.NewUint32Matrix(c.DocNum(), this.topicNum),
		wts:    matrix.NewUint32Matrix(this.topicNum, uint32(1)),
		pseudo: pseudo,
	}
	if pseudo != nil {
		g.pseudoSum = make([]float64, this.topicNum)
		for k := range g.pseudoSum {
			g.pseudoSum[k] = floats.Sum(pseudo.RawRowView(k))
		}
	}

	// randomly assign topic to word
	for doc, wcs := range c.Docs {
		words := corpus.ExpandWords(wcs)
		g.docs[doc] = words
		g.z[doc] = make([]uint32, len(words))
		for i, w := range words {
			k := uint32(this.rng.Int31n(int32(this.topicNum)))
			g.wt.Incr(w, k, uint32(1))
			g.dt.Incr(uint32(doc), k, uint32(1))
			g.wts.Incr(k, uint32(0), uint32(1))
			g.z[doc][i] = k
		}
	}
	return g
}

// sweep resamples the topic of every token once.
func (this *LDA) sweep(g *gibbs) {
	vocabSize, _ := g.wt.Shape()
	vEta := float64(vocabSize) * this.eta

	cumsum := make([]float64, this.topicNum)
	for doc, words := range g.docs {
		d := uint32(doc)
		for i, w := range words {
			k := g.z[doc][i]

			// decrease corresponding sufficient statistics
			g.wt.Decr(w, k, uint32(1))
			g.dt.Decr(d, k, uint32(1))
			g.wts.Decr(k, uint32(0), uint32(1))

			// resample the topic
			sum := 0.0
			for kidx := uint32(0); kidx < this.topicNum; kidx += 1 {
				docPart := this.alpha[kidx] + float64(g.dt.Get(d, kidx))
				wordPart := (this.eta + float64(g.wt.Get(w, kidx)) + g.pseudoCount(kidx, w)) /
					(float64(g.wts.Get(kidx, uint32(0))) + g.pseudoTotal(kidx) + vEta)
				sum += docPart * wordPart
				cumsum[kidx] = sum
			}
			k = uint32(sampleIndex(this.rng, cumsum))

			// increase corresponding sufficient statistics
			g.wt.Incr(w, k, uint32(1))
			g.dt.Incr(d, k, uint32(1))
			g.wts.Incr(k, uint32(0), uint32(1))
			g.z[doc][i] = k
		}
	}
}

// sampleIndex draws an index from unnormalised cumulative weights.
func sampleIndex(rng *rand.Rand, cumsum []float64) int {
	last := len(cumsum) - 1
	u := rng.Float64() * cumsum[last]
	for k, c := range cumsum {
		if u < c {
			return k
		}
	}
	return last
}

// compute the joint likelihood of the batch under the current counts
func (this *LDA) likelihood(g *gibbs) float64 {
	vocabSize, _ := g.wt.Shape()
	vEta := float64(vocabSize) * this.eta
	alphaSum := floats.Sum(this.alpha)

	sum := 0.0
	for doc, words := range g.docs {
		d := uint32(doc)
		docLen := float64(len(words))
		for _, w := range words {
			topicSum := 0.0
			for k := uint32(0); k < this.topicNum; k += 1 {
				theta := (float64(g.dt.Get(d, k)) + this.alpha[k]) / (docLen + alphaSum)
				phi := (float64(g.wt.Get(w, k)) + g.pseudoCount(k, w) + this.eta) /
					(float64(g.wts.Get(k, uint32(0))) + g.pseudoTotal(k) + vEta)
				topicSum += theta * phi
			}
			sum += math.Log(topicSum)
		}
	}
	return sum
}

func (this *LDA) topicWordCounts(g *gibbs) *mat.Dense {
	vocabSize, _ := g.wt.Shape()
	counts := mat.NewDense(int(this.topicNum), int(vocabSize), nil)
	for w := uint32(0); w < vocabSize; w += 1 {
		for k, n := range g.wt.Row(w) {
			counts.Set(k, int(w), float64(n))
		}
	}
	return counts
}

// compute the posterior point estimation of topic-word mixture
// eta (Dirichlet prior) + lambda -> phi
func (this *LDA) topicWord() *mat.Dense {
	topicNum, vocabSize := this.lambda.Dims()
	phi := mat.NewDense(topicNum, vocabSize, nil)
	vEta := float64(vocabSize) * this.eta
	for k := 0; k < topicNum; k += 1 {
		sum := floats.Sum(this.lambda.RawRowView(k))
		for w := 0; w < vocabSize; w += 1 {
			phi.Set(k, w, (this.lambda.At(k, w)+this.eta)/(sum+vEta))
		}
	}
	return phi
}

func (this *LDA) DocumentTopics(bow corpus.Bow) ([]TopicProb, error) {
	if this.phi == nil {
		return nil, ErrNotFitted
	}
	return FilterTopics(this.infer(bow), this.cfg.MinimumProbability), nil
}

// infer samples the topics of an unseen document with the topic-word
// distribution held fixed and returns theta averaged over the sweeps.
// The sampler is reseeded on every call so that a document always gets
// the same answer from the same model.
func (this *LDA) infer(bow corpus.Bow) []float64 {
	_, vocabSize := this.phi.Dims()
	words := make([]uint32, 0, bow.Len())
	for _, w := range corpus.ExpandWords(bow) {
		if int(w) < vocabSize {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return Normalised(this.alpha)
	}

	topicNum := int(this.topicNum)
	rng := rand.New(rand.NewSource(this.seed))
	z := make([]int, len(words))
	nk := make([]float64, topicNum)
	for i := range words {
		z[i] = rng.Intn(topicNum)
		nk[z[i]] += 1
	}

	docLen := float64(len(words))
	alphaSum := floats.Sum(this.alpha)
	cumsum := make([]float64, topicNum)
	theta := make([]float64, topicNum)
	prev := make([]float64, topicNum)
	for iter := 1; iter <= this.cfg.Iterations; iter += 1 {
		for i, w := range words {
			nk[z[i]] -= 1
			sum := 0.0
			for k := 0; k < topicNum; k += 1 {
				sum += (nk[k] + this.alpha[k]) * this.phi.At(k, int(w))
				cumsum[k] = sum
			}
			z[i] = sampleIndex(rng, cumsum)
			nk[z[i]] += 1
		}

		copy(prev, theta)
		for k := range theta {
			cur := (nk[k] + this.alpha[k]) / (docLen + alphaSum)
			theta[k] += (cur - theta[k]) / float64(iter)
		}
		if iter > 1 && util.MeanAbsDiff(theta, prev) < this.cfg.GammaThreshold {
			break
		}
	}
	return theta
}

func (this *LDA) ShowTopic(topic, topn int) ([]TermWeight, error) {
	if this.phi == nil {
		return nil, ErrNotFitted
	}
	if topic < 0 || topic >= int(this.topicNum) {
		return nil, fmt.Errorf("%w: %d of %d", ErrTopicOutOfRange, topic, this.topicNum)
	}
	return TopTerms(mat.Row(nil, topic, this.phi), this.dict, topn), nil
}

func (this *LDA) NumTopics() int {
	return int(this.topicNum)
}

// Alpha returns a copy of the current document-topic prior.
func (this *LDA) Alpha() []float64 {
	out := make([]float64, len(this.alpha))
	copy(out, this.alpha)
	return out
}
