// Package classifier infers whether a described expense is a need or a want
// and assigns it a spending category. Classification is a two-stage
// pipeline: the need/want decision comes first, and the category model is
// selected based on the resolved type. Need-typed descriptions are
// categorized by a model trained only on the need subset of the corpus;
// everything else uses the full-corpus model.
package classifier

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"finpet/internal/models"
)

// LowConfidence is the threshold below which a prediction should be treated
// as a best-effort default guess rather than a real signal. Callers may
// surface it; it is never an error.
const LowConfidence = 0.34

// Engine is the expense classification pipeline. Models are trained lazily
// on first use, at most once per process; concurrent first calls share a
// single training run.
type Engine struct {
	group  singleflight.Group
	models atomic.Pointer[modelSet]
}

type modelSet struct {
	expenseType  *naiveBayes // Needs vs Wants, full corpus
	wantCategory *naiveBayes // category, full corpus
	needCategory *naiveBayes // category, need subset with its own vocabulary
}

// New creates an untrained Engine. Training happens on first classification.
func New() *Engine {
	return &Engine{}
}

// ClassifyType predicts whether the described expense is a need or a want.
// It never fails: degenerate input falls back to corpus priors and is
// reported with low confidence.
func (e *Engine) ClassifyType(description string) (models.ExpenseType, float64) {
	label, conf := e.load().expenseType.predict(description)
	return models.ExpenseType(label), conf
}

// ClassifyCategory predicts the spending category for a description, given
// its already-resolved type (declared by the user or predicted by
// ClassifyType). The result is always one of models.ExpenseCategories.
func (e *Engine) ClassifyCategory(description string, expenseType models.ExpenseType) (string, float64) {
	m := e.load()
	model := m.wantCategory
	if expenseType == models.ExpenseTypeNeed {
		model = m.needCategory
	}
	return model.predict(description)
}

// load returns the trained models, training them exactly once. The
// singleflight group collapses concurrent cold-start callers onto one
// training run.
func (e *Engine) load() *modelSet {
	if m := e.models.Load(); m != nil {
		return m
	}

	v, _, _ := e.group.Do("train", func() (interface{}, error) {
		if m := e.models.Load(); m != nil {
			return m, nil
		}
		m := train()
		e.models.Store(m)
		return m, nil
	})
	return v.(*modelSet)
}

func train() *modelSet {
	docs := make([]string, len(corpus))
	types := make([]string, len(corpus))
	cats := make([]string, len(corpus))
	var needDocs, needCats []string

	for i, s := range corpus {
		docs[i] = s.Description
		types[i] = string(s.Type)
		cats[i] = s.Category
		if s.Type == models.ExpenseTypeNeed {
			needDocs = append(needDocs, s.Description)
			needCats = append(needCats, s.Category)
		}
	}

	return &modelSet{
		expenseType:  trainNaiveBayes(docs, types),
		wantCategory: trainNaiveBayes(docs, cats),
		needCategory: trainNaiveBayes(needDocs, needCats),
	}
}
