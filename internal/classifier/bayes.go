package classifier

import (
	"math"
	"strings"
)

// stopWords are common English words excluded from the bag-of-words
// vocabulary.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "had": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"my": {}, "of": {}, "on": {}, "or": {}, "our": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "this": {}, "to": {}, "was": {}, "we": {},
	"were": {}, "with": {}, "you": {}, "your": {},
}

// tokenize lowercases s and splits it into alphanumeric tokens of at least
// two characters, dropping English stop words.
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		w := b.String()
		b.Reset()
		if len(w) < 2 {
			return
		}
		if _, stop := stopWords[w]; !stop {
			tokens = append(tokens, w)
		}
	}
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// naiveBayes is a multinomial naive Bayes text classifier with Laplace
// smoothing over a bag-of-words vocabulary.
type naiveBayes struct {
	classes  []string             // first-seen order, deterministic
	vocab    map[string]int       // term -> column index
	logPrior map[string]float64   // class -> log P(class)
	logCond  map[string][]float64 // class -> log P(term|class) per column
}

// trainNaiveBayes fits a model on parallel slices of documents and labels.
func trainNaiveBayes(docs, labels []string) *naiveBayes {
	nb := &naiveBayes{
		vocab:    make(map[string]int),
		logPrior: make(map[string]float64),
		logCond:  make(map[string][]float64),
	}

	tokenized := make([][]string, len(docs))
	for i, d := range docs {
		tokenized[i] = tokenize(d)
		for _, t := range tokenized[i] {
			if _, ok := nb.vocab[t]; !ok {
				nb.vocab[t] = len(nb.vocab)
			}
		}
	}

	docCounts := make(map[string]int)
	for _, l := range labels {
		if docCounts[l] == 0 {
			nb.classes = append(nb.classes, l)
		}
		docCounts[l]++
	}

	termCounts := make(map[string][]float64)
	termTotals := make(map[string]float64)
	for i, toks := range tokenized {
		l := labels[i]
		if termCounts[l] == nil {
			termCounts[l] = make([]float64, len(nb.vocab))
		}
		for _, t := range toks {
			termCounts[l][nb.vocab[t]]++
			termTotals[l]++
		}
	}

	vocabSize := float64(len(nb.vocab))
	total := float64(len(docs))
	for _, c := range nb.classes {
		nb.logPrior[c] = math.Log(float64(docCounts[c]) / total)
		counts := termCounts[c]
		if counts == nil {
			counts = make([]float64, len(nb.vocab))
		}
		cond := make([]float64, len(nb.vocab))
		for j := range cond {
			cond[j] = math.Log((counts[j] + 1) / (termTotals[c] + vocabSize))
		}
		nb.logCond[c] = cond
	}

	return nb
}

// predict returns the most likely class for text along with its posterior
// probability. Unknown tokens are ignored; with no known tokens the decision
// falls back to class priors, so prediction never fails for any input.
func (nb *naiveBayes) predict(text string) (string, float64) {
	scores := make([]float64, len(nb.classes))
	for i, c := range nb.classes {
		scores[i] = nb.logPrior[c]
	}

	for _, t := range tokenize(text) {
		col, ok := nb.vocab[t]
		if !ok {
			continue
		}
		for i, c := range nb.classes {
			scores[i] += nb.logCond[c][col]
		}
	}

	best := 0
	for i := range scores {
		if scores[i] > scores[best] {
			best = i
		}
	}

	// Normalize log scores into a posterior for the confidence signal.
	var sum float64
	for i := range scores {
		sum += math.Exp(scores[i] - scores[best])
	}

	return nb.classes[best], 1 / sum
}
