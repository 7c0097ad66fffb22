// Package vectorize provides a sparse TF-IDF bag-of-words vectorizer and a
// cosine-similarity primitive. It is the only numerical-text machinery in the
// pipeline and is kept behind this narrow surface so the rest of the code
// stays representation-agnostic.
package vectorize

import (
	"math"
	"regexp"
)

// tokens of two or more word characters; single-character terms carry no
// discriminating weight and only inflate the vocabulary.
var tokenRe = regexp.MustCompile(`\w\w+`)

// Tokenize splits a document into lowercase word tokens. Input is expected
// to be pre-lowercased by the text normalizer.
func Tokenize(doc string) []string {
	return tokenRe.FindAllString(doc, -1)
}

// Vector is a sparse term-index → weight mapping.
type Vector map[int]float64

// NNZ returns the number of non-zero entries.
func (v Vector) NNZ() int { return len(v) }

// Vectorizer holds a vocabulary and inverse-document-frequency weights
// fitted over a corpus.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit builds the vocabulary and IDF statistics from the corpus. IDF uses
// smoothing so terms appearing in every document keep a positive weight:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func Fit(docs []string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				docFreq[tok]++
				seen[tok] = true
			}
			if _, ok := v.vocab[tok]; !ok {
				v.vocab[tok] = len(v.vocab)
			}
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(v.vocab))
	for tok, idx := range v.vocab {
		v.idf[idx] = math.Log((1+n)/(1+float64(docFreq[tok]))) + 1
	}

	return v
}

// Transform converts a document into an L2-normalized sparse TF-IDF vector.
// Terms outside the fitted vocabulary are ignored; a document with no known
// terms yields an empty vector.
func (v *Vectorizer) Transform(doc string) Vector {
	vec := make(Vector)
	for _, tok := range Tokenize(doc) {
		if idx, ok := v.vocab[tok]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// TransformAll vectorizes a batch of documents.
func (v *Vectorizer) TransformAll(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Cosine returns the cosine similarity of two sparse vectors. Zero vectors
// have similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, na, nb float64
	for idx, w := range a {
		na += w * w
		if bw, ok := b[idx]; ok {
			dot += w * bw
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
