package vectorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"air", "conditioning"}, Tokenize("air conditioning"))
	assert.Equal(t, []string{"50", "hdtv"}, Tokenize("50 hdtv"))
	assert.Nil(t, Tokenize("a b c"))
	assert.Nil(t, Tokenize(""))
}

func TestTransformIdenticalDocs(t *testing.T) {
	v := Fit([]string{"wifi ethernet internet", "oven stove kitchen"})

	a := v.Transform("wifi ethernet internet")
	b := v.Transform("wifi ethernet internet")
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)
}

func TestTransformOutOfVocabulary(t *testing.T) {
	v := Fit([]string{"wifi ethernet internet"})

	vec := v.Transform("zebra crossing")
	assert.Equal(t, 0, vec.NNZ())
	assert.Equal(t, 0.0, Cosine(vec, v.Transform("wifi")))
}

func TestPartialOverlapAboveThreshold(t *testing.T) {
	corpus := []string{
		"wifi ethernet internet",
		"oven stove refrigerator kitchen cooktop",
		"wifi",
	}
	v := Fit(corpus)

	token := v.Transform("wifi")
	internet := v.Transform("wifi ethernet internet")
	kitchen := v.Transform("oven stove refrigerator kitchen cooktop")

	require.Greater(t, Cosine(token, internet), 0.2)
	assert.Equal(t, 0.0, Cosine(token, kitchen))
}

func TestTransformIsNormalized(t *testing.T) {
	v := Fit([]string{"washer dryer laundry", "washer"})

	vec := v.Transform("washer dryer")
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestTransformAll(t *testing.T) {
	v := Fit([]string{"pool hot tub", "gym weights"})
	vecs := v.TransformAll([]string{"pool", "gym", "sauna"})
	require.Len(t, vecs, 3)
	assert.Greater(t, vecs[0].NNZ(), 0)
	assert.Greater(t, vecs[1].NNZ(), 0)
	assert.Equal(t, 0, vecs[2].NNZ())
}

func TestCosineOrderIndependent(t *testing.T) {
	v := Fit([]string{"smoke alarm fire extinguisher", "smoke detector"})
	a := v.Transform("smoke alarm")
	b := v.Transform("smoke detector fire")
	assert.InDelta(t, Cosine(a, b), Cosine(b, a), 1e-12)
}
