package batch

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
	"github.com/hupe1980/hpograph/similarity"
)

type pairKey struct {
	ont  *ontology.Ontology
	alg  string
	a, b model.TermID
}

type pairCache = lru.Cache[pairKey, float32]

// cacheLabel names alg together with its IC kind. Algorithms without a
// stable label, such as similarity.Func, are not cached.
func cacheLabel(alg similarity.Algorithm) (string, bool) {
	switch a := alg.(type) {
	case similarity.Resnik:
		return "resnik/" + a.Kind.String(), true
	case similarity.Lin:
		return "lin/" + a.Kind.String(), true
	case similarity.Jc:
		return "jc/" + a.Kind.String(), true
	case similarity.GraphIC:
		return "graphic/" + a.Kind.String(), true
	case similarity.Relevance:
		return "relevance/" + a.Kind.String(), true
	case similarity.InformationCoefficient:
		return "ic/" + a.Kind.String(), true
	case similarity.Distance:
		return "distance", true
	default:
		return "", false
	}
}

// cachedAlgorithm memoizes a symmetric algorithm by unordered term pair.
type cachedAlgorithm struct {
	inner similarity.Algorithm
	label string
	cache *pairCache
}

func (c cachedAlgorithm) Name() string { return c.inner.Name() }

func (c cachedAlgorithm) Score(a, b ontology.Term) float32 {
	x, y := a.ID(), b.ID()
	if x > y {
		x, y = y, x
	}
	key := pairKey{ont: a.Ontology(), alg: c.label, a: x, b: y}

	if v, ok := c.cache.Get(key); ok {
		return v
	}

	v := c.inner.Score(a, b)
	c.cache.Add(key, v)

	return v
}
