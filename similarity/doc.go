// Package similarity scores the semantic similarity of terms and term sets.
//
// Term-pair algorithms are built from the cached ancestor closures and the
// information content of a frozen ontology:
//
//	Resnik                  max IC over the common ancestors
//	Lin                     2·Resnik / (IC(a)+IC(b))
//	Jc                      1 - (IC(a)+IC(b) - 2·Resnik)
//	GraphIC                 Σ IC(common ancestors) / Σ IC(union of ancestors)
//	Relevance               Lin · (1 - e^(-Resnik))
//	InformationCoefficient  Lin · (1 - 1/(1+Resnik))
//	Distance                1 / (1 + shortest path through a common ancestor)
//
// Every algorithm is symmetric. Divisions by zero and empty ancestor sets
// yield 0, never NaN or Inf.
//
// Term sets are compared by scoring every pair into a Matrix and reducing
// it with a Combiner (FunSimAvg, FunSimMax or BWA).
package similarity
