// Package model defines core types used throughout hpograph.
//
// # Identity Types
//
//   - TermID: phenotype term identifier, rendered as HP:0000118 (uint32)
//   - GeneID: gene identifier, rendered as NCBIGene:2200 (uint32)
//   - DiseaseID: disease identifier within a DiseaseKind namespace (uint32)
//
// All identifiers are small unsigned integers so they can be stored in
// sorted id sets and written verbatim (4 bytes, big-endian) by the binary
// codec.
//
// # Information Content
//
// InformationContent holds one float32 per InformationContentKind. Kinds
// are independent of each other; computing one never touches another.
//
// # Release Version
//
// ReleaseVersion stamps an ontology with the date of the upstream release
// it was built from. The zero value means "unknown".
package model
