// Package synth turns enum definitions into open enum descriptors.
//
// Synthesis of one definition moves through a fixed sequence of states:
//
//	NameResolution -> ExistingTypeFound
//	NameResolution -> TypeAllocated -> BackingTypeResolved -> FactoryInstalled
//	               -> ConstantsPopulated -> RenderingInstalled
//
// ExistingTypeFound and RenderingInstalled are terminal. Any failure aborts
// synthesis of the definition with an *Error naming the state it failed in.
//
// Identifier legalization, backing type resolution, existing type lookup and
// serialization hints are supplied by collaborators (NameHelper, TypeResolver,
// TypeCatalog and Annotator); package golang and package catalog provide the
// implementations used by the generator.
package synth
