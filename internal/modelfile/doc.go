// Package modelfile loads a realisation from a YAML or JSON model document
// and validates it before algebraic parsing. The document layer is a
// collaborator of the diagram core: it produces the immutable model.Realisation
// the builders consume and owns every input-shape error message.
package modelfile
