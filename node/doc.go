// Package node decodes the documents a data tree server answers with.
//
// A listing request yields a report describing a node: a [*Leaf], which
// carries data, or a [*Branch], which lists its children.  A value request
// on a leaf yields an object document holding the leaf's attribute, in
// summary or full form.
package node
