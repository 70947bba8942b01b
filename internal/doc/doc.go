// Package doc implements the structured document tree shared by the paste
// and export paths.
//
// A tree is made of Nodes tagged with a NodeType from a closed set. Text nodes
// carry inline Marks, also drawn from a closed set whose declaration order is
// the collation order used by the serializer.
//
// Positions follow the editor's model: a text node counts one per rune, a
// leaf node counts one, and any other node counts its content plus one token
// for its opening and one for its closing boundary.
//
// Schema captures the content model of each node type and lets callers check
// up front whether a host supports the nodes a paste would produce.
package doc
