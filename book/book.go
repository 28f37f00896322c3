package book

/*
 * When a struct represents DATA it uses value semantics, not pointers.
 * Book is data: it crosses the repository boundary by value.
 */

// Book represents a book in the catalog. The ID is the string rendering of
// the backend-native key: a 24-hex-character ObjectID for the document
// store, a decimal integer for the relational store. It is assigned by the
// store at insert time and never supplied by clients.
type Book struct {
	ID     string
	Title  string
	Author string
	Pages  int
	Rating float64
	Genre  string
	Review string
}
