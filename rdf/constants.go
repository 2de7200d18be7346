package rdf

import "strconv"

// Core RDF and XML namespace URIs and the vocabulary terms the
// parsers/serializers hard-code (collections, containers, reification,
// rdf:type, lang-tagged/dir-tagged string datatypes).
const (
	rdfXMLNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlXMLNS  = "http://www.w3.org/XML/1998/namespace"
	xmlnsNS   = "http://www.w3.org/2000/xmlns/"

	rdfTypeIRI      = rdfXMLNS + "type"
	rdfFirstIRI     = rdfXMLNS + "first"
	rdfRestIRI      = rdfXMLNS + "rest"
	rdfNilIRI       = rdfXMLNS + "nil"
	rdfListIRI      = rdfXMLNS + "List"
	rdfSeqIRI       = rdfXMLNS + "Seq"
	rdfBagIRI       = rdfXMLNS + "Bag"
	rdfStatementIRI = rdfXMLNS + "Statement"
	rdfSubjectIRI   = rdfXMLNS + "subject"
	rdfPredicateIRI = rdfXMLNS + "predicate"
	rdfObjectIRI    = rdfXMLNS + "object"
	rdfXMLLiteralIRI = rdfXMLNS + "XMLLiteral"

	rdfLangStringIRI    = rdfXMLNS + "langString"
	rdfDirLangStringIRI = rdfXMLNS + "dirLangString"
)

// rdfMemberIRI returns the rdf:_n container membership predicate for
// ordinal n (spec §4.1 "rdf:li expansion").
func rdfMemberIRI(n int) string {
	return rdfXMLNS + "_" + strconv.Itoa(n)
}
