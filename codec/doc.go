// Package codec converts attributes to and from their JSON documents.
//
// # Wire Format
//
//	{"type":"null","value":null}
//	{"type":"int32","value":7}
//	{"type":"string","value":"text"}
//	{"type":"array","value":{"type":"int8","shape":[2,3],"encoding":"base64","data":"AAAAAAEC"}}
//	{"type":"dictionary","value":{"a":{"type":"int8","value":5}}}
//
// Any attribute document may also carry "description" and "group"
// strings.
//
// Numeric and boolean arrays are encoded as the base64 of their flat
// little-endian buffer, written with the URL-safe alphabet and read with
// either alphabet.  String arrays are encoded as a JSON list.  Decoding
// also accepts numeric arrays in list form.
//
// # Summaries
//
// [Decode] with [Summary] produces summary attributes: arrays need only
// their element type and shape, dictionaries may omit their value.
// [Encode] refuses summary arrays and dictionaries; [EncodeSummary]
// produces the corresponding summary document for any attribute.
//
// # Errors
//
// Every failure is an *errs.Error whose Field locates the problem within
// the document, for example "value.a.value" for the value of dictionary
// entry "a".
package codec
