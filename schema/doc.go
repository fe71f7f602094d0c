// Package schema checks repaired career analysis documents.
//
// The repair engine restores syntax only. This package is the external
// validator that decides whether a syntactically valid document also has
// the expected structure, using JSON Schema via gojsonschema, and reads
// headline facts out of a document with gjson without decoding it.
//
// # Usage
//
//	v, err := schema.NewCareerValidator()
//	if err != nil {
//	    return err
//	}
//	if err := v.Validate(doc); errors.Is(err, schema.ErrSchemaViolation) {
//	    // structure is wrong; the document still parses
//	}
//
//	sum := schema.Summarize(doc)
//	if sum.Degraded {
//	    // the model output could not be recovered
//	}
package schema
