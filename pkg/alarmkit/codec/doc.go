/*
Package codec converts event type identities to and from the flat
string-keyed records used for configuration export and import.

# Transport form

Every record carries a sourceType discriminator holding one of the eight
source kind export codes. The remaining fields are variant-specific and
reference other configuration by external id (xid), never by internal
numeric id, so an export stays meaningful across databases:

	sourceType: DATA_SOURCE
	dataSource: DS_b9154c7a
	dataSourceErrorType: DATA_SOURCE_EXCEPTION

# Decoding

A Codec is constructed with the registries that resolve those external
references:

	c := codec.New(mem.Resolvers())
	et, err := c.Decode(rec)

Decode failures are one of three validation errors, each carrying the
offending field: MissingFieldError, InvalidCodeError (with the full valid
set for diagnostics), and UnresolvedReferenceError. They invalidate the
single record only; an import pipeline reports them and moves on to the
next record. Retrying is pointless, the input is simply wrong.

Point event detector references resolve in two steps: the data point xid
first, then the detector xid scoped to that point. When the point does not
resolve the detector is never looked at.

# Encoding

Encode is total and never fails. Identities whose entities have been
deleted since construction encode with empty reference fields, which the
validation on reimport then surfaces.
*/
package codec
