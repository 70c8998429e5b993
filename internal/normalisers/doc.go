// Package normalisers provides implementations of the Normaliser interface
// for the file formats rsvp imports. Each normaliser turns the raw bytes of
// one MIME type into a document, and segment list formats also yield the
// imported segments.
//
// Normalisers are registered with the Registry at startup.
package normalisers
