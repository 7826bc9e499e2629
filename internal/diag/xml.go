package diag

import (
	"encoding/xml"
	"io"
)

// XMLSink renders diagnostics in cppcheck's XML schema (spec.md §6): version
// 2 emits one <results> root with an <errors> child, one <error> per
// diagnostic carrying id/severity/msg/verbose attributes and <location>
// children, innermost (newest) location first. Version 1 is cppcheck's older,
// flatter schema: each <error> carries its primary location directly as
// file/line attributes and has no nested <location> children. encoding/xml is
// used directly -- none of the retrieved example repos pull a third-party XML
// library, so this is a deliberate standard-library choice rather than an
// oversight (see DESIGN.md).
type XMLSink struct {
	w       io.Writer
	version int
}

// NewXMLSink returns a version-2 sink writing to w.
func NewXMLSink(w io.Writer) *XMLSink { return &XMLSink{w: w, version: 2} }

// NewXMLSinkVersion returns a sink writing schema version 1 or 2 to w.
func NewXMLSinkVersion(w io.Writer, version int) *XMLSink { return &XMLSink{w: w, version: version} }

type xmlResults struct {
	XMLName xml.Name    `xml:"results"`
	Version int         `xml:"version,attr"`
	Errors  xmlErrorSet `xml:"errors"`
}

type xmlErrorSet struct {
	Errors []xmlError `xml:"error"`
}

type xmlError struct {
	ID       string `xml:"id,attr"`
	Severity string `xml:"severity,attr"`
	Msg      string `xml:"msg,attr"`
	Verbose  string `xml:"verbose,attr"`
	// File/Line are only populated (and only marshal, via omitempty) in the
	// version-1 flat schema; Locations is only populated in version 2.
	File      string        `xml:"file,attr,omitempty"`
	Line      int           `xml:"line,attr,omitempty"`
	Locations []xmlLocation `xml:"location,omitempty"`
}

type xmlLocation struct {
	File string `xml:"file,attr"`
	Line int    `xml:"line,attr"`
}

// WriteAll renders every message as a <results> document in the sink's
// configured schema version.
func (s *XMLSink) WriteAll(msgs []ErrorMessage) error {
	version := s.version
	if version == 0 {
		version = 2
	}
	doc := xmlResults{Version: version}
	for _, m := range msgs {
		e := xmlError{
			ID:       m.ID,
			Severity: string(m.Severity),
			Msg:      m.Message,
			Verbose:  m.Message,
		}
		if version == 1 {
			if p := m.Primary(); p.File != "" || p.Line != 0 {
				e.File, e.Line = p.File, p.Line
			}
		} else {
			for _, l := range m.Locations {
				e.Locations = append(e.Locations, xmlLocation{File: l.File, Line: l.Line})
			}
		}
		doc.Errors.Errors = append(doc.Errors.Errors, e)
	}

	if _, err := io.WriteString(s.w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(s.w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(s.w, "\n")
	return err
}
