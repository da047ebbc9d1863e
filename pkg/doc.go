// Package pkg provides the core libraries for seqdiag sequence diagrams.
//
// # Overview
//
// seqdiag turns a small text language of participants, messages, notes
// and combined fragments into laid-out sequence diagrams. The pkg
// directory is organized into three areas:
//
//  1. [seq] - The diagram language and renderer (lex, parse, lay out, emit)
//  2. [pipeline] - Orchestration with caching (parse → layout → render)
//  3. Infrastructure - caching, errors, observability, build information
//
// # Architecture
//
// The data flow through seqdiag:
//
//	Diagram source text
//	         ↓
//	    [seq/lexer] + [seq/parser] (tokens → participants and events)
//	         ↓
//	    [seq/layout] (measure lanes, place every element)
//	         ↓
//	    [seq/sink] (SVG, JSON, PNG, PDF)
//
// # Quick Start
//
// Render a diagram in one call:
//
//	svg, err := seq.Render("Alice -> Bob: Hello")
//
// Or drive the stages yourself:
//
//	import (
//	    "github.com/matzehuels/seqdiag/pkg/seq/layout"
//	    "github.com/matzehuels/seqdiag/pkg/seq/parser"
//	    "github.com/matzehuels/seqdiag/pkg/seq/sink"
//	)
//
//	d, err := parser.Parse(src)
//	if err != nil {
//	    return err // *parser.Error or *lexer.Error, both carry the line
//	}
//	g := layout.Build(d)
//	svg := sink.RenderSVG(g, sink.WithIDPrefix("login"))
//
// # Main Packages
//
// ## Diagram Language
//
// [seq/lexer] - Line-oriented tokenizer. Text after a ':' is kept verbatim;
// arrows decode into a style and activation modifiers.
//
// [seq/parser] - Statement parser producing a [seq/diagram.Diagram]. The
// first error aborts parsing; non-fatal problems become warnings.
//
// [seq/diagram] - The participant table and the ordered event list.
//
// [seq/textwidth] - Rendered width estimates for label text.
//
// ## Visualization
//
// [seq/layout] - Two-pass layout: lane widths first, then a single walk
// over the events assigning y positions, activation bars and frames.
//
// [seq/sink] - Output formats. SVG is written directly; PNG and PDF are
// converted from it by [render].
//
// [seq/styles] - Drawing primitives used by the SVG sink.
//
// [render] - SVG to PNG/PDF conversion via rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - Parse, layout and render with cached intermediate results,
// shared by the CLI and the HTTP server.
//
// [cache] - Cache backends: file (CLI), Redis and MongoDB (shared), null.
//
// [errors] - Error codes and input validation.
//
// [observability] - Hooks for pipeline, cache and HTTP events, with a
// Prometheus implementation.
//
// [buildinfo] - Version information from ldflags or the Go build info.
package pkg
