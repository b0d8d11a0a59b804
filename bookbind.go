// Package bookbind turns web-published books into bound documents. It
// discovers chapter links on a book's landing page, extracts each chapter's
// narrative content from noisy HTML, lets a curation layer reorder and prune
// the chapter set, and assembles the result into a single styled PDF.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, sqlite/).
package bookbind
