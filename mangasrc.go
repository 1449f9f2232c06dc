// Package mangasrc provides catalog source adapters for manga sites.
// An adapter fetches a site's JSON API, server-rendered HTML, or HTML
// carrying an embedded hydration payload, and normalizes whatever it finds
// into a small uniform catalog model: entries, details, chapters, pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gjson/).
package mangasrc
