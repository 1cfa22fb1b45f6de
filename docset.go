// Package docset mirrors a Sphinx-generated documentation site into an
// offline documentation bundle and builds the symbol index that offline
// viewers (Dash, Zeal, Velocity) use for lookup.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package docset
