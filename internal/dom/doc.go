// Package dom is a small in-memory document model for toast notifications.
// It holds elements with class lists, inline styles, data attributes and
// plain-text children, dispatches events to registered listeners, and reports
// structural changes to observers so renderers (GTK, terminal, HTML) can
// mirror the tree onto a real surface.
//
// A Document is not safe for concurrent use. All calls are expected to come
// from the event loop that owns it.
package dom
