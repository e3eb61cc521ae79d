// Package display mirrors the notification document onto GTK4 layer-shell
// popups. It renders each notification container as its own window, feeds
// pointer and click events back into the document and supplies the GLib
// scheduler and widget measurements the Notifier runs on.
package display
