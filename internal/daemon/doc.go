// Package daemon provides the main orchestration for toastyd.
// It wires the configuration and its hot reload, the theme loader, audio
// cues, the GTK renderer and the D-Bus service around one Notifier running on
// the GTK main loop. Headless runs the same service on a clock.Loop with no
// display.
package daemon
