// Package theme handles CSS theme loading and hot-reload for toastyd.
// Themes are resolved from ~/.config/toasty/themes/ first and then from the
// bundled set, so a user file can override a bundled theme by name.
package theme
