// Package audio plays a short cue when a notification is shown. It decodes
// WAV, OGG and MP3 files with beep and keeps them cached per path.
package audio
