// Package audio holds everything that touches synthesized speech: the
// reference counted Handle the client keeps for generated audio, the
// platform playback command used to play a handle, and the server side
// Synthesizer providers that turn translated text into MP3 bytes.
package audio
