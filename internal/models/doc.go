// Package models lists the OpenAI models that can back the translation
// server's chat translation and speech synthesis.
package models
