// Package translation provides English to Indian language translation
// backed by hosted language models. The OpenAI and Gemini translators
// share the Translator interface so the server can fall back from one
// to the other.
package translation
