// Package server implements the translation HTTP API the client talks to.
//
// Routes live under /api/v1 on a chi router:
//
//	POST /translate            {text, target_language} -> translation JSON
//	POST /text-to-speech       {text, language}        -> audio/mpeg bytes
//	POST /translate-and-speak  {text, target_language} -> translation JSON with base64 audio_data
//
// Failures are reported as {"detail": "..."} with 400 for bad input, 429
// when a client exceeds the rate limit, 500 for provider errors and 503
// while the provider circuit breaker is open.
package server
