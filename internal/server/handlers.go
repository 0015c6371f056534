package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/audio"
	"codeberg.org/snonux/localtranslator/internal/languages"
	"codeberg.org/snonux/localtranslator/internal/translation"
)

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type translateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type translateAndSpeakResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	AudioData      string `json:"audio_data"`
}

// badRequest marks an error as the client's fault
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.translate(r, req.Text, req.TargetLanguage)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		SourceLanguage: res.SourceLanguage,
		TargetLanguage: res.TargetLanguage.ID(),
	})
}

func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := s.speak(r, req.Text, req.Language)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", audio.MIMETypeMPEG)
	w.Header().Set("Content-Disposition", `inline; filename="speech.mp3"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleTranslateAndSpeak(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.translate(r, req.Text, req.TargetLanguage)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := s.speak(r, res.TranslatedText, req.TargetLanguage)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, translateAndSpeakResponse{
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		AudioData:      base64.StdEncoding.EncodeToString(data),
	})
}

func (s *Server) translate(r *http.Request, text, lang string) (*translation.Result, error) {
	if text == "" {
		return nil, badRequest{translation.ErrEmptyText.Error()}
	}
	target, err := languages.Parse(lang)
	if err != nil {
		return nil, badRequest{err.Error()}
	}
	return translation.Translate(r.Context(), s.translator, text, target)
}

func (s *Server) speak(r *http.Request, text, lang string) ([]byte, error) {
	if err := audio.ValidateText(text); err != nil {
		return nil, badRequest{err.Error()}
	}
	target, err := languages.Parse(lang)
	if err != nil {
		return nil, badRequest{err.Error()}
	}

	data, err := s.synthesizer.Synthesize(r.Context(), text, target)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, errors.New("Failed to generate speech: " + err.Error())
	}
	return data, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var bad badRequest
	switch {
	case errors.As(err, &bad):
		writeDetail(w, http.StatusBadRequest, bad.msg)
	case errors.Is(err, ErrUnavailable):
		writeDetail(w, http.StatusServiceUnavailable, ErrUnavailable.Error())
	default:
		s.log.Warn("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return badRequest{"Content-Type must be application/json"}
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest{"invalid request body: " + err.Error()}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
