package tts

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"vesper/internal/config"
	"vesper/internal/language"
)

// GoogleSynthesizer implements Synthesizer against the Cloud Text-to-Speech
// API.
type GoogleSynthesizer struct {
	srv *texttospeech.Service
}

// NewGoogleSynthesizer builds the synthesis client with the provided client
// options (typically the same authorized HTTP client as the Drive store).
func NewGoogleSynthesizer(ctx context.Context, opts ...option.ClientOption) (*GoogleSynthesizer, error) {
	srv, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create texttospeech service: %w", err)
	}
	return &GoogleSynthesizer{srv: srv}, nil
}

// NewGoogleSynthesizerFromConfig builds the synthesis client from the same
// OAuth refresh-token credentials used for the asset store.
func NewGoogleSynthesizerFromConfig(ctx context.Context, cfg *config.Config) (*GoogleSynthesizer, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	conf := &oauth2.Config{
		ClientID:     cfg.Drive.ClientID,
		ClientSecret: cfg.Drive.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{texttospeech.CloudPlatformScope},
	}
	token := &oauth2.Token{RefreshToken: cfg.Drive.RefreshToken}
	return NewGoogleSynthesizer(ctx, option.WithHTTPClient(conf.Client(ctx, token)))
}

// Synthesize converts one chunk of narration text into mono LINEAR16 audio
// at the fixed sample rate.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, lang language.Code) ([]byte, error) {
	if text == "" {
		return nil, errors.New("synthesize: empty text")
	}
	voice := lang.Voice()
	if voice == "" {
		return nil, fmt.Errorf("synthesize: no voice for language %q", lang)
	}
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{LanguageCode: voice},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding:   "LINEAR16",
			SampleRateHertz: SampleRate,
		},
	}
	resp, err := g.srv.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("synthesize %s chunk: %w", lang, err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("synthesize: empty audio response")
	}
	return audio, nil
}
