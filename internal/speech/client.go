// Package speech renders announcement text to audio files and plays
// them through the local sound device.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/domain"
)

// DefaultBaseURL is the ElevenLabs API root.
const DefaultBaseURL = "https://api.elevenlabs.io"

// outputFormat requests raw PCM matching the player's audio context.
const outputFormat = "pcm_24000"

// ClientOption configures the TTS client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root. Used in tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPTimeout sets the HTTP client timeout for synthesis requests.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// Client handles text-to-speech synthesis via the ElevenLabs REST API.
type Client struct {
	apiKey     string
	voiceID    string
	lang       string
	baseURL    string
	httpClient *http.Client
	log        *log.Logger
}

// NewClient creates a TTS client for the given voice. lang is a locale
// hint passed through to models that support it.
func NewClient(apiKey, voiceID, lang string, logger *log.Logger, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		voiceID: voiceID,
		lang:    lang,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// synthesisRequest is the JSON body for a text-to-speech call.
type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	LanguageCode  string        `json:"language_code,omitempty"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize converts text to raw PCM audio with the given model. A
// zero-length payload is a failure, not a partial success.
func (c *Client) Synthesize(ctx context.Context, text, modelID string) ([]byte, error) {
	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s", c.baseURL, c.voiceID, outputFormat)

	body, err := json.Marshal(synthesisRequest{
		Text:         text,
		ModelID:      modelID,
		LanguageCode: c.lang,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("tts: marshal request: %w", err)
	}

	c.log.Debug("tts request", "chars", len(text), "model", modelID, "voice", c.voiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts: API %s: %s", resp.Status, string(msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts: %w", domain.ErrEmptyAudio)
	}

	c.log.Debug("tts response", "bytes", len(audio))
	return audio, nil
}
