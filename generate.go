package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var ErrBadResponse = errors.New("invalid response from caption generator")

const promptTemplate = `Create a funny meme with top and bottom text based on this idea: %s. Return ONLY a JSON object in this exact format without any additional text: {"topText": "your top text here", "bottomText": "your bottom text here"}. Make it humorous and creative.`

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// Caption is a generated pair of texts for the first two fields.
type Caption struct {
	TopText    string `json:"topText"`
	BottomText string `json:"bottomText"`
}

// Generator asks a generateContent-style endpoint for a caption.
type Generator struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt and returns the caption. It does not retry.
func (g *Generator) Generate(ctx context.Context, prompt string) (Caption, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Caption{}, errors.New("empty prompt")
	}
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: fmt.Sprintf(promptTemplate, prompt)}}}},
	})
	if err != nil {
		return Caption{}, err
	}
	endpoint, err := g.endpointURL()
	if err != nil {
		return Caption{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Caption{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Caption{}, fmt.Errorf("caption request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Caption{}, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Caption{}, fmt.Errorf("caption response: %w", err)
	}
	return parseCaptionResponse(data)
}

func (g *Generator) endpointURL() (string, error) {
	if g.Endpoint == "" {
		return "", errors.New("no generator endpoint configured")
	}
	u, err := url.Parse(g.Endpoint)
	if err != nil {
		return "", fmt.Errorf("generator endpoint: %w", err)
	}
	if g.APIKey != "" {
		q := u.Query()
		q.Set("key", g.APIKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// parseCaptionResponse pulls the caption out of the first candidate. The
// model's text is parsed as JSON, falling back to the first {...} block.
func parseCaptionResponse(data []byte) (Caption, error) {
	var resp generateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Caption{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		return Caption{}, fmt.Errorf("%w: no candidate text", ErrBadResponse)
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)

	var c Caption
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		match := jsonObject.FindString(text)
		if match == "" {
			return Caption{}, fmt.Errorf("%w: could not find valid JSON in response", ErrBadResponse)
		}
		if err := json.Unmarshal([]byte(match), &c); err != nil {
			return Caption{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	if c.TopText == "" || c.BottomText == "" {
		return Caption{}, fmt.Errorf("%w: response missing required text fields", ErrBadResponse)
	}
	return c, nil
}
