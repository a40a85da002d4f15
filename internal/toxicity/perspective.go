package toxicity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the classifier verdict plus per-attribute sub-scores for
// user feedback.
type Result struct {
	Toxic  bool               `json:"isToxic"`
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Classifier screens a message before it is admitted to a debate.
type Classifier interface {
	Check(text string) (*Result, error)
}

const defaultEndpoint = "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"

// Perspective attributes requested, keyed by the score name surfaced to
// clients.
var attributes = map[string]string{
	"toxicity":       "TOXICITY",
	"severeToxicity": "SEVERE_TOXICITY",
	"identityAttack": "IDENTITY_ATTACK",
	"insult":         "INSULT",
	"threat":         "THREAT",
}

// PerspectiveClient calls the Perspective comment-analyzer API. A
// message is flagged when any attribute score exceeds the threshold.
type PerspectiveClient struct {
	apiKey     string
	threshold  float64
	endpoint   string
	httpClient *http.Client
}

func NewPerspectiveClient(apiKey string, threshold float64) *PerspectiveClient {
	return &PerspectiveClient{
		apiKey:    apiKey,
		threshold: threshold,
		endpoint:  defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithEndpoint overrides the API endpoint, used in tests.
func (c *PerspectiveClient) WithEndpoint(endpoint string) *PerspectiveClient {
	c.endpoint = endpoint
	return c
}

type analyzeRequest struct {
	Comment             comment                   `json:"comment"`
	RequestedAttributes map[string]map[string]any `json:"requestedAttributes"`
	Languages           []string                  `json:"languages"`
	DoNotStore          bool                      `json:"doNotStore"`
}

type comment struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// Check screens text. A nil error with Toxic=false means the message
// may pass; any returned error is the caller's fail-open signal.
func (c *PerspectiveClient) Check(text string) (*Result, error) {
	if c.apiKey == "" {
		// No classifier configured: screening is disabled
		return &Result{Toxic: false}, nil
	}

	requested := make(map[string]map[string]any, len(attributes))
	for _, attr := range attributes {
		requested[attr] = map[string]any{}
	}

	payload := analyzeRequest{
		Comment:             comment{Text: text},
		RequestedAttributes: requested,
		Languages:           []string{"en"},
		DoNotStore:          true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perspective request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("perspective returned status %d", resp.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}

	scores := make(map[string]float64, len(attributes))
	toxic := false
	for name, attr := range attributes {
		score := parsed.AttributeScores[attr].SummaryScore.Value
		scores[name] = score
		if score > c.threshold {
			toxic = true
		}
	}

	return &Result{Toxic: toxic, Scores: scores}, nil
}
