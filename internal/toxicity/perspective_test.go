package toxicity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func analyzeHandler(t *testing.T, scores map[string]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !req.DoNotStore {
			t.Error("doNotStore = false, want true")
		}
		if len(req.RequestedAttributes) != len(attributes) {
			t.Errorf("requested %d attributes, want %d", len(req.RequestedAttributes), len(attributes))
		}

		resp := map[string]any{"attributeScores": map[string]any{}}
		attrScores := resp["attributeScores"].(map[string]any)
		for attr, value := range scores {
			attrScores[attr] = map[string]any{
				"summaryScore": map[string]any{"value": value},
			}
		}

		json.NewEncoder(w).Encode(resp)
	}
}

func TestPerspectiveClient_Check(t *testing.T) {
	tests := []struct {
		name      string
		scores    map[string]float64
		wantToxic bool
	}{
		{
			name: "Clean message",
			scores: map[string]float64{
				"TOXICITY":        0.1,
				"SEVERE_TOXICITY": 0.02,
				"IDENTITY_ATTACK": 0.05,
				"INSULT":          0.1,
				"THREAT":          0.01,
			},
			wantToxic: false,
		},
		{
			name: "Toxicity over threshold",
			scores: map[string]float64{
				"TOXICITY":        0.95,
				"SEVERE_TOXICITY": 0.4,
				"IDENTITY_ATTACK": 0.1,
				"INSULT":          0.6,
				"THREAT":          0.05,
			},
			wantToxic: true,
		},
		{
			name: "Single sub-score over threshold flags",
			scores: map[string]float64{
				"TOXICITY":        0.3,
				"SEVERE_TOXICITY": 0.1,
				"IDENTITY_ATTACK": 0.1,
				"INSULT":          0.2,
				"THREAT":          0.85,
			},
			wantToxic: true,
		},
		{
			name: "Exactly at threshold passes",
			scores: map[string]float64{
				"TOXICITY":        0.8,
				"SEVERE_TOXICITY": 0.8,
				"IDENTITY_ATTACK": 0.8,
				"INSULT":          0.8,
				"THREAT":          0.8,
			},
			wantToxic: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(analyzeHandler(t, tt.scores))
			defer server.Close()

			client := NewPerspectiveClient("test_key", 0.8).WithEndpoint(server.URL)

			result, err := client.Check("some message")
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}

			if result.Toxic != tt.wantToxic {
				t.Errorf("Toxic = %v, want %v", result.Toxic, tt.wantToxic)
			}
			if len(result.Scores) != len(attributes) {
				t.Errorf("got %d scores, want %d", len(result.Scores), len(attributes))
			}
		})
	}
}

func TestPerspectiveClient_Check_NoAPIKey(t *testing.T) {
	client := NewPerspectiveClient("", 0.8)

	result, err := client.Check("anything")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Toxic {
		t.Error("Toxic = true with screening disabled, want false")
	}
}

func TestPerspectiveClient_Check_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewPerspectiveClient("test_key", 0.8).WithEndpoint(server.URL)

	_, err := client.Check("some message")
	if err == nil {
		t.Error("Check() expected error on upstream failure, got nil")
	}
}
