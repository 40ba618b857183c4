package classify

import (
	"encoding/json"
	"testing"
)

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.95, 95.0},
		{0.75, 75.0},
		{0.4, 40.0},
		{0.333, 33.3},
		{0.4567, 45.7},
		{1.0, 100.0},
		{0, 0},
	}

	for _, tt := range tests {
		if got := normalizeConfidence(tt.in); got != tt.want {
			t.Errorf("normalizeConfidence(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResult_JSONShape(t *testing.T) {
	result := &Result{
		Type:        "📊 Bar Chart",
		Category:    BarChart,
		Confidence:  95.0,
		Description: "Bar Chart. a bar chart",
		Reasoning:   "Classified as bar_chart using description 'a bar chart'",
		Details: &Details{
			VisualElements: []string{"data visualization"},
			AnalysisMethod: methodKeyword,
		},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["classification"] != "bar_chart" {
		t.Errorf("classification field: got %v", decoded["classification"])
	}
	if decoded["confidence"] != 95.0 {
		t.Errorf("confidence field: got %v", decoded["confidence"])
	}
	if _, ok := decoded["details"]; !ok {
		t.Error("details should be present when set")
	}
}

func TestResult_DetailsOmittedWhenNil(t *testing.T) {
	result := &Result{
		Type:       "📐 Other Diagram",
		Category:   Diagram,
		Confidence: 40.0,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := decoded["details"]; ok {
		t.Error("details should be omitted when nil")
	}
}
