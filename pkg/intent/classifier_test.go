package intent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/plutovoice/go-pluto/pkg/inference"
)

func newTestClassifier(provider inference.Provider, opts ...ClassifierOption) *Classifier {
	opts = append([]ClassifierOption{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return NewClassifier(provider, opts...)
}

func mockReplying(content string) *inference.Mock {
	mock := inference.NewMock()
	mock.ChatFunc = func(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error) {
		return &inference.ChatResponse{
			Message:      inference.NewAssistantMessage(content),
			FinishReason: "stop",
			Model:        req.Model,
		}, nil
	}
	return mock
}

func TestClassifyModelPath(t *testing.T) {
	mock := mockReplying(`Sure, here is the intent: {"tool": "open_app", "parameters": {"app_name": "chrome"}}`)
	c := newTestClassifier(mock)

	in := c.Classify(context.Background(), "open chrome")

	if in.Tool != ToolOpenApp {
		t.Fatalf("Expected open_app, got %s", in.Tool)
	}
	if got := in.Param("app_name"); got != "chrome" {
		t.Errorf("app_name = %q, want %q", got, "chrome")
	}
	if mock.CallCount("Chat") != 1 {
		t.Errorf("Expected 1 Chat call, got %d", mock.CallCount("Chat"))
	}
}

func TestClassifyMalformedFallsBack(t *testing.T) {
	mock := mockReplying("I am sorry, I cannot answer that in JSON form.")
	c := newTestClassifier(mock)

	text := "open chrome"
	got := c.Classify(context.Background(), text)

	if want := FallbackClassify(text); !reflect.DeepEqual(got, want) {
		t.Errorf("Classify(%q) = %v, want fallback result %v", text, got, want)
	}
}

func TestClassifyProviderErrorFallsBack(t *testing.T) {
	mock := inference.WithError(errors.New("connection refused"))
	c := newTestClassifier(mock)

	in := c.Classify(context.Background(), "play despacito")

	if in.Tool != ToolPlayMedia {
		t.Fatalf("Expected play_media from fallback, got %s", in.Tool)
	}
	if got := in.Param("query"); got != "despacito" {
		t.Errorf("query = %q, want %q", got, "despacito")
	}
	if got := in.Param("platform"); got != "youtube" {
		t.Errorf("platform = %q, want %q", got, "youtube")
	}
}

func TestClassifyInvalidParamsFallsBack(t *testing.T) {
	mock := mockReplying(`{"tool": "open_app", "parameters": {}}`)
	c := newTestClassifier(mock)

	in := c.Classify(context.Background(), "open chrome")

	if in.Tool != ToolOpenApp {
		t.Fatalf("Expected open_app from fallback, got %s", in.Tool)
	}
	if got := in.Param("app_name"); got != "chrome" {
		t.Errorf("app_name = %q, want %q (fallback should refill params)", got, "chrome")
	}
}

func TestClassifyUnknownToolFallsBack(t *testing.T) {
	mock := mockReplying(`{"tool": "dance_party", "parameters": {"query": "x"}}`)
	c := newTestClassifier(mock)

	text := "tell me a joke"
	in := c.Classify(context.Background(), text)

	if in.Tool != ToolGeneralChat {
		t.Fatalf("Expected general_chat from fallback, got %s", in.Tool)
	}
	if got := in.Param("query"); got != text {
		t.Errorf("query = %q, want %q", got, text)
	}
}

func TestGenerateRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too short", "ok"},
		{"error marker", "Error: model exploded"},
		{"whitespace only", "          "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(mockReplying(tt.content))

			if _, ok := c.Generate(context.Background(), "prompt under test", "query", TierFast); ok {
				t.Errorf("Expected %q to be rejected", tt.content)
			}
		})
	}
}

func TestGenerateAccepts(t *testing.T) {
	c := newTestClassifier(mockReplying("The capital of France is Paris."))

	out, ok := c.Generate(context.Background(), "prompt under test", "query", TierFast)
	if !ok {
		t.Fatal("Expected response to be accepted")
	}
	if out != "The capital of France is Paris." {
		t.Errorf("Got %q", out)
	}
}

func TestGenerateStoresCode(t *testing.T) {
	code := "def greet():\n    print(\"hello\")"
	c := newTestClassifier(mockReplying(code))

	if _, ok := c.Generate(context.Background(), "prompt under test", "write code", TierReasoning); !ok {
		t.Fatal("Expected response to be accepted")
	}
	if !c.HasCode() {
		t.Fatal("Expected generated code to be stored")
	}
	if c.LastCode() != code {
		t.Errorf("LastCode = %q, want %q", c.LastCode(), code)
	}
}

func TestGenerateProseDoesNotStoreCode(t *testing.T) {
	c := newTestClassifier(mockReplying("Paris is the capital of France."))

	if _, ok := c.Generate(context.Background(), "prompt under test", "query", TierFast); !ok {
		t.Fatal("Expected response to be accepted")
	}
	if c.HasCode() {
		t.Error("Expected no code to be stored for prose")
	}
}

func TestGenerateCacheHit(t *testing.T) {
	mock := mockReplying("The capital of France is Paris.")
	c := newTestClassifier(mock)

	first, ok := c.Generate(context.Background(), "same prompt", "query", TierFast)
	if !ok {
		t.Fatal("Expected first call to succeed")
	}
	second, ok := c.Generate(context.Background(), "same prompt", "query", TierFast)
	if !ok {
		t.Fatal("Expected cached call to succeed")
	}
	if first != second {
		t.Errorf("Cached response %q differs from original %q", second, first)
	}
	if mock.CallCount("Chat") != 1 {
		t.Errorf("Expected 1 Chat call, got %d", mock.CallCount("Chat"))
	}
}

func TestSelectModelHonorsTier(t *testing.T) {
	c := newTestClassifier(inference.NewMock())

	tests := []struct {
		tier Tier
		want string
	}{
		{TierFast, "phi3:mini"},
		{TierDeep, "llama3:instruct"},
		{TierReasoning, "mistral:latest"},
	}

	for _, tt := range tests {
		if got := c.SelectModel(context.Background(), "anything", tt.tier); got != tt.want {
			t.Errorf("SelectModel(tier=%s) = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

func TestSelectModelAutoScores(t *testing.T) {
	c := newTestClassifier(inference.NewMock())

	if got := c.SelectModel(context.Background(), "open chrome", TierAuto); got != "phi3:mini" {
		t.Errorf("Got %q, want phi3:mini for an action command", got)
	}
	if got := c.SelectModel(context.Background(), "write code to sort a list", TierAuto); got != "mistral:latest" {
		t.Errorf("Got %q, want mistral:latest for a code request", got)
	}
}

func TestSelectModelFallbackWalk(t *testing.T) {
	mock := inference.NewMock()
	mock.ListModelsFunc = func(ctx context.Context) ([]string, error) {
		return []string{"llama3:instruct"}, nil
	}
	c := newTestClassifier(mock)

	if got := c.SelectModel(context.Background(), "anything", TierFast); got != "llama3:instruct" {
		t.Errorf("Got %q, want llama3:instruct when the fast model is down", got)
	}
}

func TestSelectModelLastResort(t *testing.T) {
	mock := inference.NewMock()
	mock.ListModelsFunc = func(ctx context.Context) ([]string, error) {
		return nil, nil
	}
	c := newTestClassifier(mock)

	if got := c.SelectModel(context.Background(), "anything", TierReasoning); got != "phi3:mini" {
		t.Errorf("Got %q, want phi3:mini when nothing is available", got)
	}
}

func TestAvailableModels(t *testing.T) {
	mock := inference.NewMock()
	mock.ListModelsFunc = func(ctx context.Context) ([]string, error) {
		return []string{"mistral:latest", "phi3:mini"}, nil
	}
	c := newTestClassifier(mock)

	got := c.AvailableModels(context.Background())
	want := []string{"phi3:mini", "mistral:latest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableModels = %v, want %v in fallback order", got, want)
	}
}

func TestModelProbeCached(t *testing.T) {
	mock := inference.NewMock()
	c := newTestClassifier(mock)

	c.AvailableModels(context.Background())
	c.AvailableModels(context.Background())

	if got := mock.CallCount("ListModels"); got != 1 {
		t.Errorf("Expected 1 ListModels call within TTL, got %d", got)
	}
}

func TestModelProbeRefreshesAfterTTL(t *testing.T) {
	mock := inference.NewMock()
	c := newTestClassifier(mock, WithHealthTTL(0))

	c.AvailableModels(context.Background())
	c.AvailableModels(context.Background())

	if got := mock.CallCount("ListModels"); got != 2 {
		t.Errorf("Expected 2 ListModels calls with zero TTL, got %d", got)
	}
}

func TestModelProbeFailureCached(t *testing.T) {
	mock := inference.WithError(errors.New("daemon offline"))
	c := newTestClassifier(mock)

	if got := c.AvailableModels(context.Background()); len(got) != 0 {
		t.Errorf("Expected no available models, got %v", got)
	}
	c.AvailableModels(context.Background())

	if got := mock.CallCount("ListModels"); got != 1 {
		t.Errorf("Expected failed probe to be cached, got %d ListModels calls", got)
	}
}

func TestSetLastCode(t *testing.T) {
	c := newTestClassifier(inference.NewMock())

	if c.HasCode() {
		t.Fatal("Expected no code initially")
	}
	c.SetLastCode("package main")
	if !c.HasCode() {
		t.Fatal("Expected code after SetLastCode")
	}
	if c.LastCode() != "package main" {
		t.Errorf("LastCode = %q", c.LastCode())
	}
	c.SetLastCode("")
	if c.HasCode() {
		t.Error("Expected no code after clearing")
	}
}

func TestClassifierCacheOption(t *testing.T) {
	cache := NewResponseCache(5, time.Minute)
	cache.Put("prompt under test", "phi3:mini", "A precomputed answer lives here.")

	mock := inference.NewMock()
	c := newTestClassifier(mock, WithCache(cache))

	out, ok := c.Generate(context.Background(), "prompt under test", "query", TierFast)
	if !ok {
		t.Fatal("Expected cached response to be usable")
	}
	if out != "A precomputed answer lives here." {
		t.Errorf("Got %q", out)
	}
	if mock.CallCount("Chat") != 0 {
		t.Errorf("Expected no Chat calls on a warm cache, got %d", mock.CallCount("Chat"))
	}
}
