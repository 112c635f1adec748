package embedding

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentvault-ai-go/internal/types"
)

func TestContentID(t *testing.T) {
	id1 := ContentID("senior go developer")
	id2 := ContentID("  senior go developer  ")
	id3 := ContentID("junior go developer")

	assert.Len(t, id1, 32)
	assert.Equal(t, id1, id2, "前后空白不影响ID")
	assert.NotEqual(t, id1, id3)
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{"bare array", `["Python", "Go", "AWS"]`, []string{"Python", "Go", "AWS"}, false},
		{"fenced block", "```json\n[\"Python\", \"Go\"]\n```", []string{"Python", "Go"}, false},
		{"fence without language", "```\n[\"Go\"]\n```", []string{"Go"}, false},
		{"surrounded by prose", `Here are the skills: ["Go", "SQL"] as requested.`, []string{"Go", "SQL"}, false},
		{"bracket inside string", `["arrays [like this]", "Go"]`, []string{"arrays [like this]", "Go"}, false},
		{"blank entries dropped", `["Go", "", "  "]`, []string{"Go"}, false},
		{"no array", "I could not find any skills.", nil, true},
		{"empty", "", nil, true},
		{"not strings", `[1, 2, 3]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONArray(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubChatClient struct {
	content string
	err     error
	calls   int
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func newTestFeatureBackend(client chatClient) *FeatureBackend {
	b := NewFeatureBackend(FeatureConfig{Model: "test-model"}, nil)
	b.client = client
	return b
}

func TestFeatureBackendRepresent(t *testing.T) {
	backend := newTestFeatureBackend(&stubChatClient{content: `["Python", "Kubernetes"]`})

	rep, err := backend.Represent(context.Background(), "resume text here")
	require.NoError(t, err)

	assert.Equal(t, types.RepresentationFeature, rep.Kind)
	assert.Equal(t, []string{"Python", "Kubernetes"}, rep.Features)
	assert.Equal(t, "resume text here", rep.Text)
	assert.Equal(t, "test-model", rep.Model)
}

func TestFeatureBackendFallsBackOnError(t *testing.T) {
	backend := newTestFeatureBackend(&stubChatClient{err: errors.New("boom")})

	rep, err := backend.Represent(context.Background(), "Senior Go Developer")
	require.NoError(t, err)

	assert.Equal(t, []string{"senior", "go", "developer"}, rep.Features)
}

func TestFeatureBackendFallsBackOnUnparseableOutput(t *testing.T) {
	backend := newTestFeatureBackend(&stubChatClient{content: "sorry, no list today"})

	rep, err := backend.RepresentQuery(context.Background(), "Python AND Django")
	require.NoError(t, err)

	assert.Equal(t, []string{"python", "and", "django"}, rep.Features)
}

func TestFeatureBackendWithoutClient(t *testing.T) {
	backend := NewFeatureBackend(FeatureConfig{Model: "test-model"}, nil)

	rep, err := backend.Represent(context.Background(), "Go SQL")
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "sql"}, rep.Features)
	assert.True(t, backend.Loaded())
}

func TestFeatureBackendEmptyInput(t *testing.T) {
	backend := NewFeatureBackend(FeatureConfig{Model: "test-model"}, nil)

	_, err := backend.Represent(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

type stubEmbeddingClient struct {
	vectors [][]float32
	errs    []error
	calls   int
}

func (s *stubEmbeddingClient) CreateEmbeddings(_ context.Context, _ openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return openai.EmbeddingResponse{}, s.errs[idx]
	}
	var vec []float32
	if len(s.vectors) > 0 {
		vec = s.vectors[0]
	}
	return openai.EmbeddingResponse{
		Data: []openai.Embedding{{Embedding: vec}},
	}, nil
}

func newTestDenseBackend(t *testing.T, client embeddingClient) *DenseBackend {
	t.Helper()
	backend, err := NewDenseBackend(DenseConfig{
		APIKey: "test-key",
		Model:  "test-embed",
	}, nil)
	require.NoError(t, err)
	backend.client = client
	return backend
}

func TestDenseBackendRepresent(t *testing.T) {
	backend := newTestDenseBackend(t, &stubEmbeddingClient{vectors: [][]float32{{0.1, 0.2, 0.3}}})

	rep, err := backend.Represent(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, types.RepresentationDense, rep.Kind)
	require.Len(t, rep.Vector, 3)
	assert.InDelta(t, 0.1, rep.Vector[0], 1e-6)
	assert.Equal(t, 3, rep.Dimensions)
	assert.Equal(t, "test-embed", rep.Model)
}

func TestDenseBackendRetriesRetryableErrors(t *testing.T) {
	client := &stubEmbeddingClient{
		vectors: [][]float32{{1, 0}},
		errs:    []error{errors.New("status code 503")},
	}
	backend := newTestDenseBackend(t, client)
	backend.maxRetries = 1

	rep, err := backend.Represent(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Len(t, rep.Vector, 2)
}

func TestDenseBackendDoesNotRetryFatalErrors(t *testing.T) {
	client := &stubEmbeddingClient{
		errs: []error{errors.New("invalid api key"), errors.New("invalid api key")},
	}
	backend := newTestDenseBackend(t, client)
	backend.maxRetries = 1

	_, err := backend.Represent(context.Background(), "text")
	assert.ErrorIs(t, err, ErrExternalService)
	assert.Equal(t, 1, client.calls)
}

func TestDenseBackendEmptyInput(t *testing.T) {
	backend := newTestDenseBackend(t, &stubEmbeddingClient{})

	_, err := backend.Represent(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNewDenseBackendRequiresKey(t *testing.T) {
	_, err := NewDenseBackend(DenseConfig{Model: "m"}, nil)
	assert.Error(t, err)
}
