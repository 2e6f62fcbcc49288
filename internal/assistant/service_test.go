package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/blockcraft/internal/errors"
)

type fakeProvider struct {
	prompts []Prompt
	reply   func(Prompt) (string, error)
}

func (f *fakeProvider) Generate(_ context.Context, p Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	if f.reply != nil {
		return f.reply(p)
	}
	return fmt.Sprintf("reply %d", len(f.prompts)), nil
}

func newTestService(p Provider) *Service {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewService(p, nil, nil, Options{
		Now:   func() time.Time { return fixed },
		NewID: func() string { return "conv-1" },
	})
}

func TestChatAssignsConversationID(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	resp, err := svc.Chat(context.Background(), ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "reply 1", resp.Response)
	assert.Equal(t, 2024, resp.Timestamp.Year())
}

func TestChatPromptShapes(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p)
	ctx := context.Background()

	_, err := svc.Chat(ctx, ChatRequest{Message: "first", ConversationID: "c"})
	require.NoError(t, err)
	assert.Equal(t, "first", p.prompts[0].Text)

	_, err = svc.Chat(ctx, ChatRequest{Message: "second", ConversationID: "c"})
	require.NoError(t, err)
	assert.Equal(t, "user: first\nassistant: reply 1\nUser: second", p.prompts[1].Text)

	_, err = svc.Chat(ctx, ChatRequest{Message: "third", ConversationID: "c", SystemPrompt: "Be brief."})
	require.NoError(t, err)
	assert.Equal(t, "Be brief.\n\nUser: third", p.prompts[2].Text)
}

func TestChatReplaysOnlyTheWindow(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Chat(ctx, ChatRequest{Message: fmt.Sprintf("m%d", i), ConversationID: "c"})
		require.NoError(t, err)
	}

	last := p.prompts[len(p.prompts)-1].Text
	lines := strings.Split(last, "\n")
	require.Len(t, lines, DefaultHistoryWindow+1)
	assert.Equal(t, "assistant: reply 1", lines[0])
	assert.Equal(t, "User: m3", lines[len(lines)-1])
}

func TestChatFailureLeavesHistoryUntouched(t *testing.T) {
	history := NewMemoryHistory()
	p := &fakeProvider{reply: func(Prompt) (string, error) { return "", fmt.Errorf("boom") }}
	svc := NewService(p, history, nil, Options{})

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "hi", ConversationID: "c"})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUpstream))

	turns, err := history.Load(context.Background(), "c")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestChatRequiresMessage(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	_, err := svc.Chat(context.Background(), ChatRequest{Message: "  "})
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestWithoutProvider(t *testing.T) {
	svc := NewService(nil, nil, nil, Options{})
	_, err := svc.Chat(context.Background(), ChatRequest{Message: "hi"})
	assert.True(t, errors.IsKind(err, errors.KindUnavailable))
}

func TestAnalyzeImage(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p)
	ctx := context.Background()
	img := Image{Data: []byte{0x89, 'P', 'N', 'G'}, MimeType: "image/png", Name: "shot.png"}

	out, err := svc.AnalyzeImage(ctx, img, "")
	require.NoError(t, err)
	assert.Equal(t, "reply 1", out.Analysis)
	assert.Equal(t, DefaultQuestion, p.prompts[0].Text)
	require.Len(t, p.prompts[0].Images, 1)

	tests := []struct {
		name string
		img  Image
		kind errors.Kind
	}{
		{"empty", Image{MimeType: "image/png", Name: "a.png"}, errors.KindValidation},
		{"wrong type", Image{Data: []byte("x"), MimeType: "application/pdf", Name: "a.pdf"}, errors.KindUnsupportedMedia},
		{"extension mismatch", Image{Data: []byte("x"), MimeType: "image/png", Name: "a.txt"}, errors.KindUnsupportedMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeImage(ctx, tt.img, "what?")
			assert.True(t, errors.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestAnalyzeImageAllowedTypes(t *testing.T) {
	svc := NewService(&fakeProvider{}, nil, nil, Options{AllowedTypes: []string{"png"}})
	ctx := context.Background()

	_, err := svc.AnalyzeImage(ctx, Image{Data: []byte("x"), MimeType: "image/png", Name: "a.PNG"}, "")
	assert.NoError(t, err)

	_, err = svc.AnalyzeImage(ctx, Image{Data: []byte("x"), MimeType: "image/jpeg", Name: "a.jpg"}, "")
	assert.True(t, errors.IsKind(err, errors.KindUnsupportedMedia))

	assert.True(t, allowedImage(defaultImagePattern, "a.jpg", "image/jpeg"))
	assert.False(t, allowedImage(defaultImagePattern, "a.svg", "image/svg+xml"))
}

func TestAnalyzeImageTooLarge(t *testing.T) {
	svc := NewService(&fakeProvider{}, nil, nil, Options{MaxImageBytes: 4})
	_, err := svc.AnalyzeImage(context.Background(),
		Image{Data: []byte("12345"), MimeType: "image/gif", Name: "a.gif"}, "")
	assert.True(t, errors.IsKind(err, errors.KindTooLarge))
}

func TestGenerateCode(t *testing.T) {
	p := &fakeProvider{}
	svc := newTestService(p)

	out, err := svc.GenerateCode(context.Background(), "navbar", "sticky", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFramework, out.Framework)
	assert.Equal(t, "navbar", out.ComponentType)
	assert.Contains(t, p.prompts[0].Text, "Generate React code for a navbar component with:")
	assert.Contains(t, p.prompts[0].Text, "Return only code.")

	_, err = svc.GenerateCode(context.Background(), "", "x", "")
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestGenerateBackend(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  any
	}{
		{"json", `{"endpoints":[]}`, map[string]any{"endpoints": []any{}}},
		{"text", "Use a queue.", map[string]any{"architecture": "Use a queue.", "format": "text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{reply: func(Prompt) (string, error) { return tt.reply, nil }}
			svc := newTestService(p)

			out, err := svc.GenerateBackend(context.Background(), "a blog", "", nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Backend)
			assert.Contains(t, p.prompts[0].Text, "Tech Stack: "+DefaultTechStack)
			assert.Contains(t, p.prompts[0].Text, "Features: CRUD")
		})
	}
}

func TestClearConversation(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	ctx := context.Background()

	_, err := svc.Chat(ctx, ChatRequest{Message: "hi", ConversationID: "c"})
	require.NoError(t, err)
	require.NoError(t, svc.ClearConversation(ctx, "c"))
	require.NoError(t, svc.ClearConversation(ctx, "never-existed"))

	turns, err := svc.history.Load(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
