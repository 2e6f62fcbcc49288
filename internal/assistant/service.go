// Package assistant is the AI collaborator: chat, image analysis, code and
// backend generation against a text generation provider. It never touches
// the canvas.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/logging"
)

const (
	// DefaultHistoryWindow is how many prior turns are replayed into a chat
	// prompt.
	DefaultHistoryWindow = 5
	// DefaultMaxImageBytes caps uploaded images.
	DefaultMaxImageBytes = 10 << 20
	// DefaultQuestion is asked about an image when none is given.
	DefaultQuestion = "Describe this image in detail"
	// DefaultFramework is used by GenerateCode when none is given.
	DefaultFramework = "React"
	// DefaultTechStack is used by GenerateBackend when none is given.
	DefaultTechStack = "Node.js, Express, MongoDB"
)

// DefaultImageTypes are the accepted image formats.
var DefaultImageTypes = []string{"jpeg", "jpg", "png", "gif", "webp"}

var defaultImagePattern = imagePattern(DefaultImageTypes)

// imagePattern matches any of the type names anywhere in a string, so both
// ".png" and "image/png" match "png".
func imagePattern(types []string) *regexp.Regexp {
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Options tunes a Service.
type Options struct {
	HistoryWindow int
	MaxImageBytes int64
	// AllowedTypes overrides DefaultImageTypes.
	AllowedTypes []string
	Now           func() time.Time
	NewID         func() string
}

// Service answers assistant requests.
type Service struct {
	provider   Provider
	history    HistoryStore
	logger     logging.Logger
	opts       Options
	imageTypes *regexp.Regexp
}

// NewService creates a Service. A nil provider makes every generating call
// fail as unavailable; a nil history uses MemoryHistory.
func NewService(provider Provider, history HistoryStore, logger logging.Logger, opts Options) *Service {
	if history == nil {
		history = NewMemoryHistory()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = DefaultHistoryWindow
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = DefaultMaxImageBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	imageTypes := defaultImagePattern
	if len(opts.AllowedTypes) > 0 {
		imageTypes = imagePattern(opts.AllowedTypes)
	}
	return &Service{
		provider:   provider,
		history:    history,
		logger:     logger.WithComponent("assistant"),
		opts:       opts,
		imageTypes: imageTypes,
	}
}

// ChatRequest is a chat message from the user.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	SystemPrompt   string `json:"systemPrompt,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response       string    `json:"response"`
	ConversationID string    `json:"conversationId"`
	Timestamp      time.Time `json:"timestamp"`
}

// Chat answers req. Prior turns are replayed only when no system prompt is
// given. History is appended only when generation succeeds.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.Validation(errors.CodeInvalidRequest, "Message is required")
	}

	id := req.ConversationID
	if id == "" {
		id = s.opts.NewID()
	}

	history, err := s.history.Load(ctx, id)
	if err != nil {
		return nil, errors.Internal(errors.CodeHistoryFailed, "failed to load conversation", err)
	}

	text, err := s.generate(ctx, "chat", Prompt{Text: s.chatPrompt(req, history)})
	if err != nil {
		return nil, err
	}

	if err := s.history.Append(ctx, id,
		Turn{Role: RoleUser, Content: req.Message},
		Turn{Role: RoleAssistant, Content: text},
	); err != nil {
		s.logger.Warn(ctx, err, "Failed to record conversation", "conversation_id", id)
	}

	return &ChatResponse{Response: text, ConversationID: id, Timestamp: s.opts.Now()}, nil
}

func (s *Service) chatPrompt(req ChatRequest, history []Turn) string {
	switch {
	case req.SystemPrompt != "":
		return req.SystemPrompt + "\n\nUser: " + req.Message
	case len(history) > 0:
		if len(history) > s.opts.HistoryWindow {
			history = history[len(history)-s.opts.HistoryWindow:]
		}
		lines := make([]string, 0, len(history)+1)
		for _, t := range history {
			lines = append(lines, t.Role+": "+t.Content)
		}
		lines = append(lines, "User: "+req.Message)
		return strings.Join(lines, "\n")
	default:
		return req.Message
	}
}

// ImageAnalysis is the result of AnalyzeImage.
type ImageAnalysis struct {
	Analysis  string    `json:"analysis"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyzeImage asks question about img.
func (s *Service) AnalyzeImage(ctx context.Context, img Image, question string) (*ImageAnalysis, error) {
	if len(img.Data) == 0 {
		return nil, errors.Validation(errors.CodeNoImage, "Image file is required")
	}
	if int64(len(img.Data)) > s.opts.MaxImageBytes {
		return nil, errors.TooLarge(errors.CodeImageTooLarge,
			fmt.Sprintf("image exceeds %d bytes", s.opts.MaxImageBytes))
	}
	if !allowedImage(s.imageTypes, img.Name, img.MimeType) {
		return nil, errors.UnsupportedMedia(errors.CodeImageType, "Only image files are allowed").
			WithContext("mime_type", img.MimeType)
	}
	if question == "" {
		question = DefaultQuestion
	}

	text, err := s.generate(ctx, "analyze-image", Prompt{Text: question, Images: []Image{img}})
	if err != nil {
		return nil, err
	}
	return &ImageAnalysis{Analysis: text, Timestamp: s.opts.Now()}, nil
}

// allowedImage reports whether both the file extension and the mime type
// match pattern.
func allowedImage(pattern *regexp.Regexp, name, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return pattern.MatchString(ext) && pattern.MatchString(strings.ToLower(mimeType))
}

// GeneratedCode is the result of GenerateCode.
type GeneratedCode struct {
	Code          string    `json:"code"`
	ComponentType string    `json:"componentType"`
	Framework     string    `json:"framework"`
	Timestamp     time.Time `json:"timestamp"`
}

// GenerateCode asks for source code of a component.
func (s *Service) GenerateCode(ctx context.Context, componentType, requirements, framework string) (*GeneratedCode, error) {
	if componentType == "" || requirements == "" {
		return nil, errors.Validation(errors.CodeInvalidRequest, "Component type and requirements are required")
	}
	if framework == "" {
		framework = DefaultFramework
	}

	prompt := fmt.Sprintf("Generate %s code for a %s component with:\n    %s\n    Return only code.",
		framework, componentType, requirements)
	code, err := s.generate(ctx, "generate-code", Prompt{Text: prompt})
	if err != nil {
		return nil, err
	}
	return &GeneratedCode{
		Code:          code,
		ComponentType: componentType,
		Framework:     framework,
		Timestamp:     s.opts.Now(),
	}, nil
}

// GeneratedBackend is the result of GenerateBackend. Backend holds the
// decoded JSON answer, or {"architecture": text, "format": "text"} when the
// answer is not JSON.
type GeneratedBackend struct {
	Backend   any       `json:"backend"`
	Timestamp time.Time `json:"timestamp"`
}

// GenerateBackend asks for a backend architecture.
func (s *Service) GenerateBackend(ctx context.Context, description, techStack string, features []string) (*GeneratedBackend, error) {
	if description == "" {
		return nil, errors.Validation(errors.CodeInvalidRequest, "Description is required")
	}
	if techStack == "" {
		techStack = DefaultTechStack
	}
	featureList := "CRUD"
	if features != nil {
		featureList = strings.Join(features, ", ")
	}

	prompt := fmt.Sprintf("Design backend for: %s\n    Tech Stack: %s\n    Features: %s\n    Return JSON",
		description, techStack, featureList)
	text, err := s.generate(ctx, "generate-backend", Prompt{Text: prompt})
	if err != nil {
		return nil, err
	}

	var structured any
	if err := json.Unmarshal([]byte(text), &structured); err != nil {
		structured = map[string]any{"architecture": text, "format": "text"}
	}
	return &GeneratedBackend{Backend: structured, Timestamp: s.opts.Now()}, nil
}

// ClearConversation forgets a conversation. Unknown ids are not an error.
func (s *Service) ClearConversation(ctx context.Context, id string) error {
	if err := s.history.Delete(ctx, id); err != nil {
		return errors.Internal(errors.CodeHistoryFailed, "failed to clear conversation", err)
	}
	return nil
}

func (s *Service) generate(ctx context.Context, op string, prompt Prompt) (string, error) {
	if s.provider == nil {
		return "", errors.Unavailable(errors.CodeProviderMissing, "assistant provider is not configured")
	}

	perf := logging.StartOperation(s.logger, op)
	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		perf.EndWithError(ctx, err)
		return "", errors.Upstream(errors.CodeProviderFailed, "Failed to generate response", err).
			WithContext("operation", op)
	}
	perf.End(ctx)
	return text, nil
}
