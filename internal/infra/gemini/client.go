package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"docqa-relay/internal/domain"

	"google.golang.org/genai"
)

// Client talks to the Gemini API with a static API key. It is both the
// remote file store and the answer generator.
type Client struct {
	client *genai.Client
	logger domain.Logger
}

// Options tweak client construction. Zero values use the public endpoint.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Gemini client.
func NewClient(ctx context.Context, apiKey string, logger domain.Logger, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

var (
	_ domain.FileStore       = (*Client)(nil)
	_ domain.AnswerGenerator = (*Client)(nil)
)

// UploadFile uploads a local PDF to the Gemini file store.
func (c *Client) UploadFile(ctx context.Context, path string, displayName string) (*domain.FileReference, error) {
	cfg := &genai.UploadFileConfig{
		MIMEType:    domain.PDFMimeType,
		DisplayName: displayName,
	}
	file, err := c.client.Files.UploadFromPath(ctx, path, cfg)
	if err != nil {
		return nil, fmt.Errorf("GenAI upload failed: %w", err)
	}
	ref := toFileReference(file)
	c.logger.Debug("Uploaded file", "name", ref.Name, "state", ref.State)
	return ref, nil
}

// GetFile looks up a previously uploaded file by name.
func (c *Client) GetFile(ctx context.Context, name string) (*domain.FileReference, error) {
	file, err := c.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("GenAI file lookup failed for %s: %w", name, err)
	}
	return toFileReference(file), nil
}

// GenerateAnswer sends the instruction, the document parts and the question
// as a single user turn and returns the concatenated text of the reply.
func (c *Client) GenerateAnswer(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	parts := make([]*genai.Part, 0, len(req.Documents)+2)
	if req.Instruction != "" {
		parts = append(parts, genai.NewPartFromText(req.Instruction))
	}
	for _, doc := range req.Documents {
		mimeType := doc.MIMEType
		if mimeType == "" {
			mimeType = domain.PDFMimeType
		}
		parts = append(parts, genai.NewPartFromURI(doc.URI, mimeType))
	}
	parts = append(parts, genai.NewPartFromText(req.Question))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	var cfg *genai.GenerateContentConfig
	if req.Temperature != nil {
		cfg = &genai.GenerateContentConfig{Temperature: req.Temperature}
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini call failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	result := &domain.GenerationResult{Text: text}
	if resp.UsageMetadata != nil {
		result.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

func toFileReference(file *genai.File) *domain.FileReference {
	if file == nil {
		return &domain.FileReference{State: domain.FileStateUnspecified}
	}
	ref := &domain.FileReference{
		Name:        file.Name,
		DisplayName: file.DisplayName,
		URI:         file.URI,
		MIMEType:    file.MIMEType,
		State:       toFileState(file.State),
		ExpiresAt:   file.ExpirationTime,
	}
	if file.SizeBytes != nil {
		ref.SizeBytes = *file.SizeBytes
	}
	return ref
}

func toFileState(state genai.FileState) domain.FileState {
	switch state {
	case genai.FileStateActive:
		return domain.FileStateActive
	case genai.FileStateProcessing:
		return domain.FileStateProcessing
	case genai.FileStateFailed:
		return domain.FileStateFailed
	default:
		return domain.FileStateUnspecified
	}
}
