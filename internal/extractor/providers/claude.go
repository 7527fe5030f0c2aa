package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"talent-utils/internal/config"
	"talent-utils/internal/extractor/processors"
	"talent-utils/internal/logging"
	"talent-utils/pkg/models"
)

// ClaudeProvider implements the extraction provider interface using
// Anthropic's Claude
type ClaudeProvider struct {
	client      anthropic.Client
	config      *config.Config
	htmlCleaner *processors.HTMLCleaner
	logger      logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.Extractor.APIKey),
	)

	return &ClaudeProvider{
		client:      client,
		config:      cfg,
		htmlCleaner: processors.NewHTMLCleaner(),
		logger:      logging.GetGlobalLogger(),
	}
}

// ExtractCandidate sends a CV document to Claude and returns the raw
// extraction envelope
func (cp *ClaudeProvider) ExtractCandidate(ctx context.Context, doc models.CVDocument) (*models.ExtractionEnvelope, error) {
	startTime := time.Now()

	cp.logger.Info("Starting CV extraction with Claude", map[string]interface{}{
		"filename":  doc.Filename,
		"mime_type": doc.MIMEType,
		"size":      len(doc.Data),
		"provider":  "claude",
	})

	content, err := cp.buildContent(doc)
	if err != nil {
		return nil, err
	}

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model(),
		MaxTokens:   int64(cp.config.Extractor.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.Extractor.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: content,
			Role:    anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return &models.ExtractionEnvelope{IsSuccess: false}, nil
	}

	var responseText string
	for _, block := range response.Content {
		textContent := block.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return &models.ExtractionEnvelope{IsSuccess: false}, nil
	}

	cp.logger.Debug("Claude extraction response received", map[string]interface{}{
		"filename":        doc.Filename,
		"processing_time": time.Since(startTime),
	})

	return &models.ExtractionEnvelope{
		IsSuccess:    true,
		GenerateText: responseText,
	}, nil
}

// buildContent converts the document into Claude message content. PDFs go as
// base64 document blocks; HTML is cleaned to text first.
func (cp *ClaudeProvider) buildContent(doc models.CVDocument) ([]anthropic.ContentBlockParamUnion, error) {
	prompt := cp.buildExtractionPrompt()

	if doc.IsPDF() {
		return []anthropic.ContentBlockParamUnion{
			{
				OfDocument: &anthropic.DocumentBlockParam{
					Source: anthropic.DocumentBlockParamSourceUnion{
						OfBase64: &anthropic.Base64PDFSourceParam{
							Data: base64.StdEncoding.EncodeToString(doc.Data),
						},
					},
				},
			},
			{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			},
		}, nil
	}

	text := string(doc.Data)
	if doc.IsHTML() {
		cleaned, err := cp.htmlCleaner.ExtractCVText(text)
		if err != nil {
			return nil, fmt.Errorf("failed to clean HTML CV: %w", err)
		}
		text = cleaned
	}

	// Rough estimation: 3 chars per token
	maxContentLength := cp.config.Extractor.MaxTokens * 3
	if len(text) > maxContentLength {
		text = text[:maxContentLength] + "..."
		cp.logger.Debug("CV content truncated to fit token limits", map[string]interface{}{
			"filename": doc.Filename,
		})
	}

	return []anthropic.ContentBlockParamUnion{
		{
			OfText: &anthropic.TextBlockParam{Text: prompt + "\n\nCV CONTENT:\n" + text},
		},
	}, nil
}

// buildExtractionPrompt creates the prompt for Claude to extract CV data
func (cp *ClaudeProvider) buildExtractionPrompt() string {
	return `You are a CV analyzer. Extract structured candidate information from the provided CV and return it as a JSON object.

Please extract the following information and return it as a valid JSON object with exactly these fields:

{
  "full_name": "string - The candidate's full name",
  "email": "string - The candidate's email address",
  "phone": "string - The candidate's phone number",
  "date_of_birth": "string - Date of birth in YYYY-MM-DD format if present",
  "skills": ["array of strings - Technical and professional skill names"],
  "work_experiences": [
    {
      "company": "string - Company name",
      "position": "string - Position held",
      "start_date": "string - Start date as written (year, year-month, or full date)",
      "end_date": "string - End date as written, or 'present' if ongoing",
      "description": "string - Brief description of the role"
    }
  ],
  "certificates": [
    {
      "name": "string - Certificate name as written",
      "issued_date": "string - Issue date as written",
      "image_url": "string - URL of the certificate image if referenced"
    }
  ],
  "job_roles": [
    {
      "position": "string - Claimed position, e.g. 'Backend Developer'",
      "level": "string - Claimed level, e.g. 'Senior'",
      "years_of_experience": number - Years of experience for this role (0 if unknown),
      "monthly_rate": number - Expected monthly rate (0 if not stated)
    }
  ]
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. If information is not found, use empty string "" for strings, empty array [] for arrays, and 0 for numbers
3. Keep dates exactly as written in the CV; do not invent precision that is not there
4. If the document does not appear to be a CV, return a JSON with empty values but maintain the structure`
}

func (cp *ClaudeProvider) model() anthropic.Model {
	if cp.config.Extractor.Model != "" {
		return anthropic.Model(cp.config.Extractor.Model)
	}
	return anthropic.ModelClaude3_7SonnetLatest
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.Extractor.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set EXTRACTOR_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     cp.model(),
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the extraction provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
