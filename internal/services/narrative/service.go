// Package narrative wraps the generative model behind a non-failing
// interface: callers always get text back, never an error.
package narrative

import (
	"context"
	"strings"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/interfaces"
)

// UnavailableMessage is returned whenever the generative service cannot
// produce text — unconfigured client, network failure, quota, or an empty
// response. Callers pass it through verbatim.
const UnavailableMessage = "Portfolio insight unavailable: AI service not configured. Please set GEMINI_API_KEY."

// Service implements NarrativeGenerator. The client may be nil when no API
// key is configured.
type Service struct {
	client interfaces.GenerativeClient
	logger *common.Logger
}

// NewService creates a new narrative generator
func NewService(client interfaces.GenerativeClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Generate sends the prompt to the generative model and returns its text,
// trimmed. Any failure degrades to UnavailableMessage.
func (s *Service) Generate(ctx context.Context, prompt string) string {
	if s.client == nil {
		return UnavailableMessage
	}

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Narrative generation failed")
		return UnavailableMessage
	}

	return strings.TrimSpace(text)
}

// Ensure Service implements NarrativeGenerator
var _ interfaces.NarrativeGenerator = (*Service)(nil)
