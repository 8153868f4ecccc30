package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsight/finsight/internal/common"
)

type mockGenerativeClient struct {
	text string
	err  error

	lastPrompt string
}

func (m *mockGenerativeClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.text, m.err
}

func TestGenerate_TrimsResponse(t *testing.T) {
	client := &mockGenerativeClient{text: "\n  A balanced portfolio.  \n"}
	svc := NewService(client, common.NewSilentLogger())

	got := svc.Generate(context.Background(), "describe it")

	assert.Equal(t, "A balanced portfolio.", got)
	assert.Equal(t, "describe it", client.lastPrompt)
}

func TestGenerate_NilClient(t *testing.T) {
	svc := NewService(nil, common.NewSilentLogger())

	assert.Equal(t, UnavailableMessage, svc.Generate(context.Background(), "anything"))
}

func TestGenerate_ClientError(t *testing.T) {
	client := &mockGenerativeClient{err: errors.New("quota exceeded")}
	svc := NewService(client, common.NewSilentLogger())

	assert.Equal(t, UnavailableMessage, svc.Generate(context.Background(), "anything"))
}
