// Package council dispatches a question to every council model over
// OpenRouter's OpenAI-compatible API and collects their stage-1 answers.
package council

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/sync/errgroup"

	apierrors "github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/models"
)

// Client fans questions out to the council members.
type Client struct {
	api     openai.Client
	members []string
	logf    func(format string, args ...any)
}

// ClientOption is a function that configures the client
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL string
	members []string
	logf    func(format string, args ...any)
	reqOpts []option.RequestOption
}

// WithMembers overrides the council membership. Order is preserved in
// Dispatch results.
func WithMembers(members []string) ClientOption {
	return func(c *clientConfig) { c.members = members }
}

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) { c.baseURL = u }
}

// WithLogger sets a verbose logging function. The default discards.
func WithLogger(logf func(format string, args ...any)) ClientOption {
	return func(c *clientConfig) { c.logf = logf }
}

// WithRequestOption forwards an extra request option to the underlying
// SDK client.
func WithRequestOption(opt option.RequestOption) ClientOption {
	return func(c *clientConfig) { c.reqOpts = append(c.reqOpts, opt) }
}

// NewClient creates a council client authenticated against OpenRouter.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apierrors.ErrNoAPIKey
	}

	cfg := &clientConfig{
		baseURL: models.OpenRouterBaseURL,
		members: models.DefaultCouncilModels,
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.members) == 0 {
		return nil, apierrors.ErrCouncilEmpty
	}

	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
	}, cfg.reqOpts...)

	return &Client{
		api:     openai.NewClient(reqOpts...),
		members: cfg.members,
		logf:    cfg.logf,
	}, nil
}

// Members returns the council membership in dispatch order.
func (c *Client) Members() []string {
	out := make([]string, len(c.members))
	copy(out, c.members)
	return out
}

// Dispatch sends the question (with its retrieved context) to every
// council member concurrently. Responses come back in council order;
// members that fail are dropped and their errors returned alongside.
// The call only errors when no member produced an answer.
func (c *Client) Dispatch(ctx context.Context, question string, sources []models.ContextSource) ([]models.Response, []error, error) {
	system, user := BuildStage1Messages(question, sources)

	var (
		mu       sync.Mutex
		answers  = make([]string, len(c.members))
		failures []error
	)

	g, ctx := errgroup.WithContext(ctx)
	for i, member := range c.members {
		g.Go(func() error {
			answer, err := c.complete(ctx, member, system, user)
			if err != nil {
				c.logf("council member %s failed: %v", member, err)
				mu.Lock()
				failures = append(failures, apierrors.NewMemberError(member, err))
				mu.Unlock()
				return nil // a failed member never sinks the council
			}
			answers[i] = answer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, failures, err
	}

	responses := make([]models.Response, 0, len(c.members))
	for i, member := range c.members {
		if answers[i] == "" {
			continue
		}
		responses = append(responses, models.Response{Model: member, Response: answers[i]})
	}

	if len(responses) == 0 {
		return nil, failures, errors.Join(apierrors.ErrAllMembersFailed, errors.Join(failures...))
	}
	return responses, failures, nil
}

// complete runs a single chat completion against one member.
func (c *Client) complete(ctx context.Context, model, system, user string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", apierrors.ErrInvalidResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", apierrors.ErrNoContent
	}
	return content, nil
}
