// internal/narrator/client.go
//
// OpenRouter-backed narrator for round outcomes.
// Responsibilities:
//   - Build the cowboy prompt for a round outcome and POST it to the
//     chat-completions endpoint with the API key as bearer credential.
//   - Bound the call with a client-side timeout independent of the
//     player-facing round deadline.
//   - Retry empty completions with constant backoff (free models return an
//     empty body while warming up).
//   - Map failures to readable reasons and degrade to stock fallback lines;
//     a narrator failure never fails the round.
//
// Wire shape (the only one in scope):
//
//	POST {base}/chat/completions
//	Authorization: Bearer <key>
//	{"model": "...", "messages": [{"role": "...", "content": "..."}]}
//	→ {"choices": [{"message": {"role": "assistant", "content": "..."}}]}
package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/robalobadob/randy/internal/game"
)

const (
	// DefaultModel is requested when neither flag nor environment names one.
	DefaultModel = "featherless/qwerky-72b:free"

	// DefaultBaseURL is the OpenRouter API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout bounds one narration exchange end to end.
	DefaultTimeout = 15 * time.Second

	warmupBackoff = 500 * time.Millisecond
	warmupRetries = 10
)

// systemPrompt steers the model into the cowboy voice. The model is told the
// exact outcome words it may be handed so replies stay on theme.
const systemPrompt = `You will be told the result of one round of a number guessing game: ` +
	`"Correct", "Too low", "Too high", "Invalid guess" or "Out of time". ` +
	`Answer the player with a short cowboy-like line matching that result. ` +
	`Include just your answer and nothing more. ` +
	`Don't include emoji or otherwise non-verbal content.`

// Config carries the resolved narrator settings. It is injected explicitly;
// the client never reads the environment.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // DefaultBaseURL when empty
	Timeout time.Duration // DefaultTimeout when zero
}

// Client talks to the OpenRouter chat-completions API.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// Reply is the narrator's answer for one round: either model text or a
// locally generated fallback line with the reason the call degraded.
type Reply struct {
	Text     string
	Fallback bool
	Reason   string // set only when Fallback is true
}

// New constructs a Client from cfg, filling in defaults.
func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log.With().Str("component", "narrator").Logger(),
	}
}

// Narrate satisfies game.Narrator: it always produces a displayable line,
// real narration when the call succeeds and a stock line otherwise.
func (c *Client) Narrate(ctx context.Context, req game.NarrationRequest) string {
	reply := c.Exchange(ctx, req)
	if reply.Fallback {
		c.log.Warn().Str("reason", reply.Reason).Str("outcome", string(req.Outcome)).Msg("narration fell back")
	}
	return reply.Text
}

// Exchange runs one narration call and reports whether it degraded.
func (c *Client) Exchange(ctx context.Context, req game.NarrationRequest) Reply {
	text, err := c.complete(ctx, req)
	if err != nil {
		return Reply{
			Text:     FallbackLine(req.Outcome, req.AttemptsUsed),
			Fallback: true,
			Reason:   err.Error(),
		}
	}
	return Reply{Text: text}
}

// --------------------------- wire types ------------------------------------

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs the chat-completions exchange, retrying while the model
// returns empty content. The whole loop shares one deadline.
func (c *Client) complete(ctx context.Context, req game.NarrationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userLine(req)},
		},
	})
	if err != nil {
		return "", err
	}

	var text string
	b := retry.WithMaxRetries(warmupRetries, retry.NewConstant(warmupBackoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		out, err := c.post(ctx, body)
		if err != nil {
			return err
		}
		if out == "" {
			// Model warming up; worth another try within the deadline.
			return retry.RetryableError(errors.New("empty completion"))
		}
		text = out
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// post sends one request and extracts the last choice's content.
func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New(statusReason(resp.StatusCode))
	}
	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("malformed response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return strings.TrimSpace(out.Choices[len(out.Choices)-1].Message.Content), nil
}

// userLine renders the outcome plus minimal round context for the model.
func userLine(req game.NarrationRequest) string {
	return fmt.Sprintf("%s (attempt %d, range %s)",
		outcomeWord(req.Outcome), req.AttemptsUsed+1, req.Range)
}

// outcomeWord maps an outcome to the wording the system prompt announces.
func outcomeWord(o game.Outcome) string {
	switch o {
	case game.OutcomeCorrect:
		return "Correct"
	case game.OutcomeTooLow:
		return "Too low"
	case game.OutcomeTooHigh:
		return "Too high"
	case game.OutcomeInvalid:
		return "Invalid guess"
	case game.OutcomeTimedOut:
		return "Out of time"
	default:
		return string(o)
	}
}

// statusReason translates the OpenRouter error codes into readable reasons.
// The set follows the codes documented for the API.
func statusReason(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "invalid credentials"
	case http.StatusPaymentRequired:
		return "insufficient credits"
	case http.StatusForbidden:
		return "flagged input"
	case http.StatusRequestTimeout:
		return "timed out"
	case http.StatusTooManyRequests:
		return "rate limited"
	case http.StatusBadGateway:
		return "model down or invalid response"
	case http.StatusServiceUnavailable:
		return "no available providers"
	default:
		return fmt.Sprintf("unexpected status %d", code)
	}
}
