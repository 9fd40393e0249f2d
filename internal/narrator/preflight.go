// internal/narrator/preflight.go
//
// Startup checks run once before the first round.
// Responsibilities:
//   - Verify the API key against the key endpoint; a rejected key is a hard
//     configuration error, surfaced before any round begins.
//   - When the player asked for a non-default model, look it up in the
//     published model list and warn if it is unknown. An unknown model is not
//     fatal: the service rejects it per round and narration falls back.
//
// Both checks run concurrently; network trouble that is not an auth rejection
// only logs a warning, since the game plays fine on fallback lines.
package narrator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidKey reports that OpenRouter rejected the configured API key.
var ErrInvalidKey = errors.New("invalid credentials: the API key was rejected")

// modelList mirrors the subset of GET /models the check needs.
type modelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Preflight validates the key and, when verifyModel is set, the model id.
// It returns an error only for auth rejection; everything else degrades to
// warnings.
func (c *Client) Preflight(ctx context.Context, verifyModel bool) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return c.checkKey(ctx) })
	if verifyModel {
		g.Go(func() error {
			c.checkModel(ctx)
			return nil
		})
	}
	return g.Wait()
}

// checkKey probes the key endpoint with the bearer credential.
func (c *Client) checkKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/auth/key", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// Offline play still works on fallback lines.
		c.log.Warn().Err(err).Msg("key check unreachable; narration may fall back")
		return nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrInvalidKey
	default:
		c.log.Warn().Int("status", resp.StatusCode).Msg("unexpected key check status")
		return nil
	}
}

// checkModel fetches the public model list and warns when the configured id
// is not in it.
func (c *Client) checkModel(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/models", nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("model check skipped")
		return
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("model check unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("model check failed")
		return
	}
	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		c.log.Warn().Err(err).Msg("model list unreadable")
		return
	}
	for _, m := range list.Data {
		if m.ID == c.cfg.Model {
			return
		}
	}
	c.log.Warn().Str("model", c.cfg.Model).Msg("model not in the published list; requests may be rejected")
}
