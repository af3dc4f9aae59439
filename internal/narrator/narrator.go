// Package narrator asks Claude for a short, upbeat travel blurb describing a
// planned trip. It only sees the fields of the summary; it never looks up
// prices, routes or other live travel data.
package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/models"
	"github.com/ajitpratap0/tripplanner/pkg/tokenizer"
	"github.com/ajitpratap0/tripplanner/pkg/xmlutil"
)

const (
	// narrationMaxTokens caps Claude's response length for a blurb.
	narrationMaxTokens = 200

	// Activities are free text from the user; the prompt carries at most
	// activityTokenBudget tokens of them, each cut to activityItemTokens.
	activityTokenBudget = 300
	activityItemTokens  = 40
	activityOverhead    = 4
)

// Narrator writes a blurb for a trip summary.
type Narrator interface {
	Narrate(ctx context.Context, s models.Summary) (string, error)
}

// ClaudeNarrator implements Narrator with the Anthropic Messages API.
//
// On API failure it logs a warning and returns an empty blurb so the plan
// itself is never lost to a narration problem.
type ClaudeNarrator struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewClaudeNarrator creates a ClaudeNarrator. Extra request options (for
// example option.WithBaseURL in tests) are passed to the client.
func NewClaudeNarrator(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *ClaudeNarrator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	c := anthropic.NewClient(opts...)
	return &ClaudeNarrator{
		client: &c,
		model:  model,
		logger: logger,
	}
}

// Narrate returns a two-sentence blurb, or "" if Claude could not be reached.
func (n *ClaudeNarrator) Narrate(ctx context.Context, s models.Summary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := n.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(n.model),
		MaxTokens: narrationMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(s))),
		},
	})
	if err != nil {
		metrics.Inc(metrics.NarrationFailures)
		n.logger.Warn("narrator: Claude API call failed, skipping blurb", "error", err)
		return "", nil
	}

	var blurb string
	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			blurb = strings.TrimSpace(resp.Content[i].Text)
			break
		}
	}
	if blurb == "" {
		metrics.Inc(metrics.NarrationFailures)
		n.logger.Warn("narrator: empty response from Claude")
		return "", nil
	}

	metrics.Inc(metrics.NarrationsTotal)
	return blurb, nil
}

// Prompt builds the request text for a summary. User-entered content is
// XML-escaped so it cannot break out of its tags, and long activity lists
// are trimmed to a token budget.
func Prompt(s models.Summary) string {
	kept, dropped := tokenizer.Fit(s.Activities, activityTokenBudget, activityItemTokens, activityOverhead)
	var acts strings.Builder
	for _, a := range kept {
		acts.WriteString(xmlutil.Element("activity", a) + "\n")
	}
	if dropped > 0 {
		acts.WriteString(xmlutil.Element("activity", fmt.Sprintf("and %d more", dropped)) + "\n")
	}
	var places strings.Builder
	for _, p := range s.Places {
		places.WriteString(xmlutil.Element("place", p) + "\n")
	}

	return fmt.Sprintf(`Write exactly two upbeat sentences inviting a traveller on the trip below. Mention the destination and at most two places. Do not invent prices, dates or facts that are not given. Output ONLY the two sentences.

<trip>
%s
%s
<duration_days>%d</duration_days>
<budget_tier>%s</budget_tier>
<activities>
%s</activities>
<places>
%s</places>
</trip>`,
		xmlutil.Element("name", s.TripName),
		xmlutil.Element("destination", s.Destination),
		s.Duration,
		s.Tier,
		acts.String(),
		places.String(),
	)
}
