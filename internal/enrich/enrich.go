// Package enrich backfills missing company fields after merge: a generative
// model infers descriptions, employee counts, and headquarters locations,
// and a bounded homepage scrape collects social-profile links. Every pass is
// best-effort; a failed batch or fetch never fails the search.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/model"
	"github.com/sells-group/prospect-search/pkg/anthropic"
)

const defaultBatchSize = 15

// Enricher batches records with missing fields to a generative model.
type Enricher struct {
	client    anthropic.Client
	model     string
	batchSize int
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithBatchSize overrides the default batch size of 15.
func WithBatchSize(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// NewEnricher creates a gap-fill enricher.
func NewEnricher(client anthropic.Client, modelID string, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		client:    client,
		model:     modelID,
		batchSize: defaultBatchSize,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// fieldGuess is the per-company object the model is asked to return.
type fieldGuess struct {
	Description   string `json:"description"`
	EmployeeCount int    `json:"employee_count"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// Fill infers missing description, employee count, and headquarters fields
// for candidate records, writing only into blank fields. Records are mutated
// in place; failures are logged and swallowed per batch.
func (e *Enricher) Fill(ctx context.Context, records []model.CompanyRecord) {
	var candidates []int
	for i := range records {
		if needsFill(records[i]) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}

	for start := 0; start < len(candidates); start += e.batchSize {
		end := start + e.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		e.fillBatch(ctx, records, candidates[start:end])
	}
}

func needsFill(rec model.CompanyRecord) bool {
	return rec.Description == "" || rec.EmployeeCount == 0 || rec.City == ""
}

// fillBatch sends one model call for a batch of record indexes and applies
// the guesses positionally. A response whose array length does not equal the
// batch length is discarded whole rather than partially aligned.
func (e *Enricher) fillBatch(ctx context.Context, records []model.CompanyRecord, batch []int) {
	prompt := buildPrompt(records, batch)
	temp := 0.2

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   4096,
		System:      "You infer factual company attributes. Answer with JSON only, no prose.",
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("enrich: model call failed, skipping batch",
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return
	}
	resp.Usage.LogCost(e.model, "gap_fill")

	guesses, err := parseGuesses(resp.Text())
	if err != nil {
		zap.L().Warn("enrich: unparseable model output, skipping batch", zap.Error(err))
		return
	}
	if len(guesses) != len(batch) {
		zap.L().Warn("enrich: batch length mismatch, skipping batch",
			zap.Int("want", len(batch)),
			zap.Int("got", len(guesses)),
		)
		return
	}

	for n, idx := range batch {
		applyGuess(&records[idx], guesses[n])
	}
}

// buildPrompt renders the numbered company list the model is asked about.
func buildPrompt(records []model.CompanyRecord, batch []int) string {
	var b strings.Builder
	b.WriteString("For each numbered company below, infer a one-paragraph description, ")
	b.WriteString("an approximate employee count, and the headquarters city, state, and country. ")
	b.WriteString("Respond with only a JSON array of objects ")
	b.WriteString(`{"description", "employee_count", "city", "state", "country"}, `)
	b.WriteString("one per company, in the same order and of the same length as the list.\n\n")

	for n, idx := range batch {
		rec := records[idx]
		fmt.Fprintf(&b, "%d. %s", n+1, rec.Name)
		if rec.Domain != "" {
			fmt.Fprintf(&b, " (%s)", rec.Domain)
		}
		if rec.Industry != "" {
			fmt.Fprintf(&b, " - industry: %s", rec.Industry)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// parseGuesses strips any code fence and unmarshals the model's JSON array.
func parseGuesses(text string) ([]fieldGuess, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	var guesses []fieldGuess
	if err := json.Unmarshal([]byte(text), &guesses); err != nil {
		return nil, err
	}
	return guesses, nil
}

// applyGuess writes inferred values into blank fields only; provider data is
// never overwritten by a model guess.
func applyGuess(rec *model.CompanyRecord, g fieldGuess) {
	if rec.Description == "" {
		rec.Description = g.Description
	}
	if rec.EmployeeCount == 0 && g.EmployeeCount > 0 {
		rec.EmployeeCount = g.EmployeeCount
	}
	if rec.City == "" {
		rec.City = g.City
	}
	if rec.State == "" {
		rec.State = g.State
	}
	if rec.Country == "" {
		rec.Country = g.Country
	}
}
