// Package extraction turns article text into raw triplet candidates via an
// LLM. Results are unvalidated; the validator and the reviewer decide what
// survives.
package extraction

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sociotyper/sociotyper/internal/core/catalog"
	"github.com/sociotyper/sociotyper/internal/core/common"
	"github.com/sociotyper/sociotyper/internal/core/model"
	"github.com/sociotyper/sociotyper/internal/core/verbs"
	"github.com/sociotyper/sociotyper/internal/llm"
)

// DefaultConfidence is assigned when the provider reports no token-level
// confidence, which chat APIs do not.
const DefaultConfidence = 0.5

// llmTriplet is the JSON object shape the prompt asks for.
type llmTriplet struct {
	Role        string `json:"role"`
	Practice    string `json:"practice"`
	Counterrole string `json:"counterrole"`
	Context     string `json:"context"`
}

// Result is one extraction run over a text.
type Result struct {
	TotalChunks  int
	Triplets     []model.RawTriplet
	FailedChunks int
}

type Extractor struct {
	LLM     llm.Client
	Catalog *catalog.Catalog
	Verbs   *verbs.Table
	Chunker Chunker
	Logger  *log.Logger
}

func NewExtractor(client llm.Client, cat *catalog.Catalog, table *verbs.Table, chunker Chunker) *Extractor {
	return &Extractor{
		LLM:     client,
		Catalog: cat,
		Verbs:   table,
		Chunker: chunker,
		Logger:  log.Default(),
	}
}

// Extract chunks the text and prompts the LLM per chunk. A failed chunk is
// logged and skipped; the batch never aborts. maxTriplets of 0 means
// unlimited. Context cancellation stops requesting further chunks but keeps
// what was already extracted.
func (e *Extractor) Extract(ctx context.Context, text, userPrompt string, maxTriplets int) (Result, error) {
	chunks := e.Chunker.Chunk(text)
	res := Result{TotalChunks: len(chunks)}
	if len(chunks) == 0 {
		return res, fmt.Errorf("no text provided")
	}

	canonical := e.Verbs.Canonical()

	for i, chunk := range chunks {
		if maxTriplets > 0 && len(res.Triplets) >= maxTriplets {
			break
		}
		if err := ctx.Err(); err != nil {
			e.Logger.Warn("extraction stopped early", "chunk", i+1, "err", err)
			break
		}

		prompt := BuildPrompt(chunk, e.Catalog, canonical, userPrompt)
		response, err := e.LLM.Generate(ctx, prompt)
		if err != nil {
			e.Logger.Error("chunk extraction failed", "chunk", i+1, "err", err)
			res.FailedChunks++
			continue
		}

		parsed, err := common.ParseArray[llmTriplet](response)
		if err != nil {
			e.Logger.Error("chunk response unparseable", "chunk", i+1, "err", err)
			res.FailedChunks++
			continue
		}

		for _, p := range parsed {
			if maxTriplets > 0 && len(res.Triplets) >= maxTriplets {
				break
			}
			raw := model.RawTriplet{
				Text:       p.Context,
				Confidence: DefaultConfidence,
			}
			raw.Extracted.Role = p.Role
			raw.Extracted.Practice = p.Practice
			raw.Extracted.Counterrole = p.Counterrole

			if err := raw.Validate(); err != nil {
				e.Logger.Warn("dropping malformed triplet", "chunk", i+1, "err", err)
				continue
			}
			res.Triplets = append(res.Triplets, raw)
		}
	}

	e.Logger.Info("extraction finished",
		"chunks", res.TotalChunks, "failed_chunks", res.FailedChunks, "triplets", len(res.Triplets))
	return res, nil
}
