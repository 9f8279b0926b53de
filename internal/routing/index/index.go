package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/viterin/vek/vek32"

	"agent-gateway/internal/routing"
	"agent-gateway/pkg/embeddings"
	pkgLog "agent-gateway/pkg/log"
)

// Match is one shortlist entry, highest cosine similarity first.
type Match struct {
	Name  string
	Score float64
}

// Index holds normalized embedding vectors for a set of agent
// descriptions. It is immutable after Build; a new catalog snapshot
// gets a new Index.
type Index struct {
	l        pkgLog.Logger
	embedder embeddings.IEmbedder

	names   []string
	vectors [][]float32
}

// Build embeds every descriptor description in a single batch call and
// returns a searchable index. Descriptors without a name or description
// are skipped. An embedding failure yields *routing.EmbeddingError.
func Build(ctx context.Context, l pkgLog.Logger, embedder embeddings.IEmbedder, descriptors []routing.AgentDescriptor) (*Index, error) {
	names := make([]string, 0, len(descriptors))
	texts := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Name == "" || d.Description == "" {
			continue
		}
		names = append(names, d.Name)
		texts = append(texts, d.Description)
	}

	idx := &Index{l: l, embedder: embedder, names: names}
	if len(texts) == 0 {
		return idx, nil
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, &routing.EmbeddingError{Err: fmt.Errorf("failed to embed agent descriptions: %w", err)}
	}
	if len(vectors) != len(texts) {
		return nil, &routing.EmbeddingError{Err: fmt.Errorf("embedding count mismatch: got %d vectors for %d texts", len(vectors), len(texts))}
	}

	idx.vectors = make([][]float32, len(vectors))
	for i, vec := range vectors {
		idx.vectors[i] = normalize(vec)
	}

	l.Infof(ctx, "%s: indexed %d agent descriptions", LogPrefixBuild, len(names))
	return idx, nil
}

// Search embeds the query and returns the top-k agents by cosine
// similarity. With normalized vectors the dot product is the cosine.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]Match, error) {
	if len(idx.names) == 0 {
		return nil, nil
	}

	vectors, err := idx.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, &routing.EmbeddingError{Err: fmt.Errorf("failed to embed query: %w", err)}
	}
	if len(vectors) != 1 {
		return nil, &routing.EmbeddingError{Err: fmt.Errorf("embedding count mismatch: got %d vectors for query", len(vectors))}
	}
	queryVec := normalize(vectors[0])

	matches := make([]Match, 0, len(idx.names))
	for i, vec := range idx.vectors {
		if len(vec) != len(queryVec) {
			return nil, &routing.EmbeddingError{Err: fmt.Errorf("dimension mismatch: index %d, query %d", len(vec), len(queryVec))}
		}
		matches = append(matches, Match{
			Name:  idx.names[i],
			Score: float64(vek32.Dot(queryVec, vec)),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if k < len(matches) {
		matches = matches[:k]
	}

	idx.l.Infof(ctx, "%s: %d matches for query (k=%d)", LogPrefixSearch, len(matches), k)
	return matches, nil
}

// Len reports how many agent descriptions the index holds.
func (idx *Index) Len() int {
	return len(idx.names)
}

func normalize(vec []float32) []float32 {
	norm := math.Sqrt(float64(vek32.Dot(vec, vec)))
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	vek32.MulNumber_Inplace(out, float32(1/norm))
	return out
}
