package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"documind/internal/contextutil"
	"documind/internal/llm"
	"documind/internal/retriever"
)

const (
	// DefaultChatTopK is how many chunks a chat answer retrieves.
	DefaultChatTopK = 6
	// DefaultChatMinSimilarity is the chat retrieval similarity floor.
	DefaultChatMinSimilarity = 0.15

	// NoRelevantInformationAnswer is returned, without calling the
	// completion capability, when retrieval finds nothing.
	NoRelevantInformationAnswer = "I could not find relevant information in your documents to answer this question."
)

const chatSystemPrompt = `You are a document analysis assistant. Answer the user's question using only the provided document context. Ground every statement in the context; if the context does not contain the answer, say so plainly. Be concise and factual.`

// Chat answers a question over the user's documents, grounded in
// retrieved chunks.
func (a *analyzer) Chat(ctx context.Context, userID string, req ChatRequest) (ChatResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Question) == "" {
		return ChatResult{}, fmt.Errorf("question is required")
	}

	topK := req.TopK
	if topK == 0 {
		topK = DefaultChatTopK
	}
	minSimilarity := req.MinSimilarity
	if minSimilarity == 0 {
		minSimilarity = DefaultChatMinSimilarity
	}

	chunks, err := a.retriever.Search(ctx, userID, req.Question, retriever.SearchOptions{
		TopK:          topK,
		MinSimilarity: minSimilarity,
		DocumentIDs:   req.DocumentIDs,
	})
	if err != nil {
		return ChatResult{}, fmt.Errorf("retrieval failed: %w", err)
	}

	if len(chunks) == 0 {
		logger.InfoContext(ctx, "no relevant chunks for question")
		return ChatResult{
			Answer:  NoRelevantInformationAnswer,
			Sources: []ChatSource{},
		}, nil
	}

	answer, err := a.completer.Complete(ctx, llm.CompletionRequest{
		System:      chatSystemPrompt,
		Prompt:      buildChatPrompt(req.Question, chunks),
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		logger.ErrorContext(ctx, "completion failed", "error", err)
		return ChatResult{}, fmt.Errorf("completion failed: %w", err)
	}

	logger.InfoContext(ctx, "chat answered", "chunks", len(chunks), "answer_length", len(answer))
	return ChatResult{
		Answer:  strings.TrimSpace(answer),
		Sources: aggregateSources(chunks),
	}, nil
}

// buildChatPrompt formats the retrieved chunks into a context block
// labeled with similarity percentages, followed by the question.
func buildChatPrompt(question string, chunks []retriever.RetrievedChunk) string {
	var sb strings.Builder
	sb.WriteString("--- Document context ---\n\n")
	for _, chunk := range chunks {
		sb.WriteString(fmt.Sprintf("[%s, section %d, relevance %.0f%%]\n", chunk.DocumentTitle, chunk.ChunkIndex, chunk.Similarity*100))
		sb.WriteString(chunk.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("--- End context ---\n\n")
	sb.WriteString("Question: ")
	sb.WriteString(question)
	return sb.String()
}

// aggregateSources counts contributing chunks per document.
func aggregateSources(chunks []retriever.RetrievedChunk) []ChatSource {
	counts := make(map[string]*ChatSource)
	for _, chunk := range chunks {
		if src, ok := counts[chunk.DocumentID]; ok {
			src.ChunkCount++
			continue
		}
		counts[chunk.DocumentID] = &ChatSource{
			DocumentID:    chunk.DocumentID,
			DocumentTitle: chunk.DocumentTitle,
			ChunkCount:    1,
		}
	}

	sources := make([]ChatSource, 0, len(counts))
	for _, src := range counts {
		sources = append(sources, *src)
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].ChunkCount != sources[j].ChunkCount {
			return sources[i].ChunkCount > sources[j].ChunkCount
		}
		return sources[i].DocumentID < sources[j].DocumentID
	})
	return sources
}
