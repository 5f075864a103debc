package domain

// RetrievedChunk is a ranked context candidate. Score carries the ANN
// similarity after the search stage and the cross-encoder score after
// reranking.
type RetrievedChunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score"`
}

type Answer struct {
	Text    string           `json:"text"`
	Sources []RetrievedChunk `json:"sources"`
}
