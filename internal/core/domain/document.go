package domain

// Document is a source file loaded for indexing. It exists only for the
// duration of a build run; once chunked, only its chunks are persisted.
type Document struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Chunk is a bounded token-window slice of a document's text.
type Chunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata is the fixed per-chunk record persisted next to the vector.
type ChunkMetadata struct {
	Source     string `json:"source"`
	ChunkIndex int    `json:"chunk_index"`
}

// IndexEntry is the unit of an upsert batch. An existing entry with the
// same ID is fully replaced.
type IndexEntry struct {
	ID       string        `json:"id"`
	Vector   []float32     `json:"vector"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// IndexStats summarizes a completed build run.
type IndexStats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}
