package models

// Document is a single indexed text file
type Document struct {
	ID              int    `msgpack:"id"`
	Path            string `msgpack:"path"`
	Title           string `msgpack:"title"`
	NormalizedTitle string `msgpack:"normalized_title"`
	Content         string `msgpack:"content"` // Plain text for snippet extraction
}

// IndexedDocument is a document with its analyzed term frequencies,
// produced by the indexer workers before the inverted index is merged.
type IndexedDocument struct {
	Doc       Document
	WordFreqs map[string]int // stem -> occurrences
	DocLen    int
}

// SearchIndex is the inverted index over document stems
type SearchIndex struct {
	Docs      []Document             `msgpack:"docs"`
	Inverted  map[string]map[int]int `msgpack:"inverted"` // stem -> docID -> frequency
	DocLens   map[int]int            `msgpack:"doc_lens"` // docID -> token count
	AvgDocLen float64                `msgpack:"avg_doc_len"`
	TotalDocs int                    `msgpack:"total_docs"`

	// British, StopWords and Stemming record how documents were analyzed;
	// queries must be analyzed the same way.
	British        bool     `msgpack:"british"`
	StopWords      bool     `msgpack:"stop_words"`
	Stemming       bool     `msgpack:"stemming"`
	Extensions     []string `msgpack:"extensions"` // sorted
	StemmerVersion string   `msgpack:"stemmer_version"`
	Fingerprint    string   `msgpack:"fingerprint"`
}
