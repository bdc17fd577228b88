package domain

// The same normalization code used to receive remote-store items, local
// file records, and CSV rows as loosely shaped maps. Each source now has
// its own variant type with one explicit adapter into Ticket (the adapters
// live next to their callers in internal/resolver and internal/ingest).

// Analytics is the enrichment sub-object carried only by remote-store
// items. All fields are optional raw values.
type Analytics struct {
	Sentiment      string `json:"sentiment,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

// RemoteItem is one row of the primary managed table. Category, Status and
// Priority hold the raw source vocabulary; normalization happens at read
// time in the resolver.
type RemoteItem struct {
	ID        string     `json:"id"`
	Client    string     `json:"client"`
	Motif     string     `json:"motif"`
	Category  string     `json:"category"`
	Status    string     `json:"status"`
	Priority  string     `json:"priority"`
	Channel   string     `json:"channel"`
	Date      string     `json:"date"`
	Agent     string     `json:"agent"`
	Messages  []Message  `json:"messages,omitempty"`
	Analytics *Analytics `json:"analytics,omitempty"`
}

// RemotePayload is the JSONB column of the tickets table holding the
// structured parts of a RemoteItem.
type RemotePayload struct {
	Messages  []Message  `json:"messages,omitempty"`
	Analytics *Analytics `json:"analytics,omitempty"`
}

// LocalRecord is one element of the persisted local store: the flat JSON
// shape the dashboard historically consumed, with History as a plain
// string transcript instead of structured messages. Fields are raw; the
// resolver normalizes on the way out.
type LocalRecord struct {
	ID             string `json:"id"`
	Client         string `json:"client"`
	Motif          string `json:"motif"`
	Category       string `json:"category,omitempty"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	Channel        string `json:"channel"`
	Date           string `json:"date"`
	Agent          string `json:"agent"`
	History        string `json:"history,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Sentiment      string `json:"sentiment,omitempty"`
}

// CSVRow is one parsed row of a tabular input file after the source header
// vocabulary has been renamed to canonical field names. Missing columns
// arrive as empty strings, never as errors.
type CSVRow struct {
	ID             string
	Client         string
	Motif          string
	Status         string
	Priority       string
	Channel        string
	Date           string
	Agent          string
	History        string
	Recommendation string
	Sentiment      string
}
