package domain

// Canonical status vocabulary. Unrecognized raw statuses are title-cased
// and passed through, so consumers must tolerate values outside this set.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
	StatusCritical   = "Critical"
	StatusWaiting    = "Waiting"
	StatusResolved   = "Resolved"
)

// Canonical priority vocabulary.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Canonical category labels. Category normalization is closed: unknown
// codes always map to CategoryOther, never to the raw input.
const (
	CategoryTechnical    = "Technical Problem"
	CategoryBilling      = "Billing Question"
	CategoryCommercial   = "Commercial Inquiry"
	CategoryCancellation = "Cancellation Request"
	CategoryOther        = "Other Request"
)

// Sentiment labels produced by the record enricher.
const (
	SentimentNegative         = "Negative"
	SentimentSomewhatNegative = "Somewhat negative"
	SentimentNeutral          = "Neutral"
	SentimentPositive         = "Positive"
)

const (
	// AgentAI is the fixed agent designation for AI-handled tickets in
	// production mode.
	AgentAI = "AI Assistant"

	// UnknownTicketID is the sentinel id for records that arrive without one.
	UnknownTicketID = "unknown"

	// DefaultClient replaces an absent requester display name.
	DefaultClient = "Anonymous"

	// MotifPlaceholder is the known throwaway summary value that never
	// survives motif derivation.
	MotifPlaceholder = "Support"

	// AuthorCustomer and AuthorAgent are the derived message author labels.
	AuthorCustomer = "Customer"
	AuthorAgent    = "Support Agent"
)

// Message is one exchange in a ticket thread. Author is derived from Role
// when the source omits it.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	Author    string `json:"author,omitempty"`
}

// Ticket is the canonical record every source variant converts into before
// reaching a consumer. All fields are source-provided strings; Date is
// never validated or reformatted.
type Ticket struct {
	ID             string    `json:"id"`
	Client         string    `json:"client"`
	Motif          string    `json:"motif"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	Channel        string    `json:"channel"`
	Date           string    `json:"date"`
	Agent          string    `json:"agent"`
	Messages       []Message `json:"messages,omitempty"`
	History        string    `json:"history,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	Sentiment      string    `json:"sentiment,omitempty"`
}

// IsRequesterRole reports whether a message role belongs to the ticket
// requester rather than an agent or the system.
func IsRequesterRole(role string) bool {
	switch role {
	case "user", "customer", "client":
		return true
	}
	return false
}
