package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued    EventType = "SearchIssued"
	EventPageLoaded      EventType = "PageLoaded"
	EventSearchFailed    EventType = "SearchFailed"
	EventCompanySelected EventType = "CompanySelected"
	EventSearchReset     EventType = "SearchReset"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when a request for a result page leaves the widget
type SearchIssuedEvent struct {
	Query string
	Page  int
	Seq   uint64
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// PageLoadedEvent is emitted when a result page has been applied
type PageLoadedEvent struct {
	Query     string
	Page      int
	Count     int // rows now displayed
	TotalHits int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// SearchFailedEvent is emitted when a fetch fails. The widget falls back to an
// empty list; this event is how the host learns why.
type SearchFailedEvent struct {
	Query string
	Page  int
	Err   error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// CompanySelectedEvent is emitted once per confirmed selection
type CompanySelectedEvent struct {
	Company Company
}

func (e CompanySelectedEvent) Type() EventType { return EventCompanySelected }

// SearchResetEvent is emitted when the query and selection are cleared
type SearchResetEvent struct{}

func (e SearchResetEvent) Type() EventType { return EventSearchReset }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
