package domain

// Kind classifies a request as a command or a query.
type Kind int

const (
	// KindCommand marks a request that intends to mutate state. Commands
	// participate in transactional isolation.
	KindCommand Kind = iota + 1
	// KindQuery marks a read-only request. Queries never open a
	// transaction scope.
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Request is a typed envelope dispatched through the mediator. The kind is a
// structural tag carried by the embedded Command or Query marker; nothing is
// inferred from type names.
type Request interface {
	RequestName() string
	RequestKind() Kind
}

// Command is embedded by request types that mutate state.
type Command struct{}

func (Command) RequestKind() Kind { return KindCommand }

// Query is embedded by request types that read state.
type Query struct{}

func (Query) RequestKind() Kind { return KindQuery }
