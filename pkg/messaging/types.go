package messaging

import "fmt"

type ChangeTopic string

const (
	CatalogChanged ChangeTopic = "catalog_changed"
	TrackingEvents ChangeTopic = "tracking"
)

// Topic is a prefixed exchange, one per country for catalog changes and a global one
// for tracking. The exchange name doubles as the routing key.
type Topic struct {
	Prefix string
	Change ChangeTopic
}

func NewTopic(prefix string, change ChangeTopic) Topic {
	return Topic{Prefix: prefix, Change: change}
}

func (t Topic) Name() string {
	return fmt.Sprintf("%s_%s", t.Prefix, t.Change)
}

func (t Topic) String() string {
	return t.Name()
}
