package domain

// FeedEntry is one package listed in a feed index.
type FeedEntry struct {
	Name   string
	Hidden bool
}

// FeedIndex lists the packages published for one interface version.
type FeedIndex struct {
	InterfaceVersion string
	Entries          []FeedEntry
}
