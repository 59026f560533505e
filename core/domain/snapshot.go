// ABOUTME: Sync domain model: read-article map, feed sources and the snapshot exchanged between clients
// ABOUTME: A snapshot is the complete state one sync participant holds at a point in time

package domain

// ReadArticles maps an article identifier to the epoch milliseconds it was last marked read.
// Marking an article unread deletes its key.
type ReadArticles map[string]int64

// Clone returns an independent copy. A nil map clones to an empty one.
func (r ReadArticles) Clone() ReadArticles {
	out := make(ReadArticles, len(r))
	for id, ts := range r {
		out[id] = ts
	}
	return out
}

// Source is a subscribed feed; URL is its identity
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// CloneSources copies a source list, preserving nil
func CloneSources(sources []Source) []Source {
	if sources == nil {
		return nil
	}
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}

// Snapshot is the synchronized state of one participant.
// Nil LastVisit and nil Sources mean the participant has no value yet.
type Snapshot struct {
	ReadArticles ReadArticles `json:"readArticles"`
	LastVisit    *int64       `json:"lastVisit"`
	Sources      []Source     `json:"sources"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		ReadArticles: s.ReadArticles.Clone(),
		Sources:      CloneSources(s.Sources),
	}
	if s.LastVisit != nil {
		v := *s.LastVisit
		out.LastVisit = &v
	}
	return out
}

// Document is a fetched remote document passed through unparsed
type Document struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the upstream answered with a 2xx status
func (d *Document) OK() bool {
	return d.StatusCode >= 200 && d.StatusCode < 300
}
