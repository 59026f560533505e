package mappers

import (
	"feeds-app-api/api/dto/requests"
	"feeds-app-api/api/dto/responses"
	"feeds-app-api/core/domain"
	"feeds-app-api/core/reconcile"
)

// ToSyncSnapshot converts a snapshot to its wire form; the read map is never null
func ToSyncSnapshot(s domain.Snapshot) responses.SyncSnapshot {
	read := map[string]int64(s.ReadArticles)
	if read == nil {
		read = map[string]int64{}
	}
	return responses.SyncSnapshot{
		ReadArticles: read,
		LastVisit:    s.LastVisit,
		Sources:      ToSources(s.Sources),
	}
}

// ToSources converts domain sources, preserving nil
func ToSources(sources []domain.Source) []responses.Source {
	if sources == nil {
		return nil
	}
	out := make([]responses.Source, len(sources))
	for i, src := range sources {
		out[i] = responses.Source{Name: src.Name, URL: src.URL, Enabled: src.Enabled}
	}
	return out
}

// FromSources converts wire sources, preserving nil
func FromSources(sources []responses.Source) []domain.Source {
	if sources == nil {
		return nil
	}
	out := make([]domain.Source, len(sources))
	for i, src := range sources {
		out[i] = domain.Source{Name: src.Name, URL: src.URL, Enabled: src.Enabled}
	}
	return out
}

// ToSyncUpdate keeps only the fields present in the request
func ToSyncUpdate(req requests.SyncUpdateRequest) reconcile.Update {
	return reconcile.Update{
		ReadArticles: domain.ReadArticles(req.ReadArticles),
		LastVisit:    req.LastVisit,
		Sources:      FromSources(req.Sources),
	}
}
