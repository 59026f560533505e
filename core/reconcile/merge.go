// ABOUTME: State reconciler merging a local and a remote sync snapshot into one
// ABOUTME: Pure function; inputs are never mutated and the result shares no memory with them

package reconcile

import "feeds-app-api/core/domain"

// Merge combines two snapshots:
//   - read articles: union of ids, keeping the later timestamp per id
//   - last visit: the later of the two, nil counting as earliest
//   - sources: remote entries first in remote order, remote winning per URL,
//     then local-only entries in local order
//
// An unread mark is a missing key, so a read mark held by either side survives the merge.
func Merge(local, remote domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		ReadArticles: mergeReadArticles(local.ReadArticles, remote.ReadArticles),
		LastVisit:    laterVisit(local.LastVisit, remote.LastVisit),
		Sources:      mergeSources(local.Sources, remote.Sources),
	}
}

func mergeReadArticles(local, remote domain.ReadArticles) domain.ReadArticles {
	if local == nil && remote == nil {
		return nil
	}
	out := remote.Clone()
	for id, ts := range local {
		if cur, ok := out[id]; !ok || ts > cur {
			out[id] = ts
		}
	}
	return out
}

func laterVisit(local, remote *int64) *int64 {
	var v int64
	switch {
	case local == nil && remote == nil:
		return nil
	case local == nil:
		v = *remote
	case remote == nil:
		v = *local
	case *local > *remote:
		v = *local
	default:
		v = *remote
	}
	return &v
}

func mergeSources(local, remote []domain.Source) []domain.Source {
	if local == nil && remote == nil {
		return nil
	}
	out := make([]domain.Source, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote)+len(local))
	for _, list := range [][]domain.Source{remote, local} {
		for _, src := range list {
			if _, dup := seen[src.URL]; dup {
				continue
			}
			seen[src.URL] = struct{}{}
			out = append(out, src)
		}
	}
	return out
}
