package registry

import (
	"sort"

	"github.com/joshuapare/objkit/pkg/types"
)

// CheckLeaks inspects the registry for leaked objects: objects still mapped
// although no open scope justifies their residency. It is a no-op unless the
// open-scope set is empty. Immortal registrations are exempt.
//
// Leak handling is an observability hook, not an error path. With the
// ClearLeaks option the whole registry is wiped before reporting; when a
// leak tracker is configured it receives the full list of leaked objects,
// in id order, so the caller can log them or break their reference cycles.
// By default leaked objects are simply left resident with no signal.
func (r *Registry) CheckLeaks() {
	if r.checking {
		return
	}
	r.checking = true
	defer func() { r.checking = false }()

	r.sweepReclaimed()
	if len(r.open) != 0 {
		return
	}

	ids := make([]string, 0, len(r.objects))
	for id, obj := range r.objects {
		if rec, ok := r.records[obj]; ok && rec.immortal {
			continue
		}
		ids = append(ids, string(id))
	}
	if len(ids) == 0 {
		return
	}
	sort.Strings(ids)

	leaked := make([]any, 0, len(ids))
	for _, id := range ids {
		leaked = append(leaked, r.objects[types.ID(id)])
	}

	r.log.Warn().Int("count", len(leaked)).Strs("ids", ids).Msg("leaked objects detected")

	if r.clearLeaks {
		r.Clear()
	}
	if r.tracker != nil {
		r.tracker.TrackLeaks(leaked)
	}
}
