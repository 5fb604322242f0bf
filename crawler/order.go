package crawler

import "sort"

// eventOrder returns the keys of a handler/propagator map in a fixed,
// deterministic order: OnPage first, then OnSelector events sorted by
// selector text. Callers should not rely on the relative order of distinct
// selectors, only on it being the same every dispatch.
func eventOrder[V any](m map[HandlerEvent]V) []HandlerEvent {
	keys := make([]HandlerEvent, 0, len(m))
	for ev := range m {
		keys = append(keys, ev)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].Selector < keys[j].Selector
	})
	return keys
}

func sortedEvents(m map[HandlerEvent][]Handler) []HandlerEvent {
	return eventOrder(m)
}

func sortedPropagatorEvents(m map[HandlerEvent][]Propagator) []HandlerEvent {
	return eventOrder(m)
}
