package sandbox

import "strings"

func (s *Store) insertMemory(in Sandbox) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[in.ID]; exists {
		return false
	}
	s.byID[in.ID] = in
	s.order = append(s.order, in.ID)
	return true
}

func (s *Store) getMemory(id string) (Sandbox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sb, ok := s.byID[id]
	if !ok {
		return Sandbox{}, ErrNotFound
	}
	sb.Views++
	s.byID[id] = sb
	return sb, nil
}

func (s *Store) listMemory(f Filters) []ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first: walk insertion order backwards. CreatedAt is assigned
	// monotonically by Publish, so insertion order is creation order.
	matched := make([]ListItem, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		sb := s.byID[s.order[i]]
		if !sb.IsPublic || !matchesFilters(sb, f) {
			continue
		}
		matched = append(matched, sb.listItem())
	}

	if f.Offset >= len(matched) {
		return []ListItem{}
	}
	matched = matched[f.Offset:]
	if len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

func matchesFilters(sb Sandbox, f Filters) bool {
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(sb.ProjectName), strings.ToLower(f.Search)) {
		return false
	}
	if len(f.Tags) > 0 && !hasAnyTag(sb.TechStack, f.Tags) {
		return false
	}
	if f.MinCost != nil && sb.TotalCost < *f.MinCost {
		return false
	}
	if f.MaxCost != nil && sb.TotalCost > *f.MaxCost {
		return false
	}
	return true
}

func hasAnyTag(stack, tags []string) bool {
	for _, tag := range tags {
		for _, have := range stack {
			if strings.EqualFold(have, tag) {
				return true
			}
		}
	}
	return false
}
