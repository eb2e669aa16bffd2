package store

import "context"

// CreateTag appends a tag to the tag universe. Membership is checked by the caller.
func (s *Store) CreateTag(ctx context.Context, tag string) error {
	return s.driver.CreateTag(ctx, tag)
}

// ListTags returns all known tags in insertion order.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	return s.driver.ListTags(ctx)
}
