// Package limit bounds form text to per-field maximum lengths measured in
// grapheme clusters.
package limit

// Service applies the currently configured field limits. Limits are re-read
// from the accessor on every operation so configuration changes take effect
// immediately.
type Service struct {
	limits func() Limits
}

// NewService creates a Service reading limits from the given accessor.
// The accessor must be safe for concurrent use if the Service is shared.
func NewService(limits func() Limits) *Service {
	if limits == nil {
		panic("limit: nil limits accessor")
	}
	return &Service{limits: limits}
}

// Limit returns the configured maximum length for f.
// ok is false when the field has no limit, callers should treat it as unlimited.
func (s *Service) Limit(f Field) (max int, ok bool) {
	return s.limits().Get(f)
}

// Snapshot returns the limits in effect now. Work done against the returned
// value sees one configuration even if the accessor changes meanwhile.
func (s *Service) Snapshot() Limits {
	return s.limits()
}

// ValueLength returns the grapheme length of value, or zero when value is nil.
func (s *Service) ValueLength(value *string) int {
	if value == nil {
		return 0
	}
	return GraphemeLength(*value)
}

// TruncateByFieldLimit returns value cut down to the limit of field.
// Values within the limit, and values for unlimited fields, are returned unchanged.
func (s *Service) TruncateByFieldLimit(value string, field Field) string {
	return s.limits().Truncate(value, field)
}

// Exceeds reports how many grapheme clusters value holds beyond the limit of field.
// ok is false when the field is unlimited.
func (s *Service) Exceeds(value string, field Field) (over, max int, ok bool) {
	max, ok = s.Limit(field)
	if !ok {
		return 0, 0, false
	}
	if n := GraphemeLength(value); n > max {
		over = n - max
	}
	return over, max, true
}

// Truncate returns value cut down to the limit of field in l.
func (l Limits) Truncate(value string, field Field) string {
	max, ok := l.Get(field)
	if !ok {
		return value
	}
	return TruncateGraphemes(value, max)
}
