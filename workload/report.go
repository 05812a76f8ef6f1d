package workload

import "strconv"

// A Stat describes the storage of a vector held by a Store.
type Stat struct {
	Key     string
	Len     int
	Cap     int
	Inlined bool
}

const (
	reportBasePrefix    = '['
	reportRowPrefix     = `{"key":`
	reportLenPrefix     = `,"len":`
	reportCapPrefix     = `,"cap":`
	reportInlinedPrefix = `,"inline":`
	reportRowSuffix     = "},"
	reportBaseSuffix    = ']'
)

// Stats returns a description of each vector in the store, in key order.
func (s *Store) Stats() []Stat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := make([]Stat, 0, s.m.Len())
	s.m.Scan(func(key string, v *Vector) bool {
		stats = append(stats, Stat{Key: key, Len: v.Len(), Cap: v.Cap(), Inlined: v.IsInlined()})
		return true
	})
	return stats
}

// Report returns a JSON encoding of the store statistics.
func (s *Store) Report() []byte {
	return serialize(s.Stats())
}

// serialize returns a JSON encoding of stats.
func serialize(stats []Stat) []byte {
	if len(stats) == 0 {
		return []byte("[]")
	}
	buf := make([]byte, 0, 2+len(stats)*64)
	buf = append(buf, reportBasePrefix)
	for _, x := range stats {
		buf = append(buf, reportRowPrefix...)
		buf = strconv.AppendQuote(buf, x.Key)
		buf = append(buf, reportLenPrefix...)
		buf = strconv.AppendInt(buf, int64(x.Len), 10)
		buf = append(buf, reportCapPrefix...)
		buf = strconv.AppendInt(buf, int64(x.Cap), 10)
		buf = append(buf, reportInlinedPrefix...)
		buf = strconv.AppendBool(buf, x.Inlined)
		buf = append(buf, reportRowSuffix...)
	}
	buf[len(buf)-1] = reportBaseSuffix
	return buf
}
