package daily

// Stats summarises a series over the days it covers.
type Stats struct {
	Days    int
	Total   float64
	Average float64
	Min     float64
	Max     float64
}

// Summary computes Stats for s. An empty series yields the zero Stats.
func Summary(s Series) Stats {
	if s.Len() == 0 {
		return Stats{}
	}
	st := Stats{Days: s.Len(), Min: s.Values[0], Max: s.Values[0]}
	for _, v := range s.Values {
		st.Total += v
		st.Min = min(st.Min, v)
		st.Max = max(st.Max, v)
	}
	st.Average = st.Total / float64(st.Days)
	return st
}
