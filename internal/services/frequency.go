package services

import "sort"

// frequencyCounter counts categorical values and remembers the order in which
// each value was first seen, so ties always resolve to the earliest value.
type frequencyCounter[K comparable] struct {
	order  []K
	counts map[K]int
}

func newFrequencyCounter[K comparable]() *frequencyCounter[K] {
	return &frequencyCounter[K]{counts: make(map[K]int)}
}

func (counter *frequencyCounter[K]) add(value K) {
	if _, seen := counter.counts[value]; !seen {
		counter.order = append(counter.order, value)
	}
	counter.counts[value]++
}

func (counter *frequencyCounter[K]) count(value K) int {
	return counter.counts[value]
}

func (counter *frequencyCounter[K]) empty() bool {
	return len(counter.order) == 0
}

// ranked returns values by descending count, first-seen order among equals.
func (counter *frequencyCounter[K]) ranked() []K {
	ranked := make([]K, len(counter.order))
	copy(ranked, counter.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counter.counts[ranked[i]] > counter.counts[ranked[j]]
	})
	return ranked
}

func (counter *frequencyCounter[K]) mode() (K, bool) {
	var best K
	bestCount := 0
	for _, value := range counter.order {
		if counter.counts[value] > bestCount {
			best = value
			bestCount = counter.counts[value]
		}
	}
	return best, bestCount > 0
}

// atLeast returns values seen min or more times, in first-seen order.
func (counter *frequencyCounter[K]) atLeast(min int) []K {
	values := make([]K, 0)
	for _, value := range counter.order {
		if counter.counts[value] >= min {
			values = append(values, value)
		}
	}
	return values
}

func (counter *frequencyCounter[K]) asMap() map[K]int {
	result := make(map[K]int, len(counter.counts))
	for value, count := range counter.counts {
		result[value] = count
	}
	return result
}
