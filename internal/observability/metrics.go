package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the request path and the
// ingestion pipeline.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	ingestedCount int64
	rejectedCount int64
	fallbackCount int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordIngest tracks admitted and deduplicated records per ingestion pass.
func (m *Metrics) RecordIngest(admitted, rejected int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestedCount += int64(admitted)
	m.rejectedCount += int64(rejected)
}

// RecordFallback counts reads served from the local store after a primary
// store failure.
func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbackCount++
}

// IngestTotals returns cumulative admitted/rejected record counts.
func (m *Metrics) IngestTotals() (admitted, rejected int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ingestedCount, m.rejectedCount
}

// FallbackTotal returns how many reads fell back to the local store.
func (m *Metrics) FallbackTotal() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fallbackCount
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
