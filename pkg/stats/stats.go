package stats

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	namespace = "luckyspin"

	ResultOk = "ok"

	megabyte = 1 << 20
)

var (
	instructions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_total",
			Help:      "Number of processed instructions by opcode and result.",
		},
		[]string{"opcode", "result"},
	)
	instructionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "instruction_duration_seconds",
			Help:      "Time spent processing an instruction, persistence included.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"opcode"},
	)
	signingDirectives = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signing_directives_total",
			Help:      "Number of transactions handed to the signing subsystem.",
		},
		[]string{"signer"},
	)
)

func init() {
	prometheus.MustRegister(instructions, instructionDuration, signingDirectives)
}

// ObserveInstruction records the outcome of an instruction. An empty result
// is reported as ResultOk.
func ObserveInstruction(opcode, result string, elapsed time.Duration) {
	if result == "" {
		result = ResultOk
	}
	instructions.WithLabelValues(opcode, result).Inc()
	instructionDuration.WithLabelValues(opcode).Observe(elapsed.Seconds())
}

// ObserveSigningDirective records a transaction submitted to the given kind
// of signer.
func ObserveSigningDirective(signer string) {
	signingDirectives.WithLabelValues(signer).Inc()
}

// EnableMemoryStatistics enables a go routine that periodically logs memory
// usage of the process. Once ctx is done, the gathered metrics are dumped to
// the file at dumpPath, if not empty.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, dumpPath string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
			case <-ctx.Done():
				if dumpPath == "" {
					return
				}
				if err := DumpMetrics(dumpPath); err != nil {
					log.WithError(err).Warn("failed to dump metrics")
				}
				return
			}
		}
	}()
}

// PrintMemoryStatistics logs memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"heap allocated: %.2fMB, total allocated: %.2fMB, go routines: %d",
		float64(memStats.HeapAlloc)/megabyte,
		float64(memStats.TotalAlloc)/megabyte,
		runtime.NumGoroutine(),
	)
}

// DumpMetrics appends the metrics of the default prometheus registry to the
// file at path.
func DumpMetrics(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, f := range families {
		if _, err := writer.WriteString(f.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
