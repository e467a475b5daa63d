/*
 * NETCAP - Traffic Analysis Framework
 * Copyright (c) 2017-2020 Philipp Mieden <dreadl0ck [at] protonmail [dot] ch>
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package metrics exposes the prometheus counters for the capture
// pipeline, gated by config the same way the teacher gates types.IPProfile
// metric exports behind conf.ExportMetrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles every counter/gauge this module exports. Construct one
// with NewRegistry and pass it down to the pipeline and dispatcher; a
// Registry built by NewRegistry always has live counters, even when
// disabled, so they are still valid to increment, just never scraped.
type Registry struct {
	enabled bool
	reg     *prometheus.Registry

	PacketsCaptured   prometheus.Counter
	PacketsDropped    *prometheus.CounterVec
	MessagesDemuxed   *prometheus.CounterVec
	ReliableRejected  prometheus.Counter
	FragmentsAssembled prometheus.Counter
	ParseErrors       *prometheus.CounterVec
	ObserversTracked  prometheus.Gauge
	LootTracked       prometheus.Gauge
}

// NewRegistry constructs and registers every metric against a fresh
// prometheus.Registry. enabled controls whether ServeMux actually exposes an
// HTTP handler; the counters themselves are always live so callers never
// need to nil-check.
func NewRegistry(enabled bool) *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Registry{
		enabled: enabled,
		PacketsCaptured: factory.NewCounter(prometheus.CounterOpts{
			Name: "eft_packets_captured_total",
			Help: "Datagrams handed to the session tracker.",
		}),
		PacketsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_packets_dropped_total",
			Help: "Datagrams dropped before reaching the demultiplexer, by reason.",
		}, []string{"reason"}),
		MessagesDemuxed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_messages_demuxed_total",
			Help: "Sub-messages emitted by the UNET demultiplexer, by channel kind.",
		}, []string{"channel_kind"}),
		ReliableRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "eft_reliable_rejected_total",
			Help: "Reliable messages rejected as already-acked duplicates.",
		}),
		FragmentsAssembled: factory.NewCounter(prometheus.CounterOpts{
			Name: "eft_fragments_assembled_total",
			Help: "Fragmented messages fully reassembled.",
		}),
		ParseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "eft_parse_errors_total",
			Help: "Descriptor or dispatch parse errors, by stage.",
		}, []string{"stage"}),
		ObserversTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "eft_observers_tracked",
			Help: "Observers currently present in the world table.",
		}),
		LootTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "eft_loot_instances_tracked",
			Help: "Loot instances currently present in the world table.",
		}),
	}

	r.reg = reg

	return r
}

// ServeMux mounts /metrics on mux if metrics export is enabled, mirroring
// the teacher's conf.ExportMetrics gate.
func (r *Registry) ServeMux(mux *http.ServeMux) {
	if r == nil || !r.enabled {
		return
	}

	mux.Handle("/metrics", promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}
