package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfPacketDecode is perf metric
	PerfPacketDecode = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_packet_decode",
		Help:         "perf_packet_decode provides the sample metrics of packet decoding",
		RequiredTags: []string{"tag"},
	}

	// PerfPacketEncode is perf metric
	PerfPacketEncode = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_packet_encode",
		Help:         "perf_packet_encode provides the sample metrics of packet encoding",
		RequiredTags: []string{"tag"},
	}

	// PerfKeyRingLoad is perf metric
	PerfKeyRingLoad = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_keyring_load",
		Help:         "perf_keyring_load provides the sample metrics of loading armored key rings",
		RequiredTags: []string{"source"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfPacketDecode,
	&PerfPacketEncode,
	&PerfKeyRingLoad,
}
