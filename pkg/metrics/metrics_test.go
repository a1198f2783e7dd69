package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			registryOpt := WithPrometheusRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording gateway metrics", func() {
			Convey("Then it should record requests and latency", func() {
				So(func() {
					RecordGatewayRequest("players", "ok")
					RecordGatewayRequest("mission", "error")
					RecordGatewayLatency("players", 12.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording resolution outcomes", func() {
			Convey("Then it should accept every outcome label", func() {
				So(func() {
					RecordResolution("exact")
					RecordResolution("normalized")
					RecordResolution("miss")
					RecordResolution("ambiguous")
					RecordResolution("empty")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording session metrics", func() {
			Convey("Then it should record lifecycle counters", func() {
				So(func() {
					RecordSessionStarted()
					RecordSessionExpired()
					RecordMissionDone()
					RecordGuessSubmitted()
				}, ShouldNotPanic)
			})
		})

		Convey("When updating the roster gauge", func() {
			Convey("Then it should accept any size", func() {
				So(func() {
					UpdateRosterSize(0)
					UpdateRosterSize(42)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should not be nil", func() {
				So(registry, ShouldNotBeNil)
			})

			Convey("Then it should gather the registered metrics", func() {
				RecordSessionStarted()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
