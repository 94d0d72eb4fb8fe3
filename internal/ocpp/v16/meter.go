package v16

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/montanaflynn/stats"
)

// MeterReadingStyle selects how the mock sample generator fills a
// MeterValues frame. Deterministic is the default (§4.3); Randomized is
// kept behind the same interface for fuzz testing, per the spec's
// allowance that either is acceptable provided the schema validates.
type MeterReadingStyle int

const (
	MeterReadingDeterministic MeterReadingStyle = iota
	MeterReadingRandomized
)

// MeterGenerator produces mock MeterValue readings for a connector.
//
// Grounded on original_source/crates/ocpp/src/v1_6/msg_generator.rs for the
// deterministic three-phase reading set, and on
// original_source/crates/ocpp/src/mock_data.rs for the fully-randomized
// alternative. github.com/montanaflynn/stats reports summary statistics of
// the energy readings a generator has emitted, for debug-mode diagnostics.
type MeterGenerator struct {
	Style MeterReadingStyle

	energySamples []float64
}

// NewMeterGenerator returns a generator using the given reading style.
func NewMeterGenerator(style MeterReadingStyle) *MeterGenerator {
	return &MeterGenerator{Style: style}
}

// Sample produces one MeterValue reading. cumulativeEnergyWh should track
// the session's running energy total so successive samples are monotonic.
func (g *MeterGenerator) Sample(cumulativeEnergyWh float64) MeterValue {
	switch g.Style {
	case MeterReadingRandomized:
		return g.randomizedSample(cumulativeEnergyWh)
	default:
		return g.deterministicSample(cumulativeEnergyWh)
	}
}

func (g *MeterGenerator) deterministicSample(cumulativeEnergyWh float64) MeterValue {
	now := DateTime{Time: time.Now()}

	currents := [3]float64{
		randRange(5.0, 32.0),
		randRange(5.0, 32.0),
		randRange(5.0, 32.0),
	}
	voltages := [3]float64{
		randRange(220.0, 240.0),
		randRange(220.0, 240.0),
		randRange(220.0, 240.0),
	}

	energy := cumulativeEnergyWh
	if energy <= 0 {
		energy = randRange(1000.0, 50000.0)
	}
	g.energySamples = append(g.energySamples, energy)

	samples := make([]SampledValue, 0, 10)
	phases := []string{"L1", "L2", "L3"}
	for i, phase := range phases {
		samples = append(samples, SampledValue{
			Value:     formatReading(currents[i]),
			Context:   ReadingContextInterruptionBegin,
			Format:    "Raw",
			Measurand: MeasurandCurrentImport,
			Phase:     phase,
			Location:  LocationOutlet,
			Unit:      UnitOfMeasureA,
		})
	}

	samples = append(samples, SampledValue{
		Value:     formatReading(energy),
		Context:   ReadingContextInterruptionBegin,
		Format:    "Raw",
		Measurand: MeasurandEnergyActiveImportRegister,
		Location:  LocationOutlet,
		Unit:      UnitOfMeasureWh,
	})

	for i, phase := range []string{"L1-N", "L2-N", "L3-N"} {
		powerKW := voltages[i] * currents[i] / 1000.0
		samples = append(samples, SampledValue{
			Value:     formatReading(powerKW),
			Context:   ReadingContextInterruptionBegin,
			Format:    "Raw",
			Measurand: MeasurandPowerActiveImport,
			Phase:     phase,
			Location:  LocationOutlet,
			Unit:      UnitOfMeasureKW,
		})
	}

	for i, phase := range []string{"L1-N", "L2-N", "L3-N"} {
		samples = append(samples, SampledValue{
			Value:     formatReading(voltages[i]),
			Context:   ReadingContextInterruptionBegin,
			Format:    "Raw",
			Measurand: MeasurandVoltage,
			Phase:     phase,
			Location:  LocationOutlet,
			Unit:      UnitOfMeasureV,
		})
	}

	return MeterValue{Timestamp: now, SampledValue: samples}
}

func (g *MeterGenerator) randomizedSample(cumulativeEnergyWh float64) MeterValue {
	now := DateTime{Time: time.Now()}

	energy := cumulativeEnergyWh + randRange(0, 100)
	g.energySamples = append(g.energySamples, energy)

	return MeterValue{
		Timestamp: now,
		SampledValue: []SampledValue{
			{
				Value:     formatReading(energy),
				Measurand: MeasurandEnergyActiveImportRegister,
				Unit:      UnitOfMeasureWh,
				Location:  LocationOutlet,
			},
			{
				Value:     formatReading(randRange(1.0, 50.0)),
				Measurand: MeasurandPowerActiveImport,
				Unit:      UnitOfMeasureKW,
				Location:  LocationOutlet,
			},
		},
	}
}

// EnergyStats reports the mean and standard deviation of the energy
// readings emitted so far, for debug-mode diagnostics of a simulated run.
func (g *MeterGenerator) EnergyStats() (mean, stddev float64, err error) {
	if len(g.energySamples) == 0 {
		return 0, 0, nil
	}
	mean, err = stats.Mean(g.energySamples)
	if err != nil {
		return 0, 0, err
	}
	stddev, err = stats.StandardDeviation(g.energySamples)
	if err != nil {
		return 0, 0, err
	}
	return mean, stddev, nil
}

func randRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rand.Float64()*(hi-lo)
}

func formatReading(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
