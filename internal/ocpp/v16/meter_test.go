package v16

import "testing"

func TestMeterGenerator_DeterministicSampleHasEnergyReading(t *testing.T) {
	gen := NewMeterGenerator(MeterReadingDeterministic)
	mv := gen.Sample(0)

	found := false
	for _, sv := range mv.SampledValue {
		if sv.Measurand == MeasurandEnergyActiveImportRegister {
			found = true
			if sv.Unit != UnitOfMeasureWh {
				t.Errorf("expected energy reading unit Wh, got %s", sv.Unit)
			}
		}
	}
	if !found {
		t.Error("expected a Energy.Active.Import.Register sample in the deterministic reading set")
	}
}

func TestMeterGenerator_RandomizedSampleProducesReadings(t *testing.T) {
	gen := NewMeterGenerator(MeterReadingRandomized)
	mv := gen.Sample(100)
	if len(mv.SampledValue) == 0 {
		t.Error("expected at least one sampled value from the randomized generator")
	}
}

func TestMeterGenerator_EnergyStatsAccumulates(t *testing.T) {
	gen := NewMeterGenerator(MeterReadingDeterministic)
	for i := 0; i < 5; i++ {
		gen.Sample(float64(1000 * (i + 1)))
	}

	mean, stddev, err := gen.EnergyStats()
	if err != nil {
		t.Fatalf("EnergyStats failed: %v", err)
	}
	if mean <= 0 {
		t.Errorf("expected positive mean energy, got %f", mean)
	}
	if stddev < 0 {
		t.Errorf("expected non-negative stddev, got %f", stddev)
	}
}

func TestMeterGenerator_EnergyStatsEmpty(t *testing.T) {
	gen := NewMeterGenerator(MeterReadingDeterministic)
	mean, stddev, err := gen.EnergyStats()
	if err != nil {
		t.Fatalf("EnergyStats on empty generator should not error: %v", err)
	}
	if mean != 0 || stddev != 0 {
		t.Errorf("expected zero mean/stddev for empty sample set, got %f/%f", mean, stddev)
	}
}
