package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files (slash separated paths relative to root) below
// root, creating directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}

		err = os.WriteFile(path, []byte(body), 0o644)
		if err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// SampleLibrary writes [SampleFiles] into a fresh temporary directory and
// returns its path.
func SampleLibrary(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	WriteTree(t, root, SampleFiles)

	return root
}

// Expected figures of the sample library.
const (
	SampleSensorGain      = 1500.0
	SampleDigitizerGain   = 629129.0
	SampleGainOnlySensor  = 800.0
	SampleReferenceFreqHz = 1.0
)

// SampleFiles is a small NRL-shaped library:
//
//	sensor/      Guralp -> CMG-3T (single) -> {1500 V/m/s, 800 V/m/s}
//	             Streckeisen -> {STS-1 -> {...}, STS-2 -> Generation 3 (single leaf)}
//	datalogger/  REFTEK -> RT130 (single) -> {1x 100 sps, 32x 100 sps}
//	             Quanterra -> {Q330 -> 1x 40 sps, Q8 -> 1x 100 sps}
var SampleFiles = map[string]string{
	"sensor/index.txt": `[Main]
question = "Select the sensor manufacturer"

[Streckeisen]
path = "streckeisen"

[Guralp]
path = "guralp"
`,
	"sensor/guralp/index.txt": `[Main]
question = "Select the Guralp model"

[CMG-3T]
path = "cmg3t.txt"
`,
	"sensor/guralp/cmg3t.txt": `[Main]
question = "Select the sensitivity"

[1500 V/m/s]
xml = "cmg3t_1500.yaml"
description = "CMG-3T, 120 s - 50 Hz, 1500 V/m/s"

[800 V/m/s]
xml = "cmg3t_800.yaml"
description = "CMG-3T, 120 s - 50 Hz, 800 V/m/s (flat gain)"
`,
	"sensor/streckeisen/index.txt": `[Main]
question = "Select the Streckeisen model"

[STS-2]
path = "sts2"

[STS-1]
path = "sts1"
`,
	"sensor/streckeisen/sts2/index.txt": `[Main]
question = "Select the generation"

[Generation 3]
xml = "sts2_g3.yaml"
description = "STS-2 Generation 3, 120 s - 50 Hz, 1500 V/m/s"
`,
	"sensor/streckeisen/sts1/index.txt": `[Main]
question = "Select the version"

[VBB 360 s]
xml = "missing.yaml"
description = "STS-1 VBB, payload intentionally absent"

[Broken]
xml = "broken.yaml"
description = "STS-1, payload intentionally corrupt"
`,
	"sensor/streckeisen/sts1/broken.yaml": "stages: [this is: not a response\n",
	"datalogger/index.txt": `[Main]
question = "Select the datalogger manufacturer"

[REFTEK]
path = "reftek"

[Quanterra]
path = "quanterra"
`,
	"datalogger/reftek/index.txt": `[Main]
question = "Select the REFTEK model"

[RT130]
path = "rt130.txt"
`,
	"datalogger/reftek/rt130.txt": `[Main]
question = "Select the gain and sample rate"

[1x 100 sps]
xml = "rt130_1_100.yaml"
description = "RT130, gain 1, 100 sps"

[32x 100 sps]
xml = "rt130_32_100.yaml"
description = "RT130, gain 32, 100 sps"
`,
	"datalogger/quanterra/index.txt": `[Main]
question = "Select the Quanterra model"

[Q330]
path = "q330.txt"

[Q8]
path = "q8.txt"
`,
	"datalogger/quanterra/q330.txt": `[Main]
question = "Select the sample rate"

[1x 40 sps]
xml = "q330_40.yaml"
description = "Q330, gain 1, 40 sps"
`,
	"datalogger/quanterra/q8.txt": `[Main]
question = "Select the sample rate"

[1x 100 sps]
xml = "q8_100.yaml"
description = "Q8, gain 1, 100 sps"
`,
	"sensor/guralp/cmg3t_1500.yaml": `sensitivity:
  value: 1500
  frequency: 1
  input_units: {name: M/S, description: Velocity in meters per second}
  output_units: {name: V, description: Volts}
stages:
  - type: poles_zeros
    name: CMG-3T
    input_units: {name: M/S, description: Velocity in meters per second}
    output_units: {name: V, description: Volts}
    gain: 1500
    gain_frequency: 1
    poles_zeros:
      transfer_function: laplace_radians
      normalization_factor: 1.0000347
      normalization_frequency: 1
      zeros: [[0, 0], [0, 0]]
      poles: [[-0.037008, 0.037008], [-0.037008, -0.037008]]
`,
	"sensor/guralp/cmg3t_800.yaml": `sensitivity:
  value: 800
  frequency: 1
  input_units: {name: M/S, description: Velocity in meters per second}
  output_units: {name: V, description: Volts}
stages:
  - type: gain
    name: CMG-3T flat
    input_units: {name: M/S, description: Velocity in meters per second}
    output_units: {name: V, description: Volts}
    gain: 800
    gain_frequency: 1
  - type: gain
    name: analog buffer
    input_units: {name: V}
    output_units: {name: V}
    gain: 2
    gain_frequency: 1
`,
	"sensor/streckeisen/sts2/sts2_g3.yaml": `sensitivity:
  value: 1500
  frequency: 1
  input_units: {name: M/S, description: Velocity in meters per second}
  output_units: {name: V, description: Volts}
stages:
  - type: gain
    name: STS-2 G3
    input_units: {name: M/S, description: Velocity in meters per second}
    output_units: {name: V, description: Volts}
    gain: 1500
    gain_frequency: 1
`,
	"datalogger/reftek/rt130_1_100.yaml": `sensitivity:
  value: 629129
  frequency: 1
  input_units: {name: V, description: Volts}
  output_units: {name: COUNTS, description: Digital counts}
stages:
  - type: gain
    name: preamplifier placeholder
    input_units: {name: V, description: Volts}
    output_units: {name: V, description: Volts}
    gain: 1
    gain_frequency: 1
  - type: coefficients
    name: digitizer
    input_units: {name: V, description: Volts}
    output_units: {name: COUNTS, description: Digital counts}
    gain: 629129
    gain_frequency: 1
    coefficients:
      transfer_function: digital
      numerators: [1]
    decimation: {input_sample_rate: 1000, factor: 1}
  - type: fir
    name: decimation FIR
    input_units: {name: COUNTS}
    output_units: {name: COUNTS}
    gain: 1
    gain_frequency: 1
    fir:
      symmetry: none
      coefficients: [1]
    decimation: {input_sample_rate: 1000, factor: 10}
`,
	"datalogger/reftek/rt130_32_100.yaml": `sensitivity:
  value: 20132128
  frequency: 1
  input_units: {name: V, description: Volts}
  output_units: {name: COUNTS, description: Digital counts}
stages:
  - type: gain
    name: preamplifier placeholder
    input_units: {name: V, description: Volts}
    output_units: {name: V, description: Volts}
    gain: 32
    gain_frequency: 1
  - type: gain
    name: digitizer
    input_units: {name: V, description: Volts}
    output_units: {name: COUNTS, description: Digital counts}
    gain: 629129
    gain_frequency: 1
`,
	"datalogger/quanterra/q330_40.yaml": `sensitivity:
  value: 419430
  frequency: 1
  input_units: {name: V, description: Volts}
  output_units: {name: COUNTS, description: Digital counts}
stages:
  - type: gain
    input_units: {name: V}
    output_units: {name: V}
    gain: 1
  - type: gain
    name: digitizer
    input_units: {name: V}
    output_units: {name: COUNTS}
    gain: 419430
    gain_frequency: 1
`,
	"datalogger/quanterra/q8_100.yaml": `sensitivity:
  value: 419430
  frequency: 1
  input_units: {name: V, description: Volts}
  output_units: {name: COUNTS, description: Digital counts}
stages:
  - type: gain
    input_units: {name: V}
    output_units: {name: V}
    gain: 1
  - type: gain
    name: digitizer
    input_units: {name: V}
    output_units: {name: COUNTS}
    gain: 419430
    gain_frequency: 1
`,
}
