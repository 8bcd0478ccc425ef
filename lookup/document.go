package lookup

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-nrl/response"
)

var errBadComplex = errors.New("complex values must be [re, im] pairs")

type unitsDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

type polesZerosDoc struct {
	TransferFunction       string      `yaml:"transfer_function"`
	NormalizationFactor    float64     `yaml:"normalization_factor"`
	NormalizationFrequency float64     `yaml:"normalization_frequency,omitempty"`
	Zeros                  [][]float64 `yaml:"zeros,flow"`
	Poles                  [][]float64 `yaml:"poles,flow"`
}

type coefficientsDoc struct {
	TransferFunction string    `yaml:"transfer_function"`
	Numerators       []float64 `yaml:"numerators,flow"`
	Denominators     []float64 `yaml:"denominators,flow,omitempty"`
}

type firDoc struct {
	Symmetry     string    `yaml:"symmetry,omitempty"`
	Coefficients []float64 `yaml:"coefficients,flow"`
}

type decimationDoc struct {
	InputSampleRate float64 `yaml:"input_sample_rate"`
	Factor          int     `yaml:"factor"`
	Offset          int     `yaml:"offset,omitempty"`
	Delay           float64 `yaml:"delay,omitempty"`
	Correction      float64 `yaml:"correction,omitempty"`
}

type stageDoc struct {
	Type          string           `yaml:"type"`
	Name          string           `yaml:"name,omitempty"`
	InputUnits    unitsDoc         `yaml:"input_units"`
	OutputUnits   unitsDoc         `yaml:"output_units"`
	Gain          float64          `yaml:"gain"`
	GainFrequency float64          `yaml:"gain_frequency,omitempty"`
	PolesZeros    *polesZerosDoc   `yaml:"poles_zeros,omitempty"`
	Coefficients  *coefficientsDoc `yaml:"coefficients,omitempty"`
	FIR           *firDoc          `yaml:"fir,omitempty"`
	Decimation    *decimationDoc   `yaml:"decimation,omitempty"`
}

type sensitivityDoc struct {
	Value       float64  `yaml:"value"`
	Frequency   float64  `yaml:"frequency"`
	InputUnits  unitsDoc `yaml:"input_units"`
	OutputUnits unitsDoc `yaml:"output_units"`
}

type document struct {
	Sensitivity sensitivityDoc `yaml:"sensitivity"`
	Stages      []stageDoc     `yaml:"stages"`
}

// Decode parses a YAML response document and validates every stage.
// Unknown fields are rejected.
func Decode(data []byte) (response.Response, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&doc)
	if err != nil {
		return response.Response{}, fmt.Errorf("decode response document: %w", err)
	}

	r := response.Response{
		Sensitivity: response.Sensitivity{
			Value:       doc.Sensitivity.Value,
			Frequency:   doc.Sensitivity.Frequency,
			InputUnits:  response.Units(doc.Sensitivity.InputUnits),
			OutputUnits: response.Units(doc.Sensitivity.OutputUnits),
		},
		Stages: make([]response.Stage, 0, len(doc.Stages)),
	}

	for i, sd := range doc.Stages {
		s, err := sd.stage()
		if err != nil {
			return response.Response{}, fmt.Errorf("stage %d: %w", i, err)
		}

		r.Stages = append(r.Stages, s)
	}

	err = r.Validate()
	if err != nil {
		return response.Response{}, err
	}

	return r, nil
}

func (sd stageDoc) stage() (response.Stage, error) {
	typ, err := response.ParseStageType(sd.Type)
	if err != nil {
		return response.Stage{}, err
	}

	s := response.Stage{
		Type:          typ,
		Name:          sd.Name,
		Input:         response.Units(sd.InputUnits),
		Output:        response.Units(sd.OutputUnits),
		Gain:          sd.Gain,
		GainFrequency: sd.GainFrequency,
	}

	if pz := sd.PolesZeros; pz != nil {
		tf, err := response.ParseTransferFunction(pz.TransferFunction)
		if err != nil {
			return response.Stage{}, err
		}

		zeros, err := complexes(pz.Zeros)
		if err != nil {
			return response.Stage{}, fmt.Errorf("zeros: %w", err)
		}

		poles, err := complexes(pz.Poles)
		if err != nil {
			return response.Stage{}, fmt.Errorf("poles: %w", err)
		}

		s.PolesZeros = &response.PolesZeros{
			TransferFunction:       tf,
			NormalizationFactor:    pz.NormalizationFactor,
			NormalizationFrequency: pz.NormalizationFrequency,
			Zeros:                  zeros,
			Poles:                  poles,
		}
	}

	if c := sd.Coefficients; c != nil {
		tf, err := response.ParseTransferFunction(c.TransferFunction)
		if err != nil {
			return response.Stage{}, err
		}

		s.Coefficients = &response.Coefficients{
			TransferFunction: tf,
			Numerators:       c.Numerators,
			Denominators:     c.Denominators,
		}
	}

	if f := sd.FIR; f != nil {
		sym, err := response.ParseSymmetry(f.Symmetry)
		if err != nil {
			return response.Stage{}, err
		}

		s.FIR = &response.FIR{Symmetry: sym, Coefficients: f.Coefficients}
	}

	if d := sd.Decimation; d != nil {
		s.Decimation = &response.Decimation{
			InputSampleRate: d.InputSampleRate,
			Factor:          d.Factor,
			Offset:          d.Offset,
			Delay:           d.Delay,
			Correction:      d.Correction,
		}
	}

	return s, nil
}

func complexes(pairs [][]float64) ([]complex128, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make([]complex128, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: entry %d has %d values", errBadComplex, i, len(p))
		}

		out[i] = complex(p[0], p[1])
	}

	return out, nil
}

// Encode writes r as a YAML response document readable by [Decode].
func Encode(r response.Response) ([]byte, error) {
	doc := document{
		Sensitivity: sensitivityDoc{
			Value:       r.Sensitivity.Value,
			Frequency:   r.Sensitivity.Frequency,
			InputUnits:  unitsDoc(r.Sensitivity.InputUnits),
			OutputUnits: unitsDoc(r.Sensitivity.OutputUnits),
		},
		Stages: make([]stageDoc, len(r.Stages)),
	}

	for i, s := range r.Stages {
		doc.Stages[i] = stageDocOf(s)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode response document: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode response document: %w", err)
	}

	return buf.Bytes(), nil
}

func stageDocOf(s response.Stage) stageDoc {
	sd := stageDoc{
		Type:          s.Type.String(),
		Name:          s.Name,
		InputUnits:    unitsDoc(s.Input),
		OutputUnits:   unitsDoc(s.Output),
		Gain:          s.Gain,
		GainFrequency: s.GainFrequency,
	}

	if pz := s.PolesZeros; pz != nil {
		sd.PolesZeros = &polesZerosDoc{
			TransferFunction:       pz.TransferFunction.String(),
			NormalizationFactor:    pz.NormalizationFactor,
			NormalizationFrequency: pz.NormalizationFrequency,
			Zeros:                  pairs(pz.Zeros),
			Poles:                  pairs(pz.Poles),
		}
	}

	if c := s.Coefficients; c != nil {
		sd.Coefficients = &coefficientsDoc{
			TransferFunction: c.TransferFunction.String(),
			Numerators:       c.Numerators,
			Denominators:     c.Denominators,
		}
	}

	if f := s.FIR; f != nil {
		sd.FIR = &firDoc{Symmetry: f.Symmetry.String(), Coefficients: f.Coefficients}
	}

	if d := s.Decimation; d != nil {
		sd.Decimation = &decimationDoc{
			InputSampleRate: d.InputSampleRate,
			Factor:          d.Factor,
			Offset:          d.Offset,
			Delay:           d.Delay,
			Correction:      d.Correction,
		}
	}

	return sd
}

func pairs(cs []complex128) [][]float64 {
	out := make([][]float64, len(cs))
	for i, c := range cs {
		out[i] = []float64{real(c), imag(c)}
	}

	return out
}
