package combine_test

import (
	"fmt"

	"github.com/cwbudde/algo-nrl/combine"
	"github.com/cwbudde/algo-nrl/response"
)

func ExampleCombine() {
	sensor := response.Response{Stages: []response.Stage{{
		Type:   response.StageGain,
		Name:   "sensor",
		Input:  response.Units{Name: "M/S"},
		Output: response.Units{Name: "V"},
		Gain:   1500,
	}}}

	datalogger := response.Response{
		Stages: []response.Stage{
			{Type: response.StageGain, Name: "placeholder", Input: response.Units{Name: "V"}, Gain: 1},
			{Type: response.StageGain, Name: "digitizer", Input: response.Units{Name: "V"}, Gain: 400000},
		},
		Sensitivity: response.Sensitivity{Value: 400000, Frequency: 1, InputUnits: response.Units{Name: "V"}},
	}

	res, err := combine.Combine(sensor, datalogger)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, s := range res.Response.Stages {
		fmt.Println(s.Name)
	}

	fmt.Println(res.Response.Sensitivity.InputUnits.Name, res.Response.Sensitivity.Value)

	// Output:
	// sensor
	// digitizer
	// M/S 6e+08
}
