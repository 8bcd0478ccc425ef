package response_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nrl/response"
)

func ExampleChainEvaluator() {
	const corner = 1.0

	w := 2 * math.Pi * corner
	stages := []response.Stage{
		{
			Type: response.StagePolesZeros,
			Gain: 1500,
			PolesZeros: &response.PolesZeros{
				TransferFunction:    response.LaplaceRadians,
				NormalizationFactor: w,
				Poles:               []complex128{complex(-w, 0)},
			},
		},
		{Type: response.StageGain, Gain: 2},
	}

	g, err := response.ChainEvaluator{}.OverallGain(stages, corner)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%.1f\n", g)

	// Output:
	// 2121.3
}
