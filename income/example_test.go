package income_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bewley/income"
)

// ExampleDiscretize approximates a persistent log-income process with three
// states and inspects the resulting chain.
func ExampleDiscretize() {
	proc, err := income.Discretize(3, 0.95, math.Sqrt(0.015), 0)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	pi := proc.Transition()
	rowSum := pi.At(0, 0) + pi.At(0, 1) + pi.At(0, 2)
	mean := 0.0
	for j, y := range proc.Levels() {
		mean += proc.StationaryProbs()[j] * y
	}
	fmt.Printf("states=%d\n", proc.States())
	fmt.Printf("first row sums to %.6f\n", rowSum)
	fmt.Printf("stationary mean income %.6f\n", mean)
	// Output:
	// states=3
	// first row sums to 1.000000
	// stationary mean income 1.000000
}
