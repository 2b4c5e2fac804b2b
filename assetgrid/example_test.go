package assetgrid_test

import (
	"fmt"

	"github.com/katalvlaran/bewley/assetgrid"
)

// ExampleBuild constructs a small linear grid between a borrowing limit of
// -2 and a cap of 10.
func ExampleBuild() {
	g, err := assetgrid.Build(-2, 10, 5, false)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("points=%d min=%.0f max=%.0f\n", g.Len(), g.Min(), g.Max())
	fmt.Printf("grid=%v\n", g.Values())
	// Output:
	// points=5 min=-2 max=10
	// grid=[-2 1 4 7 10]
}
