package fixfmt_test

import (
	"fmt"

	"github.com/arloliu/fixfmt"
	"github.com/arloliu/fixfmt/format"
)

func ExampleInfer() {
	d, err := fixfmt.Infer([]float64{1.125, 2.25, 1.3125, 2.75}, 0.001)
	if err != nil {
		panic(err)
	}

	fmt.Println(d)
	fmt.Println(d.Key())
	// Output:
	// UQ2.4
	// u2.4
}

func ExampleBind() {
	v, err := fixfmt.Bind(format.New(true, 1, 1), -1.0)
	if err != nil {
		panic(err)
	}

	fmt.Println(v.Raw(), fixfmt.Unbind(v))
	// Output: -2 -1
}

func ExampleNewConstant() {
	c, err := fixfmt.NewConstant(nil, []float64{-1.0, 0.5}, 0.01)
	if err != nil {
		panic(err)
	}

	fmt.Println(c.Descriptor, c.Floats())
	// Output: Q1.1 [-1 0.5]
}
