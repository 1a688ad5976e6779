package optics

import (
	"gonum.org/v1/gonum/mat"
)

// ABCD transfer matrices acting on (height, slope)

func translation(d float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, d,
		0, 1,
	})
}

func thinLens(f float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		-1 / f, 1,
	})
}

func reflection() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, -1,
	})
}

func flatRefraction(n Indices) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, n.Ratio(),
	})
}

func curvedRefraction(r float64, n Indices) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		(n.Incident - n.Transmitted) / (r * n.Transmitted), n.Ratio(),
	})
}

// transfer applies m to the (height, slope) of b, leaving x and amplitude alone
func transfer(m mat.Matrix, b Branch) Branch {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(2, []float64{b.Y, b.Slope}))
	b.Y = out.AtVec(0)
	b.Slope = out.AtVec(1)
	return b
}
