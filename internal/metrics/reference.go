package metrics

import (
	"gonum.org/v1/gonum/stat"

	"linefit/internal/model"
)

// Fit is the closed-form least squares line for a point set.
type Fit struct {
	Line     model.Line
	Error    float64
	RSquared float64
}

// Reference solves the ordinary least squares problem exactly so a
// gradient descent result can be compared against the optimum.
func Reference(points []model.Point) Fit {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	line := model.Line{B: alpha, M: beta}
	return Fit{
		Line:     line,
		Error:    model.ComputeError(line, points),
		RSquared: stat.RSquared(xs, ys, nil, alpha, beta),
	}
}
