package model

// Point is a single (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Line holds the parameters of y = M*x + B.
type Line struct {
	B float64
	M float64
}

// Predict evaluates the line at x.
func (l Line) Predict(x float64) float64 {
	return l.M*x + l.B
}

// ComputeError returns the mean squared error of l over points.
// An empty point set yields NaN.
func ComputeError(l Line, points []Point) float64 {
	totalError := 0.0
	for _, p := range points {
		residual := p.Y - l.Predict(p.X)
		totalError += residual * residual
	}
	return totalError / float64(len(points))
}

// StepGradient performs one batch gradient descent update of l over points
// and returns the new parameters.
func StepGradient(l Line, points []Point, learningRate float64) Line {
	bGradient := 0.0
	mGradient := 0.0
	n := float64(len(points))
	for _, p := range points {
		residual := p.Y - l.Predict(p.X)
		bGradient += -(2 / n) * residual
		mGradient += -(2 / n) * p.X * residual
	}
	return Line{
		B: l.B - learningRate*bGradient,
		M: l.M - learningRate*mGradient,
	}
}
