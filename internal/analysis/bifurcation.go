package analysis

import (
	"strings"

	"github.com/san-kum/trails/internal/dynamo"
)

// BifurcationPoint represents the distinct peaks seen for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// StepperFunc builds a stepper for one parameter value.
type StepperFunc func(param float64) (Stepper, error)

func component(p dynamo.Point3, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// BifurcationDiagram sweeps a parameter and records the local maxima of one
// axis (0=x, 1=y, 2=z) after a transient, quantised to 1e-3. For the Lorenz
// field with axis 2 this is the Lorenz map.
func BifurcationDiagram(
	build StepperFunc,
	paramMin, paramMax float64,
	paramSteps int,
	axis int,
	x0 dynamo.Point3,
	dt float64,
	transient, record int,
) ([]BifurcationPoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		s, err := build(param)
		if err != nil {
			return nil, err
		}

		x := x0
		for j := 0; j < transient; j++ {
			x = s.Step(x, dt)
		}

		values := make([]float64, 0, 64)
		seen := make(map[int]bool)
		prev2, prev := component(x, axis), component(x, axis)
		for j := 0; j < record; j++ {
			x = s.Step(x, dt)
			cur := component(x, axis)
			if prev > prev2 && prev >= cur {
				key := int(prev * 1000)
				if !seen[key] {
					seen[key] = true
					values = append(values, prev)
				}
			}
			prev2, prev = prev, cur
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
