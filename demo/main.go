// Package main demonstrates correlation-based feature pruning on synthetic
// feature sets with known dependency structure.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"

	"github.com/sartorproj/gocollinear/correlation"
	"github.com/sartorproj/gocollinear/dataset"
	"github.com/sartorproj/gocollinear/pipeline"
	"github.com/sartorproj/gocollinear/prune"
)

// Scenario defines a synthetic feature set to analyze
type Scenario struct {
	Name        string  // Display name
	Description string  // Brief description
	Rows        int     // Number of observations
	Seed        int64   // Random seed
	Threshold   float64 // Pruning threshold
	Generate    func(rng *rand.Rand, n int) []dataset.Column
}

// MethodResult holds pruning results for one correlation method
type MethodResult struct {
	Method  string                 `json:"method"`
	Kept    []string               `json:"kept"`
	Dropped []string               `json:"dropped"`
	Pairs   []prune.CorrelatedPair `json:"pairs"`
	Matrix  [][]float64            `json:"matrix"`
}

// ScenarioResult holds analysis results for a scenario
type ScenarioResult struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rows        int            `json:"rows"`
	Columns     []string       `json:"columns"`
	Threshold   float64        `json:"threshold"`
	Methods     []MethodResult `json:"methods"`
}

// OutputData holds all results for export
type OutputData struct {
	Scenarios []ScenarioResult `json:"scenarios"`
}

func main() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("gocollinear Demonstration - Spearman/Pearson/Kendall pruning")
	fmt.Println(strings.Repeat("=", 80))

	scenarios := []Scenario{
		{Name: "Worked Example", Rows: 4, Threshold: 0.7, Description: "B = 2A, C unrelated", Generate: workedExample},
		{Name: "Chained Features", Rows: 200, Seed: 7, Threshold: 0.7, Description: "x1 ~ x0, x2 ~ x1 via noise; only x0 survives the first link", Generate: chained},
		{Name: "Monotone Transforms", Rows: 200, Seed: 11, Threshold: 0.9, Description: "exp/cube of a base feature; rank methods see perfect agreement", Generate: monotone},
		{Name: "Sparse Sensors", Rows: 150, Seed: 3, Threshold: 0.8, Description: "sensor readings with gaps; one mostly-empty sensor", Generate: sensors},
	}

	output := OutputData{Scenarios: []ScenarioResult{}}

	for i, sc := range scenarios {
		fmt.Printf("\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("=", 80), i+1, len(scenarios), sc.Name, strings.Repeat("=", 80))

		result := analyze(sc)
		if result != nil {
			output.Scenarios = append(output.Scenarios, *result)
		}
	}

	fmt.Printf("\n%s\nEXPORTING RESULTS\n%s\n", strings.Repeat("=", 80), strings.Repeat("=", 80))

	if err := export("prune_results.json", output); err != nil {
		fmt.Printf("Export failed: %v\n", err)
	} else {
		fmt.Printf("Exported %d scenarios to prune_results.json\n", len(output.Scenarios))
	}
	fmt.Println(strings.Repeat("=", 80))
}

// export writes the results as indented JSON
func export(path string, output OutputData) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// analyze prunes a scenario with every correlation method
func analyze(sc Scenario) *ScenarioResult {
	rng := rand.New(rand.NewSource(sc.Seed))
	ds, err := dataset.New(sc.Generate(rng, sc.Rows)...)
	if err != nil {
		fmt.Printf("   Error generating: %v\n", err)
		return nil
	}
	fmt.Printf("   %s\n", sc.Description)
	fmt.Printf("   %d rows x %d columns: %s\n", ds.NumRows(), ds.NumColumns(), strings.Join(ds.Names(), ", "))

	// Mostly-empty columns carry too few pairs to correlate reliably
	ds, err = pipeline.New(pipeline.DropSparse(0.5)).Apply(ds)
	if err != nil {
		fmt.Printf("   Error preparing: %v\n", err)
		return nil
	}

	result := &ScenarioResult{
		Name:        sc.Name,
		Description: sc.Description,
		Rows:        ds.NumRows(),
		Columns:     ds.Names(),
		Threshold:   sc.Threshold,
		Methods:     []MethodResult{},
	}

	for _, method := range correlation.Methods {
		analysis, err := prune.Analyze(ds, method, sc.Threshold)
		if err != nil {
			fmt.Printf("   %s: %v\n", method, err)
			continue
		}
		out, err := analysis.Apply(ds)
		if err != nil {
			fmt.Printf("   %s: %v\n", method, err)
			continue
		}

		fmt.Printf("\n   %s (threshold %.2f)\n", method, sc.Threshold)
		for _, line := range strings.Split(analysis.Matrix.String(), "\n") {
			fmt.Printf("     %s\n", line)
		}
		for _, p := range analysis.Pairs {
			fmt.Printf("     |r(%s, %s)| = %.4f -> drop %s\n", p.Earlier, p.Later, math.Abs(p.Coefficient), p.Later)
		}
		fmt.Printf("     kept: %s\n", strings.Join(out.Names(), ", "))

		result.Methods = append(result.Methods, MethodResult{
			Method:  method.String(),
			Kept:    out.Names(),
			Dropped: analysis.Dropped(),
			Pairs:   analysis.Pairs,
			Matrix:  matrixRows(analysis.Matrix),
		})
	}

	return result
}

func matrixRows(m *correlation.Matrix) [][]float64 {
	n := m.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

func workedExample(_ *rand.Rand, _ int) []dataset.Column {
	return []dataset.Column{
		{Name: "A", Values: []float64{1, 2, 3, 4}},
		{Name: "B", Values: []float64{2, 4, 6, 8}},
		{Name: "C", Values: []float64{4, 1, 3, 2}},
	}
}

func chained(rng *rand.Rand, n int) []dataset.Column {
	x0, x1, x2, x3 := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		x0[i] = rng.NormFloat64()
		x1[i] = x0[i] + 0.5*rng.NormFloat64()
		x2[i] = x1[i] + 0.5*rng.NormFloat64()
		x3[i] = rng.NormFloat64()
	}
	return []dataset.Column{{Name: "x0", Values: x0}, {Name: "x1", Values: x1}, {Name: "x2", Values: x2}, {Name: "x3", Values: x3}}
}

func monotone(rng *rand.Rand, n int) []dataset.Column {
	base, exp, cube, noise := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		base[i] = 2 * rng.NormFloat64()
		exp[i] = math.Exp(base[i])
		cube[i] = base[i] * base[i] * base[i]
		noise[i] = rng.Float64()
	}
	return []dataset.Column{{Name: "base", Values: base}, {Name: "exp", Values: exp}, {Name: "cube", Values: cube}, {Name: "noise", Values: noise}}
}

func sensors(rng *rand.Rand, n int) []dataset.Column {
	temp, humidity, dew, broken := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		temp[i] = 20 + 5*rng.NormFloat64()
		humidity[i] = 60 + 10*rng.NormFloat64()
		dew[i] = temp[i] - (100-humidity[i])/5 + 0.3*rng.NormFloat64()
		broken[i] = math.NaN()
		if rng.Float64() < 0.1 {
			temp[i] = math.NaN()
		}
		if rng.Float64() < 0.2 {
			broken[i] = rng.NormFloat64()
		}
	}
	return []dataset.Column{{Name: "temp", Values: temp}, {Name: "humidity", Values: humidity}, {Name: "dew_point", Values: dew}, {Name: "broken", Values: broken}}
}
