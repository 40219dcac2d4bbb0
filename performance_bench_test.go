package gridcalc

import (
	"fmt"
	"testing"
)

func BenchmarkParseExpression(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseExpression("(A1 + B2) * 3 - C3 / 2 ^ 4"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		service, err := NewTableService(100, 26, nil)
		if err != nil {
			b.Fatal(err)
		}

		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				service.SetCellExpression(row, col, fmt.Sprintf("%d", (row+1)*(col+1)))
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	service, err := NewTableService(100, 1, nil)
	if err != nil {
		b.Fatal(err)
	}

	service.SetCellExpression(0, 0, "1")
	for row := 1; row < 100; row++ {
		service.SetCellExpression(row, 0, fmt.Sprintf("=A%d+1", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.Table().InvalidateValues()
		service.CalculateAll()
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	service, err := NewTableService(500, 2, nil)
	if err != nil {
		b.Fatal(err)
	}

	service.SetCellExpression(0, 0, "100")
	for row := 1; row < 500; row++ {
		service.SetCellExpression(row, 1, "=A1*2")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.SetCellExpression(0, 0, fmt.Sprintf("%d", i))
		service.CalculateAll()
	}
}

func BenchmarkDivisionHeavyRecalculation(b *testing.B) {
	service, err := NewTableService(100, 1, nil)
	if err != nil {
		b.Fatal(err)
	}

	service.SetCellExpression(0, 0, "1000000")
	for row := 1; row < 100; row++ {
		service.SetCellExpression(row, 0, fmt.Sprintf("=A%d/3", row))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.Table().InvalidateValues()
		service.CalculateAll()
	}
}

func BenchmarkCircularReferenceDetection(b *testing.B) {
	service, err := NewTableService(10, 1, nil)
	if err != nil {
		b.Fatal(err)
	}

	// a ten-cell cycle: A1 -> A2 -> ... -> A10 -> A1
	for row := 0; row < 10; row++ {
		service.SetCellExpression(row, 0, fmt.Sprintf("=A%d", (row+1)%10+1))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.Table().InvalidateValues()
		service.CalculateAll()
	}
}
