package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/FlavioCFOliveira/linclass/internal/check"
)

// WriteCSVFile writes res to filename, truncating any existing file.
func WriteCSVFile(filename string, res *check.Result) error {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	if err := WriteCSV(file, res); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes one record per comparison, gradient sample and descent step.
func WriteCSV(w io.Writer, res *check.Result) error {
	writer := csv.NewWriter(w)
	writer.Write([]string{"kind", "name", "expected", "got", "rel_error"})

	for _, c := range res.Comparisons {
		writer.Write([]string{
			"compare_loss",
			c.Family,
			formatFloat(c.NaiveLoss),
			formatFloat(c.VectorizedLoss),
			formatFloat(c.LossRelError),
		})
		writer.Write([]string{
			"compare_grad",
			c.Family,
			"",
			formatFloat(c.GradDifference),
			formatFloat(c.GradRelError),
		})
	}
	for _, g := range res.Gradients {
		for _, s := range g.Samples {
			writer.Write([]string{
				"grad_sample",
				fmt.Sprintf("%s(%d,%d)", g.Name, s.Row, s.Col),
				formatFloat(s.Analytic),
				formatFloat(s.Numeric),
				formatFloat(s.RelError),
			})
		}
	}
	for _, d := range res.Descents {
		writer.Write([]string{
			"descent",
			d.Name,
			formatFloat(d.Before),
			formatFloat(d.After),
			"",
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
