package volatility

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

// Bar one row of a price history file. The header must name the columns
// "date" and "close"; other columns are ignored.
type Bar struct {
	Date  string  `csv:"date"`
	Close float64 `csv:"close"`
}

// LoadHistory reads bars in file order, which is expected to be oldest first.
func LoadHistory(r io.Reader) ([]Bar, error) {
	var bars []Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return nil, fmt.Errorf("failed to parse price history: %w", err)
	}
	log.WithField("rows", len(bars)).Debug("loaded price history")
	return bars, nil
}

func LoadHistoryFile(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	bars, err := LoadHistory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bars, nil
}

func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
