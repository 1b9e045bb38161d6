package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LoadHolidaysFile reads a holiday set from a local text file so the holiday
// data can be updated without rebuilding the binary.
//
// Format: one date per line, "YYYY-MM-DD [note]". Empty lines and lines
// starting with '#' are skipped. Lines that do not parse are logged and
// skipped rather than failing the whole load.
func LoadHolidaysFile(filePath string, logger *zap.Logger) (*HolidaySet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer file.Close()

	set := NewHolidaySet()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD [note]
		// Example: 2025-05-01 Labour Day
		parts := strings.SplitN(line, " ", 2)
		dateStr := parts[0]
		note := ""
		if len(parts) == 2 {
			note = strings.TrimSpace(parts[1])
		}

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			logger.Warn("Failed to parse holiday date", zap.String("line", line), zap.Error(err))
			continue
		}

		set.Add(date, note)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holidays file: %w", err)
	}

	logger.Info("Holidays file loaded",
		zap.String("file", filePath),
		zap.Int("holidays", set.Len()))

	return set, nil
}

// ParseHolidayDates builds a holiday set from literal date strings, as
// configured inline in the config file
func ParseHolidayDates(dates []string, logger *zap.Logger) (*HolidaySet, error) {
	set := NewHolidaySet()

	for _, dateStr := range dates {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", dateStr, err)
		}
		set.Add(date, "")
	}

	logger.Info("Inline holiday dates loaded", zap.Int("holidays", set.Len()))

	return set, nil
}
