package glean

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Thresholds carries every tunable constant the detectors fire on.
// DefaultThresholds reproduces the literal constants the reference
// implementation hard-codes; every documented scenario and property
// holds under the defaults. A config file may override a subset of
// fields — any field the YAML omits keeps its default, while a field
// the YAML sets (even to zero) replaces it.
type Thresholds struct {
	// VendorGapDays is the D1/D2 "too long since last seen" boundary,
	// in days. Fires when the gap is strictly greater than this.
	VendorGapDays int `yaml:"vendor_gap_days"`

	// D3 large-month-increase bands. A month's spend below
	// LargeIncreaseMinAmount never fires. Between LargeIncreaseMinAmount
	// and LargeIncreaseMidBand it must exceed LargeIncreaseLowMultiplier
	// times the trailing mean; between LargeIncreaseMidBand and
	// LargeIncreaseHighBand, LargeIncreaseMidMultiplier times; above
	// LargeIncreaseHighBand, LargeIncreaseHighMultiplier times. Amounts
	// exactly equal to a band boundary fall in no band.
	LargeIncreaseMinAmount      decimal.Decimal
	LargeIncreaseMidBand        decimal.Decimal
	LargeIncreaseHighBand       decimal.Decimal
	LargeIncreaseLowMultiplier  decimal.Decimal
	LargeIncreaseMidMultiplier  decimal.Decimal
	LargeIncreaseHighMultiplier decimal.Decimal

	// MonthlyRollingWindow is the D3 trailing-mean window, in months.
	MonthlyRollingWindow int
	// MonthlyStreakWindow is the D4 trailing-activity window, in months.
	MonthlyStreakWindow int
	// QuarterlyStreakWindow is the D5 trailing-activity window, in quarters.
	QuarterlyStreakWindow int
}

// DefaultThresholds returns the literal constants the detectors fire on
// out of the box.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VendorGapDays:               90,
		LargeIncreaseMinAmount:      decimal.NewFromInt(100),
		LargeIncreaseMidBand:        decimal.NewFromInt(1000),
		LargeIncreaseHighBand:       decimal.NewFromInt(10000),
		LargeIncreaseLowMultiplier:  decimal.NewFromInt(5),
		LargeIncreaseMidMultiplier:  decimal.NewFromInt(2),
		LargeIncreaseHighMultiplier: decimal.NewFromFloat(0.5),
		MonthlyRollingWindow:        12,
		MonthlyStreakWindow:         3,
		QuarterlyStreakWindow:       2,
	}
}

// LoadThresholds reads a YAML config file and applies it on top of
// DefaultThresholds, overriding only the fields the file sets.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var overrides struct {
		VendorGapDays               *int    `yaml:"vendor_gap_days"`
		MonthlyRollingWindow        *int    `yaml:"monthly_rolling_window"`
		MonthlyStreakWindow         *int    `yaml:"monthly_streak_window"`
		QuarterlyStreakWindow       *int    `yaml:"quarterly_streak_window"`
		LargeIncreaseMinAmount      *string `yaml:"large_increase_min_amount"`
		LargeIncreaseMidBand        *string `yaml:"large_increase_mid_band"`
		LargeIncreaseHighBand       *string `yaml:"large_increase_high_band"`
		LargeIncreaseLowMultiplier  *string `yaml:"large_increase_low_multiplier"`
		LargeIncreaseMidMultiplier  *string `yaml:"large_increase_mid_multiplier"`
		LargeIncreaseHighMultiplier *string `yaml:"large_increase_high_multiplier"`
	}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Thresholds{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if overrides.VendorGapDays != nil {
		t.VendorGapDays = *overrides.VendorGapDays
	}
	if overrides.MonthlyRollingWindow != nil {
		t.MonthlyRollingWindow = *overrides.MonthlyRollingWindow
	}
	if overrides.MonthlyStreakWindow != nil {
		t.MonthlyStreakWindow = *overrides.MonthlyStreakWindow
	}
	if overrides.QuarterlyStreakWindow != nil {
		t.QuarterlyStreakWindow = *overrides.QuarterlyStreakWindow
	}
	for _, o := range []struct {
		src *string
		dst *decimal.Decimal
	}{
		{overrides.LargeIncreaseMinAmount, &t.LargeIncreaseMinAmount},
		{overrides.LargeIncreaseMidBand, &t.LargeIncreaseMidBand},
		{overrides.LargeIncreaseHighBand, &t.LargeIncreaseHighBand},
		{overrides.LargeIncreaseLowMultiplier, &t.LargeIncreaseLowMultiplier},
		{overrides.LargeIncreaseMidMultiplier, &t.LargeIncreaseMidMultiplier},
		{overrides.LargeIncreaseHighMultiplier, &t.LargeIncreaseHighMultiplier},
	} {
		if o.src == nil {
			continue
		}
		v, err := decimal.NewFromString(*o.src)
		if err != nil {
			return Thresholds{}, fmt.Errorf("parse config %s: invalid decimal %q: %w", path, *o.src, err)
		}
		*o.dst = v
	}

	return t, nil
}
