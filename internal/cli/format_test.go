package cli

import (
	"testing"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999.6, "₹1,000"},
		{125000.4, "₹125,000"},
		{-2500, "-₹2,500"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndVariance(t *testing.T) {
	if got := FormatPercent(48.849); got != "48.8%" {
		t.Errorf("FormatPercent = %q, want 48.8%%", got)
	}
	if got := FormatVariance(4.25); got != "+4.2pp" && got != "+4.3pp" {
		t.Errorf("FormatVariance(4.25) = %q", got)
	}
	if got := FormatVariance(-12); got != "-12.0pp" {
		t.Errorf("FormatVariance(-12) = %q, want -12.0pp", got)
	}
}

func TestFormatMonths(t *testing.T) {
	one, six := 1, 6
	if got := FormatMonths(nil); got != "-" {
		t.Errorf("FormatMonths(nil) = %q", got)
	}
	if got := FormatMonths(&one); got != "1 month" {
		t.Errorf("FormatMonths(1) = %q", got)
	}
	if got := FormatMonths(&six); got != "6 months" {
		t.Errorf("FormatMonths(6) = %q", got)
	}
}

func TestFormatPredicted(t *testing.T) {
	if got := FormatPredicted(999); got != "never" {
		t.Errorf("FormatPredicted(999) = %q, want never", got)
	}
	if got := FormatPredicted(7.25); got != "7.2 mo" && got != "7.3 mo" {
		t.Errorf("FormatPredicted(7.25) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2027, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2027-03-09" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(nil); got != "-" {
		t.Errorf("FormatDate(nil) = %q", got)
	}
}

func TestFormatHealth(t *testing.T) {
	if got := FormatHealth(model.HealthOffTrack); got != "off track" {
		t.Errorf("FormatHealth = %q", got)
	}
	if got := FormatHealth("mystery"); got != "mystery" {
		t.Errorf("FormatHealth(unknown) = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(15000, 12000); got != "+₹3,000" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(12000, 15000); got != "-₹3,000" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Emergency Fund", 20); got != "Emergency Fund" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("Emergency Fund", 10); got != "Emergency…" {
		t.Errorf("Truncate long = %q", got)
	}
}
