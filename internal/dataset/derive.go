package dataset

import (
	"time"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/models"
)

// Time-of-day buckets. Total over hours 0-23: anything outside the three
// daytime windows is Night.
const (
	PeriodMorning   = "Morning"
	PeriodLunch     = "Lunch"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
	PeriodNight     = "Night"
)

// TimePeriods lists the buckets in chronological order.
var TimePeriods = []string{PeriodMorning, PeriodLunch, PeriodAfternoon, PeriodEvening, PeriodNight}

// TimePeriodForHour maps an hour of day to its bucket. Depends on nothing
// but the hour.
func TimePeriodForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 11:
		return PeriodMorning
	case hour >= 11 && hour < 14:
		return PeriodLunch
	case hour >= 14 && hour < 17:
		return PeriodAfternoon
	case hour >= 17 && hour < 20:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// Derive fills in every computed field from the base fields. It is idempotent:
// deriving an already-derived transaction yields the same result.
func Derive(tx models.Transaction) models.Transaction {
	tx.TotalBill = tx.UnitPrice.Mul(decimal.NewFromInt(int64(tx.Quantity)))
	tx.Hour = tx.DateTime.Hour()
	tx.DayOfWeek = weekdayIndex(tx.DateTime)
	tx.DayName = tx.DateTime.Weekday().String()
	tx.MonthName = tx.DateTime.Month().String()
	_, tx.WeekOfYear = tx.DateTime.ISOWeek()
	tx.Quarter = (int(tx.DateTime.Month())-1)/3 + 1
	tx.IsWeekend = tx.DayOfWeek >= 5
	tx.TimePeriod = TimePeriodForHour(tx.Hour)
	return tx
}

// weekdayIndex counts from Monday=0 through Sunday=6, so the weekend test is
// a simple >= 5.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
