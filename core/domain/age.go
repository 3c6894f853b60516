// ABOUTME: Age bucket enumeration used by the hide-by-age setting
// ABOUTME: Each unit knows its relative-timestamp suffix and numbered maximum

package domain

// AgeBucket is the granularity selected by hide-by-age.
type AgeBucket string

const (
	AgeDisabled AgeBucket = "disabled"
	AgeHour     AgeBucket = "hour"
	AgeDay      AgeBucket = "day"
	AgeWeek     AgeBucket = "week"
	AgeMonth    AgeBucket = "month"
	AgeYear     AgeBucket = "year"
)

// ageUnits is ordered finest first.
var ageUnits = []AgeBucket{AgeHour, AgeDay, AgeWeek, AgeMonth, AgeYear}

var ageSuffix = map[AgeBucket]string{
	AgeHour:  "h •",
	AgeDay:   "d •",
	AgeWeek:  "w •",
	AgeMonth: "mo •",
	AgeYear:  "y •",
}

var ageMax = map[AgeBucket]int{
	AgeHour:  24,
	AgeDay:   30,
	AgeWeek:  4,
	AgeMonth: 12,
	AgeYear:  5,
}

// ParseAgeBucket maps a stored value to a bucket. Unknown values are disabled.
func ParseAgeBucket(s string) AgeBucket {
	b := AgeBucket(s)
	if _, ok := ageSuffix[b]; ok {
		return b
	}
	return AgeDisabled
}

// Suffix returns the relative-timestamp suffix, "" for disabled.
func (b AgeBucket) Suffix() string {
	return ageSuffix[b]
}

// Max returns the largest count rendered with this unit, 0 for disabled.
func (b AgeBucket) Max() int {
	return ageMax[b]
}

// Rank orders buckets from finest (1) to coarsest (5); disabled is 0.
func (b AgeBucket) Rank() int {
	for i, u := range ageUnits {
		if u == b {
			return i + 1
		}
	}
	return 0
}

// AgeUnits returns every enabled bucket, finest first.
func AgeUnits() []AgeBucket {
	out := make([]AgeBucket, len(ageUnits))
	copy(out, ageUnits)
	return out
}
