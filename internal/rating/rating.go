package rating

import "math"

// Summary is the aggregate of a service's visible reviews.
type Summary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"total_reviews"`
}

// Summarize averages ratings, rounded to one decimal. No ratings yields zero.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return Summary{Average: math.Round(avg*10) / 10, Count: len(ratings)}
}
