package schedule

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/HMS-SchedulingService/internal/domain"
)

func TestWeekdayOrder_CalendarSequence(t *testing.T) {
	// Сортировка по VARCHAR-колонке дала бы алфавитный порядок (friday первым),
	// поэтому порядок задается CASE-выражением
	days := []domain.Weekday{
		domain.Monday,
		domain.Tuesday,
		domain.Wednesday,
		domain.Thursday,
		domain.Friday,
		domain.Saturday,
		domain.Sunday,
	}

	prev := -1
	for i, day := range days {
		branch := fmt.Sprintf("WHEN '%s' THEN %d", day, i+1)
		assert.Contains(t, weekdayOrder, branch)

		pos := strings.Index(weekdayOrder, branch)
		assert.Greater(t, pos, prev, "day %s out of calendar order", day)
		prev = pos
	}
}
