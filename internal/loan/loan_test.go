package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoan_DueDate(t *testing.T) {
	l := Loan{LoanDate: date(2025, time.March, 1)}
	assert.Equal(t, date(2025, time.March, 15), l.DueDate())
}

func TestLoan_Active(t *testing.T) {
	l := Loan{LoanDate: date(2025, time.March, 1)}
	assert.True(t, l.Active())

	returned := date(2025, time.March, 10)
	l.ReturnDate = &returned
	assert.False(t, l.Active())
}

func TestLoan_Overdue(t *testing.T) {
	today := date(2025, time.March, 20)

	tests := []struct {
		name     string
		loanDate time.Time
		returned *time.Time
		want     bool
	}{
		{
			name:     "loaned today",
			loanDate: today,
			want:     false,
		},
		{
			name:     "exactly fourteen days old is still on time",
			loanDate: date(2025, time.March, 6),
			want:     false,
		},
		{
			name:     "fifteen days old is overdue",
			loanDate: date(2025, time.March, 5),
			want:     true,
		},
		{
			name:     "far past but already returned",
			loanDate: date(2025, time.January, 1),
			returned: timePtr(date(2025, time.January, 10)),
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Loan{LoanDate: tt.loanDate, ReturnDate: tt.returned}
			assert.Equal(t, tt.want, l.Overdue(today))
		})
	}
}

func TestCutoff(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 6), Cutoff(date(2025, time.March, 20)))
}

func timePtr(t time.Time) *time.Time { return &t }
