package position

import (
	"testing"
	"time"

	"earnings-straddle-lab/internal/domain"
)

func TestBuildSchedule_AMC(t *testing.T) {
	dates := []time.Time{
		domain.Day(2021, time.March, 12),
		domain.Day(2021, time.March, 15),
		domain.Day(2021, time.March, 16),
	}
	events := []*domain.EarningsEvent{
		{Ticker: "AAPL", EarnDate: domain.Day(2021, time.March, 15), EarnTime: domain.TimingAMC},
	}

	sched := buildSchedule(events, dates)
	if len(sched) != 1 {
		t.Fatalf("expected 1 scheduled event, got %d", len(sched))
	}
	s := sched[0]
	if !s.Enter.Equal(domain.Day(2021, time.March, 15)) {
		t.Errorf("AMC enter should be the event date, got %v", s.Enter)
	}
	if !s.Exit.Equal(domain.Day(2021, time.March, 16)) {
		t.Errorf("AMC exit should be the next trading date, got %v", s.Exit)
	}
}

func TestBuildSchedule_BMO(t *testing.T) {
	dates := []time.Time{
		domain.Day(2021, time.March, 12),
		domain.Day(2021, time.March, 15),
	}
	events := []*domain.EarningsEvent{
		{Ticker: "AAPL", EarnDate: domain.Day(2021, time.March, 15), EarnTime: domain.TimingBMO},
	}

	sched := buildSchedule(events, dates)
	if len(sched) != 1 {
		t.Fatalf("expected 1 scheduled event, got %d", len(sched))
	}
	s := sched[0]
	if !s.Enter.Equal(domain.Day(2021, time.March, 12)) {
		t.Errorf("BMO enter should be the previous trading date, got %v", s.Enter)
	}
	if !s.Exit.Equal(domain.Day(2021, time.March, 15)) {
		t.Errorf("BMO exit should be the event date, got %v", s.Exit)
	}
}

func TestBuildSchedule_EdgesStayZero(t *testing.T) {
	dates := []time.Time{domain.Day(2021, time.March, 15)}
	events := []*domain.EarningsEvent{
		{Ticker: "A", EarnDate: domain.Day(2021, time.March, 15), EarnTime: domain.TimingAMC},
		{Ticker: "A", EarnDate: domain.Day(2020, time.December, 15), EarnTime: domain.TimingBMO},
	}

	sched := buildSchedule(events, dates)
	// The December event is not a trading date in the history: dropped
	if len(sched) != 1 {
		t.Fatalf("expected 1 scheduled event, got %d", len(sched))
	}
	// AMC on the last trading date has no next date to exit on
	if !sched[0].Exit.IsZero() {
		t.Errorf("expected zero exit date, got %v", sched[0].Exit)
	}
}

func TestAssociateEvents_ForwardAsOf(t *testing.T) {
	exp := domain.Day(2021, time.June, 18)
	legs := []*candidateLeg{
		{quote: quote(domain.Day(2021, time.March, 1), exp, 120, 119, domain.SideCall)},
		{quote: quote(domain.Day(2021, time.March, 16), exp, 120, 119, domain.SideCall)},
		{quote: quote(domain.Day(2021, time.July, 1), exp, 120, 119, domain.SideCall)},
	}
	schedule := []*eventSchedule{
		{EarnDate: domain.Day(2021, time.March, 15), EarnTime: domain.TimingAMC},
		{EarnDate: domain.Day(2021, time.June, 14), EarnTime: domain.TimingAMC},
	}

	associateEvents(legs, schedule)

	if legs[0].event != schedule[0] {
		t.Errorf("March 1 observation should map to the March event")
	}
	if legs[1].event != schedule[1] {
		t.Errorf("March 16 observation should roll forward to the June event")
	}
	if legs[2].event != nil {
		t.Errorf("observation past the last event should stay unassociated")
	}
}

func TestAssociateEvents_ObservationOnEventDate(t *testing.T) {
	exp := domain.Day(2021, time.March, 19)
	legs := []*candidateLeg{
		{quote: quote(domain.Day(2021, time.March, 15), exp, 120, 119, domain.SideCall)},
	}
	schedule := []*eventSchedule{
		{EarnDate: domain.Day(2021, time.March, 15), EarnTime: domain.TimingAMC},
	}

	associateEvents(legs, schedule)
	if legs[0].event != schedule[0] {
		t.Errorf("observation on the event date should map to that event")
	}
}
