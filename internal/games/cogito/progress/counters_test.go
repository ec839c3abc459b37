package progress

import "testing"

type recordingNotifier struct {
	events []Kind
	last   map[Kind]int
}

func (r *recordingNotifier) NotifyCounterChanged(k Kind, v int) {
	if r.last == nil {
		r.last = make(map[Kind]int)
	}
	r.events = append(r.events, k)
	r.last[k] = v
}

func TestTotalIsMemoized(t *testing.T) {
	calls := 0
	c := New(Config{Shifts: 1, StaminaMax: 3}, func() int {
		calls++
		return 10
	}, nil)

	for i := 0; i < 3; i++ {
		if c.Total() != 10 {
			t.Fatalf("Total() = %d, want 10", c.Total())
		}
	}
	if calls != 1 {
		t.Errorf("total func called %d times, want 1", calls)
	}
}

func TestAllChallenged(t *testing.T) {
	c := New(Config{}, func() int { return 2 }, nil)
	if c.AllChallenged() {
		t.Error("0/2 should not be complete")
	}
	c.Challenge(2)
	if !c.AllChallenged() {
		t.Error("2/2 should be complete")
	}
	c.Unchallenge(5)
	if c.Challenged() != 0 {
		t.Errorf("Unchallenge should stop at zero, got %d", c.Challenged())
	}

	empty := New(Config{}, nil, nil)
	if !empty.AllChallenged() {
		t.Error("a level without cogs is complete from the start")
	}
}

func TestShiftsAndCandies(t *testing.T) {
	n := &recordingNotifier{}
	c := New(Config{Shifts: 1}, nil, n)

	if !c.SpendShift() {
		t.Fatal("first shift should be available")
	}
	if c.SpendShift() {
		t.Error("second shift should be refused")
	}
	c.RefundShift()
	if c.Shifts() != 1 || n.last[KindShifts] != 1 {
		t.Errorf("RefundShift: shifts=%d notified=%d", c.Shifts(), n.last[KindShifts])
	}

	if c.SpendCandy() {
		t.Error("no candy to spend yet")
	}
	c.AddCandy()
	if !c.SpendCandy() || c.Candies() != 0 {
		t.Error("candy should be spent")
	}
}

func TestStaminaRule(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		onWater    bool
		want       int
		wantFilled bool
	}{
		{"dry tile drops to floor from max", 4, false, 0, false},
		{"dry tile drops to floor from middle", 2, false, 0, false},
		{"water increments", 1, true, 2, false},
		{"water reaches cap", 3, true, 4, true},
		{"water at cap stays", 4, true, 4, false},
		{"water from floor", 0, true, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New(Config{StaminaMax: 4, StaminaFloor: 0}, nil, nil)
			c.SetStamina(tc.start)
			filled := c.ApplyStaminaRule(tc.onWater)
			if c.Stamina() != tc.want {
				t.Errorf("stamina = %d, want %d", c.Stamina(), tc.want)
			}
			if filled != tc.wantFilled {
				t.Errorf("filled = %v, want %v", filled, tc.wantFilled)
			}
		})
	}
}

func TestStaminaResetIsSingleStep(t *testing.T) {
	n := &recordingNotifier{}
	c := New(Config{StaminaMax: 5, StaminaFloor: 1}, nil, n)
	c.SetStamina(4)
	n.events = nil

	c.ApplyStaminaRule(false)
	if len(n.events) != 1 || n.last[KindStamina] != 1 {
		t.Errorf("leaving water should notify once with the floor, got %v %v", n.events, n.last)
	}
}

func TestFloatAidNotifiesOnChangeOnly(t *testing.T) {
	n := &recordingNotifier{}
	c := New(Config{}, nil, n)
	c.SetFloatAid(false)
	c.SetFloatAid(true)
	c.SetFloatAid(true)
	if len(n.events) != 1 || !c.FloatAid() {
		t.Errorf("events = %v", n.events)
	}
}
